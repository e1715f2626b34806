// Package diagfmt renders diagnostics and check results as JSON.
package diagfmt

import (
	"encoding/json"
	"io"

	"wrapgen/internal/diag"
)

type NoteJSON struct {
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

type DiagnosticJSON struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Subject  string     `json:"subject,omitempty"`
	Message  string     `json:"message"`
	Notes    []NoteJSON `json:"notes,omitempty"`
}

// SetJSON summarises one overload set.
type SetJSON struct {
	Name      string `json:"name"`
	Overloads int    `json:"overloads"`
	Arities   []int  `json:"arities"`
	Ambiguous []int  `json:"ambiguous,omitempty"`
	Missing   string `json:"missing,omitempty"`
}

// CheckOutput is the root object written by `wrapgen check --format json`.
type CheckOutput struct {
	Package     string           `json:"package"`
	Sets        []SetJSON        `json:"sets"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// Diagnostics converts items to their JSON form, keeping order.
func Diagnostics(items []diag.Diagnostic) []DiagnosticJSON {
	out := make([]DiagnosticJSON, 0, len(items))
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.Label(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Subject:  d.Subject,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			dj.Notes = append(dj.Notes, NoteJSON{Subject: n.Subject, Message: n.Msg})
		}
		out = append(out, dj)
	}
	return out
}

// WriteCheck encodes out with two-space indentation. Count is filled in.
func WriteCheck(w io.Writer, out CheckOutput) error {
	if out.Sets == nil {
		out.Sets = []SetJSON{}
	}
	if out.Diagnostics == nil {
		out.Diagnostics = []DiagnosticJSON{}
	}
	out.Count = len(out.Diagnostics)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
