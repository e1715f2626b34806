package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	codeColor    = color.New(color.Faint)
)

// FormatShort renders one line per diagnostic (plus indented notes):
//
//	error DEP1001 between: Missing dependency 'gtsam::Pose3' in checking argument of between
func FormatShort(items []Diagnostic, includeNotes bool) string {
	var b strings.Builder
	for i, d := range items {
		fmt.Fprintf(&b, "%s %s %s: %s", d.Severity.Label(), d.Code.ID(), subjectOrDash(d.Subject), oneLine(d.Message))
		if includeNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(&b, "\n  note %s: %s", subjectOrDash(n.Subject), oneLine(n.Msg))
			}
		}
		if i < len(items)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Print writes items to w, colouring severities when useColor is set.
func Print(w io.Writer, items []Diagnostic, useColor bool) {
	prev := color.NoColor
	color.NoColor = !useColor
	defer func() { color.NoColor = prev }()

	for _, d := range items {
		sev := severityColor(d.Severity).Sprint(d.Severity.Label())
		fmt.Fprintf(w, "%s %s %s: %s\n", sev, codeColor.Sprint(d.Code.ID()), subjectOrDash(d.Subject), oneLine(d.Message))
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", infoColor.Sprint("note"), subjectOrDash(n.Subject), oneLine(n.Msg))
		}
	}
}

func severityColor(s Severity) *color.Color {
	switch s {
	case SevError:
		return errorColor
	case SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func subjectOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
