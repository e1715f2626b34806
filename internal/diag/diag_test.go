package diag

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type codedErr struct{}

func (codedErr) Error() string  { return "Missing dependency 'Pose3' in checking argument of f" }
func (codedErr) DiagCode() Code { return DependencyMissing }

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		DependencyMissing:  "DEP1001",
		IdentityConflict:   "IDN2001",
		IndexOutOfRange:    "IDX3001",
		CfgNotFound:        "CFG4006",
		AmbPositionalArity: "AMB5001",
		EmtCacheError:      "EMT6002",
		UnknownCode:        "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d.ID() = %s, want %s", code, got, want)
		}
	}
}

func TestFromError(t *testing.T) {
	wrapped := fmt.Errorf("class Graph: %w", codedErr{})
	if d := FromError("Graph.add", wrapped); d.Code != DependencyMissing || d.Subject != "Graph.add" {
		t.Fatalf("coded: %+v", d)
	}

	de := Errorf(CfgMissingField, "wrapgen.toml", "missing [package].name")
	d := FromError("ignored", fmt.Errorf("load: %w", de))
	if d.Code != CfgMissingField || d.Subject != "wrapgen.toml" || d.Message != "missing [package].name" {
		t.Fatalf("diag error: %+v", d)
	}
	if got := de.Error(); got != "CFG4002: wrapgen.toml: missing [package].name" {
		t.Fatalf("Error() = %q", got)
	}

	if d := FromError("x", errors.New("boom")); d.Code != UnknownCode || d.Severity != SevError {
		t.Fatalf("plain: %+v", d)
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	b := NewBag(3)
	b.Add(New(SevWarning, AmbPositionalArity, "f", "shared arity"))
	b.Add(NewError(DependencyMissing, "f", "missing"))
	b.Add(New(SevWarning, AmbPositionalArity, "f", "shared arity"))
	if b.Add(NewError(DependencyMissing, "g", "dropped")) {
		t.Fatalf("bag accepted past its limit")
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("severity queries wrong")
	}

	b.Dedup()
	b.Sort()
	got := FormatShort(b.Items(), false)
	want := "error DEP1001 f: missing\nwarning AMB5001 f: shared arity"
	if got != want {
		t.Fatalf("FormatShort =\n%s\nwant\n%s", got, want)
	}
}

func TestReporterAndPrint(t *testing.T) {
	bag := NewBag(0)
	rep := BagReporter{Bag: bag}
	ReportError(rep, "between", codedErr{})
	rep.Report(AmbPositionalArity, SevWarning, "f", "calls with 3 arguments\nare ambiguous",
		[]Note{{Subject: "overload 0", Msg: "(int a, int b, int c)"}})
	ReportError(rep, "ignored", nil)

	var buf bytes.Buffer
	Print(&buf, bag.Items(), false)
	out := buf.String()
	for _, line := range []string{
		"error DEP1001 between: Missing dependency 'Pose3' in checking argument of f\n",
		"warning AMB5001 f: calls with 3 arguments are ambiguous\n",
		"  note overload 0: (int a, int b, int c)\n",
	} {
		if !strings.Contains(out, line) {
			t.Fatalf("output misses %q:\n%s", line, out)
		}
	}
	NopReporter{}.Report(UnknownCode, SevInfo, "", "", nil)
}
