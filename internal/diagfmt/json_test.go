package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"wrapgen/internal/diag"
)

func TestWriteCheck(t *testing.T) {
	items := []diag.Diagnostic{
		diag.New(diag.SevWarning, diag.AmbPositionalArity, "f", "shared arity").
			WithNote("overload 0", "(int a)"),
	}
	var buf bytes.Buffer
	err := WriteCheck(&buf, CheckOutput{
		Package:     "geometry",
		Sets:        []SetJSON{{Name: "f", Overloads: 2, Arities: []int{1, 1}, Ambiguous: []int{1}}},
		Diagnostics: Diagnostics(items),
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	var got CheckOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if got.Count != 1 || got.Diagnostics[0].Code != "AMB5001" || got.Diagnostics[0].Severity != "warning" {
		t.Fatalf("diagnostics = %+v", got.Diagnostics)
	}
	if got.Diagnostics[0].Notes[0].Message != "(int a)" {
		t.Fatalf("notes = %+v", got.Diagnostics[0].Notes)
	}
	if got.Sets[0].Ambiguous[0] != 1 {
		t.Fatalf("sets = %+v", got.Sets)
	}
}

func TestWriteCheckEmptyArrays(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCheck(&buf, CheckOutput{Package: "p"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "{\n  \"package\": \"p\",\n  \"sets\": [],\n  \"diagnostics\": [],\n  \"count\": 0\n}\n"
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}
}
