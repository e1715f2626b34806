package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLevelGatesScopes(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	run := Begin(tr, ScopeRun, "gen", 0)
	phase := Begin(tr, ScopePhase, "expand", run.ID())
	set := Begin(tr, ScopeSet, "set:between", phase.ID())
	if set.ID() != 0 {
		t.Fatalf("set span must be inert at phase level")
	}
	set.End("")
	phase.End("")
	run.WithExtra("sets", "3").End("ok")

	out := buf.String()
	if strings.Contains(out, "set:between") {
		t.Fatalf("set-scope event leaked:\n%s", out)
	}
	if strings.Count(out, "\n") != 4 {
		t.Fatalf("want 4 events, got:\n%s", out)
	}
	if !strings.Contains(out, "gen (ok) {sets=3}") {
		t.Fatalf("missing end detail:\n%s", out)
	}
}

func TestFailureAlwaysWritten(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatNDJSON)
	Point(tr, ScopePhase, "ignored", "", 0)
	Failure(tr, "verify", errors.New("missing dependency"), 0)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want one event, got %q", buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev["kind"] != "error" || ev["name"] != "verify" || ev["detail"] != "missing dependency" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer enabled")
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	tr := NewStreamTracer(&bytes.Buffer{}, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatalf("tracer not propagated")
	}
}

func TestParse(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel: %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("bad level accepted")
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat: %v %v", f, err)
	}
}
