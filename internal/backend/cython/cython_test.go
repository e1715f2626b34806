package cython

import (
	"strings"
	"testing"

	"wrapgen/internal/backend"
	"wrapgen/internal/decl"
	"wrapgen/internal/guard"
	"wrapgen/internal/overload"
)

func args(pairs ...string) decl.ArgumentList {
	out := decl.ArgumentList{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, decl.Argument{Name: pairs[i], Type: decl.ParseQualified(pairs[i+1])})
	}
	return out
}

func TestRenderGuardWithValue(t *testing.T) {
	var o overload.ArgumentOverloads
	sig := args("x", "double", "pose", "gtsam::Pose2")
	got := backend.RenderGuard(Backend{}, guard.Guard{Stmts: o.ResolveOverloadParams(sig, false)}, 2)
	want := strings.Join([]string{
		"\t\tif len(args)+len(kwargs) !=2:",
		"\t\t\treturn False, None",
		"\t\t__names = ['x', 'pose']",
		"\t\t__params = {}",
		"\t\tfor i in range(len(args)):",
		"\t\t\t__params[__names[i]] = args[i]",
		"\t\t__params.update(kwargs)",
		"\t\ttry:",
		"\t\t\tx = <double>(__params['x'])",
		"\t\t\tpose = <Pose2?>(__params['pose'])",
		"\t\texcept:",
		"\t\t\treturn False, None",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected guard:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderZeroArityGuard(t *testing.T) {
	var o overload.ArgumentOverloads
	cases := []struct {
		isVoid bool
		want   string
	}{
		{false, "\tif len(args)+len(kwargs) !=0:\n\t\treturn False, None\n"},
		{true, "\tif len(args)+len(kwargs) !=0:\n\t\treturn False\n"},
	}
	for _, tc := range cases {
		got := backend.RenderGuard(Backend{}, guard.Guard{Stmts: o.ResolveOverloadParams(nil, tc.isVoid)}, 1)
		if got != tc.want {
			t.Fatalf("isVoid=%t: got %q want %q", tc.isVoid, got, tc.want)
		}
	}
}

func TestRenderAmbiguityGuard(t *testing.T) {
	var o overload.ArgumentOverloads
	o.PushBack(args("a", "int"))
	o.PushBack(args("a", "int", "b", "int"))
	o.PushBack(args("a", "double"))
	st, ok := o.CheckDuplicateNargs()
	if !ok {
		t.Fatalf("expected ambiguity")
	}
	got := backend.RenderStmt(Backend{}, st, 2)
	want := "\t\tif len(kwargs)==0 and len(args)+len(kwargs) in [1]:\n" +
		"\t\t\traise TypeError('Overloads with the same number of arguments exist. Please use keyword arguments to differentiate them!')\n"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestSourceWrapsEachGuardInItsOwnFunction(t *testing.T) {
	var o overload.ArgumentOverloads
	o.PushBack(args("a", "int"))
	o.PushBack(args("a", "double"))
	d := o.Dispatch("f", true)
	text := backend.RenderSource(Backend{}, d, backend.RenderDispatch(Backend{}, d, 1), 1)
	first := strings.Index(text, "# f overload 0 (int a)\ndef _f_0(__call, args, kwargs):\n")
	second := strings.Index(text, "# f overload 1 (double a)\ndef _f_1(__call, args, kwargs):\n")
	dispatcher := strings.Index(text, "# f dispatcher\ndef f(*args, **kwargs):\n\tif len(kwargs)==0")
	if first < 0 || second < 0 || dispatcher < 0 || !(first < second && second < dispatcher) {
		t.Fatalf("unexpected layout:\n%s", text)
	}
	for _, line := range []string{
		"\t__call(a)\n\treturn True\n",
		"\tif _f_1(__impls[1], args, kwargs):\n\t\treturn\n",
		"\traise TypeError('f: no overload matches the given arguments')\n",
	} {
		if !strings.Contains(text, line) {
			t.Fatalf("source misses %q:\n%s", line, text)
		}
	}
}

func TestReservedParameterName(t *testing.T) {
	var o overload.ArgumentOverloads
	got := backend.RenderGuard(Backend{}, guard.Guard{Stmts: o.ResolveOverloadParams(args("in", "int"), true)}, 0)
	if !strings.Contains(got, "__names = ['in']") || !strings.Contains(got, "\tin_ = <int>(__params['in'])\n") {
		t.Fatalf("reserved name not mangled:\n%s", got)
	}
}

func TestRegistered(t *testing.T) {
	b, err := backend.Lookup("Cython")
	if err != nil {
		t.Fatal(err)
	}
	if b.FileExtension() != "pyx" {
		t.Fatalf("extension %q", b.FileExtension())
	}
}
