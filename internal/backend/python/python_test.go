package python

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"wrapgen/internal/backend"
	"wrapgen/internal/decl"
	"wrapgen/internal/guard"
	"wrapgen/internal/overload"
)

func TestRenderGuardVoid(t *testing.T) {
	var o overload.ArgumentOverloads
	sig := decl.ArgumentList{
		{Name: "n", Type: decl.ParseQualified("size_t")},
		{Name: "p", Type: decl.ParseQualified("gtsam::Point2")},
	}
	got := backend.RenderGuard(Backend{}, guard.Guard{Stmts: o.ResolveOverloadParams(sig, true)}, 1)
	want := strings.Join([]string{
		"    if len(args) + len(kwargs) != 2:",
		"        return False",
		"    __names = ['n', 'p']",
		"    __params = dict(zip(__names, args))",
		"    __params.update(kwargs)",
		"    try:",
		"        n = __params['n']",
		"        if not (isinstance(n, int) and not isinstance(n, bool) and n >= 0):",
		"            raise TypeError('n')",
		"        p = __params['p']",
		"        if not isinstance(p, gtsam.Point2):",
		"            raise TypeError('p')",
		"    except (KeyError, TypeError, ValueError):",
		"        return False",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected guard:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderAmbiguityTuple(t *testing.T) {
	got := backend.RenderStmt(Backend{}, guard.NewAmbiguityCheck([]int{3}), 0)
	if !strings.HasPrefix(got, "if len(kwargs) == 0 and len(args) + len(kwargs) in (3,):\n    raise TypeError(") {
		t.Fatalf("got %q", got)
	}
	got = backend.RenderStmt(Backend{}, guard.NewAmbiguityCheck([]int{1, 2}), 0)
	if !strings.Contains(got, "in (1, 2):") {
		t.Fatalf("got %q", got)
	}
}

func TestNoMatchWithValue(t *testing.T) {
	got := backend.RenderStmt(Backend{}, guard.Stmt{Kind: guard.StmtNoMatch, Data: guard.NoMatchData{WithValue: true}}, 0)
	if got != "return False, None\n" {
		t.Fatalf("got %q", got)
	}
}

func sig(pairs ...string) decl.ArgumentList {
	out := decl.ArgumentList{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, decl.Argument{Name: pairs[i], Type: decl.ParseQualified(pairs[i+1])})
	}
	return out
}

func renderModule(sets ...guard.Dispatch) string {
	b := Backend{}
	var sb strings.Builder
	sb.WriteString(backend.Prelude(b, "test"))
	for _, d := range sets {
		sb.WriteString("\n")
		sb.WriteString(backend.RenderSource(b, d, backend.RenderDispatch(b, d, 1), 1))
	}
	return sb.String()
}

func runPython(t *testing.T, src string) string {
	t.Helper()
	python, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not available")
	}
	path := filepath.Join(t.TempDir(), "mod.py")
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := exec.Command(python, path).CombinedOutput()
	if err != nil {
		t.Fatalf("python: %v\n%s\nsource:\n%s", err, out, src)
	}
	return string(out)
}

func TestScalarChecksRejectLossyValues(t *testing.T) {
	var num, text overload.ArgumentOverloads
	num.PushBack(sig("x", "int"))
	num.PushBack(sig("x", "double"))
	text.PushBack(sig("s", "std::string", "flag", "bool"))

	src := renderModule(num.Dispatch("f", false), text.Dispatch("g", true)) + `
calls = []
IMPLEMENTATIONS['f'] = [lambda x: ('int', x), lambda x: ('double', x)]
IMPLEMENTATIONS['g'] = [lambda s, flag: calls.append((s, flag))]

def attempt(fn, *args, **kwargs):
    try:
        return fn(*args, **kwargs)
    except TypeError:
        return 'TypeError'

print(attempt(f, x=1))
print(attempt(f, x=1.7))
print(attempt(f, x='12'))
print(attempt(f, x=[1]))
print(attempt(g, 1.7, True))
print(attempt(g, 'a', 1))
attempt(g, 'a', flag=True)
print(calls)
`
	want := strings.Join([]string{
		"('int', 1)",
		"('double', 1.7)",
		"TypeError",
		"TypeError",
		"TypeError",
		"TypeError",
		"[('a', True)]",
		"",
	}, "\n")
	if got := runPython(t, src); got != want {
		t.Fatalf("dispatch results:\n%s\nwant:\n%s", got, want)
	}
}

func TestReservedParameterNames(t *testing.T) {
	var o overload.ArgumentOverloads
	o.PushBack(sig("from", "int", "lambda", "double"))
	d := o.Dispatch("span", false)

	guardText := backend.RenderGuard(Backend{}, d.Guards[0], 1)
	for _, line := range []string{
		"        from_ = __params['from']\n",
		"        lambda_ = float(lambda_)\n",
	} {
		if !strings.Contains(guardText, line) {
			t.Fatalf("guard misses %q:\n%s", line, guardText)
		}
	}

	src := renderModule(d) + `
IMPLEMENTATIONS['span'] = [lambda a, b: (a, b)]
print(span(**{'from': 2, 'lambda': 3}))
`
	if got := runPython(t, src); got != "(2, 3.0)\n" {
		t.Fatalf("got %q", got)
	}
}
