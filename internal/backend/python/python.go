// Package python renders dispatch guards as plain Python source.
package python

import (
	"fmt"
	"strconv"
	"strings"

	"wrapgen/internal/backend"
	"wrapgen/internal/decl"
	"wrapgen/internal/guard"
)

func init() { backend.Register(Backend{}) }

// Backend emits four-space indented Python 3.
type Backend struct{}

func (Backend) Language() string      { return "python" }
func (Backend) FileExtension() string { return "py" }
func (Backend) IndentUnit() string    { return "    " }

func (Backend) EmitComment(w *backend.Writer, text string) {
	w.Line("# %s", text)
}

// scalarCheck maps basis types onto the condition a value must satisfy;
// %[1]s is the local name. bool is a subclass of int, so the numeric
// checks exclude it.
var scalarCheck = map[string]string{
	"bool":          "isinstance(%[1]s, bool)",
	"char":          "isinstance(%[1]s, str) and len(%[1]s) == 1",
	"unsigned char": "isinstance(%[1]s, int) and not isinstance(%[1]s, bool) and 0 <= %[1]s <= 255",
	"int":           "isinstance(%[1]s, int) and not isinstance(%[1]s, bool)",
	"size_t":        "isinstance(%[1]s, int) and not isinstance(%[1]s, bool) and %[1]s >= 0",
	"double":        "isinstance(%[1]s, (int, float)) and not isinstance(%[1]s, bool)",
	"string":        "isinstance(%[1]s, str)",
}

func (b Backend) EmitStmt(w *backend.Writer, st guard.Stmt) {
	switch data := st.Data.(type) {
	case guard.AmbiguityCheckData:
		w.Line("if len(kwargs) == 0 and len(args) + len(kwargs) in (%s):", tuple(data.Arities))
		w.Indent()
		emitRaise(w, data.Raise)
		w.Dedent()
	case guard.ArityCheckData:
		w.Line("if len(args) + len(kwargs) != %d:", data.Arity)
		w.Indent()
		emitNoMatch(w, data.OnMismatch)
		w.Dedent()
	case guard.BindAndCoerceData:
		names := make([]string, len(data.Params))
		for i, p := range data.Params {
			names[i] = p.Name
		}
		w.Line("__names = [%s]", backend.QuotedList(names))
		w.Line("__params = dict(zip(__names, args))")
		w.Line("__params.update(kwargs)")
		w.Line("try:")
		w.Indent()
		for _, p := range data.Params {
			emitCoerce(w, p)
		}
		w.Dedent()
		w.Line("except (KeyError, TypeError, ValueError):")
		w.Indent()
		emitNoMatch(w, data.OnFailure)
		w.Dedent()
	case guard.NoMatchData:
		emitNoMatch(w, data)
	case guard.RaiseData:
		emitRaise(w, data)
	}
}

func emitCoerce(w *backend.Writer, p guard.Param) {
	key := backend.Quote(p.Name)
	local := backend.Ident(p.Name)
	w.Line("%s = __params[%s]", local, key)
	if check, ok := scalarCondition(p.Type, local); ok {
		w.Line("if not (%s):", check)
	} else {
		w.Line("if not isinstance(%s, %s):", local, p.Type.QualifiedName("."))
	}
	w.Indent()
	w.Line("raise TypeError(%s)", key)
	w.Dedent()
	if p.Type.IsBasis() && p.Type.Name == "double" {
		w.Line("%s = float(%s)", local, local)
	}
}

func scalarCondition(t decl.Qualified, local string) (string, bool) {
	if !t.IsBasis() {
		return "", false
	}
	check, ok := scalarCheck[t.Name]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(check, local), true
}

func emitNoMatch(w *backend.Writer, d guard.NoMatchData) {
	if d.WithValue {
		w.Line("return False, None")
		return
	}
	w.Line("return False")
}

func emitRaise(w *backend.Writer, r guard.RaiseData) {
	w.Line("raise %s(%s)", r.Error, backend.Quote(r.Message))
}

func tuple(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	if len(parts) == 1 {
		return parts[0] + ","
	}
	return strings.Join(parts, ", ")
}
