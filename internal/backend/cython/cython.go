// Package cython renders dispatch guards as Cython (.pyx) source.
package cython

import (
	"strconv"
	"strings"

	"wrapgen/internal/backend"
	"wrapgen/internal/decl"
	"wrapgen/internal/guard"
)

func init() { backend.Register(Backend{}) }

// Backend emits tab-indented Cython.
type Backend struct{}

func (Backend) Language() string      { return "cython" }
func (Backend) FileExtension() string { return "pyx" }
func (Backend) IndentUnit() string    { return "\t" }

func (Backend) EmitComment(w *backend.Writer, text string) {
	w.Line("# %s", text)
}

func (b Backend) EmitStmt(w *backend.Writer, st guard.Stmt) {
	switch data := st.Data.(type) {
	case guard.AmbiguityCheckData:
		w.Line("if len(kwargs)==0 and len(args)+len(kwargs) in [%s]:", joinInts(data.Arities))
		w.Indent()
		emitRaise(w, data.Raise)
		w.Dedent()
	case guard.ArityCheckData:
		w.Line("if len(args)+len(kwargs) !=%d:", data.Arity)
		w.Indent()
		emitNoMatch(w, data.OnMismatch)
		w.Dedent()
	case guard.BindAndCoerceData:
		names := make([]string, len(data.Params))
		for i, p := range data.Params {
			names[i] = p.Name
		}
		w.Line("__names = [%s]", backend.QuotedList(names))
		w.Line("__params = {}")
		w.Line("for i in range(len(args)):")
		w.Indent()
		w.Line("__params[__names[i]] = args[i]")
		w.Dedent()
		w.Line("__params.update(kwargs)")
		w.Line("try:")
		w.Indent()
		for _, p := range data.Params {
			w.Line("%s = <%s>(__params[%s])", backend.Ident(p.Name), castType(p.Type), backend.Quote(p.Name))
		}
		w.Dedent()
		w.Line("except:")
		w.Indent()
		emitNoMatch(w, data.OnFailure)
		w.Dedent()
	case guard.NoMatchData:
		emitNoMatch(w, data)
	case guard.RaiseData:
		emitRaise(w, data)
	}
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

// castType is the Cython cast target. Extension types use the checked
// form <T?> so a wrong type raises instead of being reinterpreted.
func castType(t decl.Qualified) string {
	if t.IsBasis() {
		return t.Name
	}
	return t.Name + "?"
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
