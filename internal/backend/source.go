package backend

import (
	"strconv"
	"strings"

	"wrapgen/internal/guard"
)

// Implementations is the module-level dict the generated dispatchers read
// their callables from, keyed by overload set name.
const Implementations = "IMPLEMENTATIONS"

// Prelude renders the header of a generated module.
func Prelude(b Backend, pkg string) string {
	w := NewWriter(b.IndentUnit(), 0)
	b.EmitComment(w, "dispatch guards for "+pkg+", generated by wrapgen; do not edit")
	b.EmitComment(w, Implementations+"[name][i] is called when overload i of name matches")
	w.Line("%s = {}", Implementations)
	return w.String()
}

// RenderSource wraps the fragments of d into host functions. Each guard
// becomes the body of its own function, so a failed guard only leaves that
// function; the dispatcher tries them in declaration order. f must have
// been rendered at indentLevel, which is at least one.
func RenderSource(b Backend, d guard.Dispatch, f Fragments, indentLevel int) string {
	if indentLevel < 1 {
		indentLevel = 1
	}
	var sb strings.Builder
	name := FuncName(d.Name)
	overloads := make([]string, len(d.Guards))
	for i, g := range d.Guards {
		overloads[i] = FuncName("_" + name + "_" + strconv.Itoa(i))

		w := NewWriter(b.IndentUnit(), 0)
		b.EmitComment(w, d.Name+" overload "+strconv.Itoa(i)+" "+g.Label)
		w.Line("def %s(__call, args, kwargs):", overloads[i])
		sb.WriteString(w.String())
		sb.WriteString(f.Guards[i])

		params := g.Params()
		locals := make([]string, len(params))
		for j, p := range params {
			locals[j] = Ident(p.Name)
		}
		call := "__call(" + strings.Join(locals, ", ") + ")"
		w = NewWriter(b.IndentUnit(), indentLevel)
		if d.Returns {
			w.Line("return True, %s", call)
		} else {
			w.Line(call)
			w.Line("return True")
		}
		sb.WriteString(w.String())
		sb.WriteByte('\n')
	}

	w := NewWriter(b.IndentUnit(), 0)
	b.EmitComment(w, d.Name+" dispatcher")
	w.Line("def %s(*args, **kwargs):", name)
	sb.WriteString(w.String())
	sb.WriteString(f.Ambiguity)

	w = NewWriter(b.IndentUnit(), indentLevel)
	w.Line("__impls = %s[%s]", Implementations, Quote(d.Name))
	for i, fn := range overloads {
		if d.Returns {
			w.Line("__ok, __ret = %s(__impls[%d], args, kwargs)", fn, i)
			w.Line("if __ok:")
			w.Indent()
			w.Line("return __ret")
		} else {
			w.Line("if %s(__impls[%d], args, kwargs):", fn, i)
			w.Indent()
			w.Line("return")
		}
		w.Dedent()
	}
	w.Line("raise TypeError(%s)", Quote(d.Name+": no overload matches the given arguments"))
	sb.WriteString(w.String())
	return sb.String()
}
