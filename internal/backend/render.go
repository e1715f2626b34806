package backend

import "wrapgen/internal/guard"

// Fragments is the rendered decision cascade of one overload set.
type Fragments struct {
	Name      string
	Ambiguity string   // empty when every arity is unique
	Guards    []string // one per signature, declaration order
	Labels    []string
}

// RenderStmt renders a single statement at indentLevel.
func RenderStmt(b Backend, st guard.Stmt, indentLevel int) string {
	w := NewWriter(b.IndentUnit(), indentLevel)
	b.EmitStmt(w, st)
	return w.String()
}

// RenderGuard renders the statements of one signature guard.
func RenderGuard(b Backend, g guard.Guard, indentLevel int) string {
	w := NewWriter(b.IndentUnit(), indentLevel)
	for _, st := range g.Stmts {
		b.EmitStmt(w, st)
	}
	return w.String()
}

// RenderDispatch renders the ambiguity guard (if any) and every signature guard.
func RenderDispatch(b Backend, d guard.Dispatch, indentLevel int) Fragments {
	f := Fragments{
		Name:   d.Name,
		Guards: make([]string, len(d.Guards)),
		Labels: make([]string, len(d.Guards)),
	}
	if d.Ambiguity != nil {
		f.Ambiguity = RenderStmt(b, *d.Ambiguity, indentLevel)
	}
	for i, g := range d.Guards {
		f.Guards[i] = RenderGuard(b, g, indentLevel)
		f.Labels[i] = g.Label
	}
	return f
}
