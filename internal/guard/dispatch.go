package guard

import (
	"fmt"
	"strings"
)

// Guard is the statement sequence deciding whether one signature matches.
type Guard struct {
	Index int    // position of the signature in declaration order
	Label string // signature as declared, for comments
	Stmts []Stmt
}

// Dispatch is the full decision cascade for one overload set.
type Dispatch struct {
	Name      string
	Returns   bool
	Ambiguity *Stmt // nil when every arity is unique
	Guards    []Guard
}

// Arity returns the arity checked by g, or -1 when g has no arity check.
func (g Guard) Arity() int {
	for _, st := range g.Stmts {
		if data, ok := st.Data.(ArityCheckData); ok {
			return data.Arity
		}
	}
	return -1
}

// Params returns the parameters bound by g in declaration order.
func (g Guard) Params() []Param {
	for _, st := range g.Stmts {
		if data, ok := st.Data.(BindAndCoerceData); ok {
			return data.Params
		}
	}
	return nil
}

// Dump renders d in a backend-neutral form, one statement per line.
func Dump(d Dispatch) string {
	var b strings.Builder
	fmt.Fprintf(&b, "dispatch %s returns=%t\n", d.Name, d.Returns)
	if d.Ambiguity != nil {
		b.WriteString("  ")
		b.WriteString(DumpStmt(*d.Ambiguity))
		b.WriteByte('\n')
	}
	for _, g := range d.Guards {
		fmt.Fprintf(&b, "  guard #%d %s\n", g.Index, g.Label)
		for _, st := range g.Stmts {
			b.WriteString("    ")
			b.WriteString(DumpStmt(st))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// DumpStmt renders a single statement.
func DumpStmt(st Stmt) string {
	switch data := st.Data.(type) {
	case AmbiguityCheckData:
		return fmt.Sprintf("%s arities=%v raise=%s", st.Kind, data.Arities, data.Raise.Error)
	case ArityCheckData:
		return fmt.Sprintf("%s n=%d %s", st.Kind, data.Arity, dumpNoMatch(data.OnMismatch))
	case BindAndCoerceData:
		parts := make([]string, len(data.Params))
		for i, p := range data.Params {
			parts[i] = p.Name + ":" + p.Type.String()
		}
		return fmt.Sprintf("%s [%s] %s", st.Kind, strings.Join(parts, ", "), dumpNoMatch(data.OnFailure))
	case NoMatchData:
		return dumpNoMatch(data)
	case RaiseData:
		return fmt.Sprintf("%s %s", st.Kind, data.Error)
	default:
		return st.Kind.String()
	}
}

func dumpNoMatch(d NoMatchData) string {
	if d.WithValue {
		return "else=(false, null)"
	}
	return "else=false"
}
