package decl

import "strings"

// Argument is one named, typed parameter of a signature.
type Argument struct {
	Name    string
	Type    Qualified
	IsConst bool
	IsRef   bool
	IsPtr   bool
}

// ExpandTemplate returns a copy of a with ts applied to its type.
func (a Argument) ExpandTemplate(ts TemplateSubstitution) Argument {
	out := a
	out.Type = ts.TryToSubstitute(a.Type)
	return out
}

func (a Argument) String() string {
	var b strings.Builder
	if a.IsConst {
		b.WriteString("const ")
	}
	b.WriteString(a.Type.QualifiedName("::"))
	switch {
	case a.IsPtr:
		b.WriteByte('*')
	case a.IsRef:
		b.WriteByte('&')
	}
	if a.Name != "" {
		b.WriteByte(' ')
		b.WriteString(a.Name)
	}
	return b.String()
}

// ArgumentList is one call signature. Order is positional binding order.
type ArgumentList []Argument

// ExpandTemplate returns a new list of the same length and order with ts
// applied to every argument type.
func (l ArgumentList) ExpandTemplate(ts TemplateSubstitution) ArgumentList {
	out := make(ArgumentList, len(l))
	for i, arg := range l {
		out[i] = arg.ExpandTemplate(ts)
	}
	return out
}

// Names lists parameter names in declared order.
func (l ArgumentList) Names() []string {
	names := make([]string, len(l))
	for i, arg := range l {
		names[i] = arg.Name
	}
	return names
}

// Types lists fully qualified parameter types joined by delim.
func (l ArgumentList) Types(delim string) []string {
	out := make([]string, len(l))
	for i, arg := range l {
		out[i] = arg.Type.QualifiedName(delim)
	}
	return out
}

// Clone deep-copies the list, including namespace slices.
func (l ArgumentList) Clone() ArgumentList {
	if l == nil {
		return nil
	}
	out := make(ArgumentList, len(l))
	for i, arg := range l {
		arg.Type = arg.Type.clone()
		out[i] = arg
	}
	return out
}

// Equal compares two lists argument by argument.
func (l ArgumentList) Equal(other ArgumentList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		a, b := l[i], other[i]
		if a.Name != b.Name || a.IsConst != b.IsConst || a.IsRef != b.IsRef || a.IsPtr != b.IsPtr {
			return false
		}
		if !a.Type.Equal(b.Type) {
			return false
		}
	}
	return true
}

func (l ArgumentList) String() string {
	parts := make([]string, len(l))
	for i, arg := range l {
		parts[i] = arg.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
