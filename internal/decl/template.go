package decl

// SelfPlaceholder names the class being instantiated inside its own methods.
const SelfPlaceholder = "This"

// TemplateSubstitution maps one formal placeholder to one concrete type.
// Expanded is the instantiated class that replaces SelfPlaceholder; it may be zero.
type TemplateSubstitution struct {
	Placeholder string
	Concrete    Qualified
	Expanded    Qualified
}

// NewSubstitution builds a substitution without a self type.
func NewSubstitution(placeholder string, concrete Qualified) TemplateSubstitution {
	return TemplateSubstitution{Placeholder: placeholder, Concrete: concrete}
}

// TryToSubstitute returns the replacement for t, or t unchanged.
func (ts TemplateSubstitution) TryToSubstitute(t Qualified) Qualified {
	if ts.Placeholder != "" && t.Match(ts.Placeholder) {
		return ts.Concrete.clone()
	}
	if !ts.Expanded.IsZero() && t.Match(SelfPlaceholder) {
		return ts.Expanded.clone()
	}
	return t
}

func (ts TemplateSubstitution) String() string {
	return ts.Placeholder + "=" + ts.Concrete.QualifiedName("::")
}
