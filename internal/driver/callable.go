package driver

import (
	"wrapgen/internal/decl"
	"wrapgen/internal/guard"
	"wrapgen/internal/overload"
)

// Callable is an overload set together with its return type. Like the
// signatures, the return type is expanded from its declared form.
type Callable struct {
	Fn       *overload.OverloadedFunction
	Returns  decl.Qualified
	declared decl.Qualified
}

func newCallable(returns decl.Qualified) *Callable {
	return &Callable{Fn: &overload.OverloadedFunction{}, Returns: returns, declared: returns}
}

// add appends one signature, rejecting a return type that differs from the
// one already recorded.
func (c *Callable) add(name string, args decl.ArgumentList, instName *decl.Qualified, verbose bool, returns decl.Qualified) error {
	if c.Fn.NrOverloads() > 0 && !c.declared.Equal(returns) {
		return &overload.IdentityConflictError{
			Name:  c.Fn.Name(),
			Field: "returns",
			Have:  c.declared.String(),
			Got:   returns.String(),
		}
	}
	_, err := c.Fn.AddOverload(name, args, instName, verbose)
	return err
}

func (c *Callable) Clone() *Callable {
	return &Callable{Fn: c.Fn.Clone(), Returns: c.Returns, declared: c.declared}
}

// ExpandTemplate instantiates the signatures and the return type.
func (c *Callable) ExpandTemplate(ts decl.TemplateSubstitution) {
	c.Fn.ExpandTemplate(ts)
	c.Returns = ts.TryToSubstitute(c.declared)
}

func (c *Callable) VerifyArguments(known overload.TypeSet) error {
	return c.Fn.VerifyArguments(known)
}

// Dispatch builds the guard cascade under the given display name.
func (c *Callable) Dispatch(display string) guard.Dispatch {
	return c.Fn.Overloads().Dispatch(display, c.Returns.IsVoid())
}
