package overload

import (
	"strconv"

	"wrapgen/internal/decl"
)

// OverloadedFunction binds a name and an optional instantiation identity to
// one overload set. The identity is fixed by the first AddOverload.
type OverloadedFunction struct {
	name      string
	instName  *decl.Qualified
	verbose   bool
	overloads ArgumentOverloads
}

// AddOverload appends args. The first call records the identity and returns
// true; later calls return false, or an *IdentityConflictError without
// appending when the identity differs.
func (f *OverloadedFunction) AddOverload(name string, args decl.ArgumentList, instName *decl.Qualified, verbose bool) (bool, error) {
	first, err := f.initializeOrCheck(name, instName, verbose)
	if err != nil {
		return false, err
	}
	f.overloads.PushBack(args)
	return first, nil
}

func (f *OverloadedFunction) initializeOrCheck(name string, instName *decl.Qualified, verbose bool) (bool, error) {
	if name == "" {
		return false, ErrEmptyName
	}
	if f.name == "" {
		f.name = name
		f.instName = copyQualified(instName)
		f.verbose = verbose
		return true, nil
	}
	if f.name != name {
		return false, &IdentityConflictError{Name: f.name, Field: "name", Have: f.name, Got: name}
	}
	if !sameInstName(f.instName, instName) {
		return false, &IdentityConflictError{Name: f.name, Field: "instantiation", Have: instString(f.instName), Got: instString(instName)}
	}
	if f.verbose != verbose {
		return false, &IdentityConflictError{Name: f.name, Field: "verbose", Have: strconv.FormatBool(f.verbose), Got: strconv.FormatBool(verbose)}
	}
	return false, nil
}

func (f *OverloadedFunction) Name() string { return f.name }

// InstName returns the instantiation identity, or nil for a plain function.
func (f *OverloadedFunction) InstName() *decl.Qualified { return f.instName }

func (f *OverloadedFunction) Verbose() bool { return f.verbose }

// Overloads exposes the owned overload set.
func (f *OverloadedFunction) Overloads() *ArgumentOverloads { return &f.overloads }

func (f *OverloadedFunction) NrOverloads() int { return f.overloads.NrOverloads() }

func (f *OverloadedFunction) ArgumentList(i int) decl.ArgumentList {
	return f.overloads.ArgumentList(i)
}

// ExpandTemplate instantiates every held signature under ts.
func (f *OverloadedFunction) ExpandTemplate(ts decl.TemplateSubstitution) {
	f.overloads.ExpandTemplate(ts)
}

// VerifyArguments checks every argument type, using the name as context.
func (f *OverloadedFunction) VerifyArguments(known TypeSet) error {
	return f.overloads.VerifyArguments(known, f.name)
}

// Clone returns an independent deep copy.
func (f *OverloadedFunction) Clone() *OverloadedFunction {
	return &OverloadedFunction{
		name:      f.name,
		instName:  copyQualified(f.instName),
		verbose:   f.verbose,
		overloads: f.overloads.Clone(),
	}
}

func copyQualified(q *decl.Qualified) *decl.Qualified {
	if q == nil {
		return nil
	}
	out := *q
	out.Namespaces = append([]string(nil), q.Namespaces...)
	return &out
}

func sameInstName(a, b *decl.Qualified) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func instString(q *decl.Qualified) string {
	if q == nil {
		return "none"
	}
	return q.QualifiedName("::")
}
