package overload

import (
	"wrapgen/internal/decl"
	"wrapgen/internal/guard"
)

// CheckDuplicateNargs builds the ambiguity guard: a keyword-free call whose
// argument count equals a shared arity is rejected outright. ok is false when
// every arity is unique and no guard is needed.
//
// Any keyword argument disables the guard, even when the keyword names do
// not tell the colliding signatures apart; those calls fall through to the
// per-signature coercion checks.
func (o *ArgumentOverloads) CheckDuplicateNargs() (st guard.Stmt, ok bool) {
	dups := o.AmbiguousArities()
	if len(dups) == 0 {
		return guard.Stmt{}, false
	}
	return guard.NewAmbiguityCheck(dups), true
}

// ResolveOverloadParams builds the guard for one signature: an arity check,
// then (for non-empty signatures) binding and per-argument coercion. Both fall
// through with a no-match result instead of raising.
func (o *ArgumentOverloads) ResolveOverloadParams(args decl.ArgumentList, isVoid bool) []guard.Stmt {
	stmts := []guard.Stmt{guard.NewArityCheck(len(args), !isVoid)}
	if len(args) > 0 {
		stmts = append(stmts, guard.NewBindAndCoerce(args, !isVoid))
	}
	return stmts
}

// Dispatch assembles the decision cascade: the ambiguity guard first, then
// one guard per signature in declaration order.
func (o *ArgumentOverloads) Dispatch(name string, isVoid bool) guard.Dispatch {
	d := guard.Dispatch{
		Name:    name,
		Returns: !isVoid,
		Guards:  make([]guard.Guard, 0, len(o.argLists)),
	}
	if st, ok := o.CheckDuplicateNargs(); ok {
		d.Ambiguity = &st
	}
	for i, argList := range o.argLists {
		d.Guards = append(d.Guards, guard.Guard{
			Index: i,
			Label: argList.String(),
			Stmts: o.ResolveOverloadParams(argList, isVoid),
		})
	}
	return d
}
