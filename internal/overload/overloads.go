package overload

import (
	"strings"

	"wrapgen/internal/decl"
)

// ArgumentOverloads is the ordered set of signatures declared for one name.
//
// declared keeps the signatures as pushed; argLists is what callers see and
// what ExpandTemplate replaces. Expansion always starts from declared, so a
// second ExpandTemplate replaces the first instead of stacking on it.
type ArgumentOverloads struct {
	declared []decl.ArgumentList
	argLists []decl.ArgumentList
}

func (o *ArgumentOverloads) NrOverloads() int { return len(o.argLists) }

// ArgumentList returns the i-th signature. An out-of-range index is caller
// misuse and panics with *IndexOutOfRangeError.
func (o *ArgumentOverloads) ArgumentList(i int) decl.ArgumentList {
	if i < 0 || i >= len(o.argLists) {
		panic(&IndexOutOfRangeError{Index: i, Len: len(o.argLists)})
	}
	return o.argLists[i]
}

// ArgumentLists returns the held signatures in declaration order. Read-only.
func (o *ArgumentOverloads) ArgumentLists() []decl.ArgumentList { return o.argLists }

// PushBack appends args. Duplicates are kept.
func (o *ArgumentOverloads) PushBack(args decl.ArgumentList) {
	o.declared = append(o.declared, args)
	o.argLists = append(o.argLists, args)
}

// ExpandArgumentListsTemplate returns the declared signatures with ts applied,
// same length and order; names and arity are untouched.
func (o *ArgumentOverloads) ExpandArgumentListsTemplate(ts decl.TemplateSubstitution) []decl.ArgumentList {
	result := make([]decl.ArgumentList, 0, len(o.declared))
	for _, argList := range o.declared {
		result = append(result, argList.ExpandTemplate(ts))
	}
	return result
}

// ExpandTemplate replaces the held signatures with their expansion under ts.
func (o *ArgumentOverloads) ExpandTemplate(ts decl.TemplateSubstitution) {
	o.argLists = o.ExpandArgumentListsTemplate(ts)
}

// VerifyArguments fails on the first argument whose fully qualified type is
// not in known.
func (o *ArgumentOverloads) VerifyArguments(known TypeSet, context string) error {
	for _, argList := range o.argLists {
		for _, arg := range argList {
			fullType := arg.Type.QualifiedName("::")
			if !known.Has(fullType) {
				return &DependencyMissingError{Type: fullType, Context: "checking argument of " + context}
			}
		}
	}
	return nil
}

// Arities lists the size of each signature in declaration order.
func (o *ArgumentOverloads) Arities() []int {
	out := make([]int, len(o.argLists))
	for i, argList := range o.argLists {
		out[i] = len(argList)
	}
	return out
}

// AmbiguousArities lists every arity shared by two or more signatures, once,
// in the order the collision is first seen.
func (o *ArgumentOverloads) AmbiguousArities() []int {
	seen := make(map[int]bool, len(o.argLists))
	var dups []int
	for _, argList := range o.argLists {
		nargs := len(argList)
		reported, ok := seen[nargs]
		switch {
		case !ok:
			seen[nargs] = false
		case !reported:
			seen[nargs] = true
			dups = append(dups, nargs)
		}
	}
	return dups
}

// Clone deep-copies both the declared and held signatures.
func (o *ArgumentOverloads) Clone() ArgumentOverloads {
	return ArgumentOverloads{
		declared: cloneLists(o.declared),
		argLists: cloneLists(o.argLists),
	}
}

func (o *ArgumentOverloads) String() string {
	var b strings.Builder
	for _, argList := range o.argLists {
		b.WriteString(argList.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func cloneLists(in []decl.ArgumentList) []decl.ArgumentList {
	if in == nil {
		return nil
	}
	out := make([]decl.ArgumentList, len(in))
	for i, l := range in {
		out[i] = l.Clone()
	}
	return out
}
