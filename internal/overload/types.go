package overload

import "sort"

// TypeSet is the set of fully qualified type names a module can bind.
type TypeSet map[string]struct{}

func NewTypeSet(names ...string) TypeSet {
	s := make(TypeSet, len(names))
	s.Add(names...)
	return s
}

func (s TypeSet) Add(names ...string) {
	for _, n := range names {
		s[n] = struct{}{}
	}
}

func (s TypeSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted lists the set in lexical order.
func (s TypeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
