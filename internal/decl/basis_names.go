package decl

import "sort"

// BasisNames lists the builtin scalar types, plus std::string, in lexical order.
func BasisNames() []string {
	out := make([]string, 0, len(basisTypes)+1)
	for name := range basisTypes {
		out = append(out, name)
	}
	out = append(out, "std::string")
	sort.Strings(out)
	return out
}
