package decl

import "strings"

// Qualified is a possibly namespaced type name, e.g. gtsam::Pose2.
type Qualified struct {
	Namespaces []string
	Name       string
}

// basisTypes are the scalar types a host runtime converts natively.
var basisTypes = map[string]struct{}{
	"bool":          {},
	"char":          {},
	"unsigned char": {},
	"int":           {},
	"size_t":        {},
	"double":        {},
	"string":        {},
}

// ParseQualified splits a "::"-separated name into namespaces and a final name.
func ParseQualified(s string) Qualified {
	s = strings.TrimSpace(s)
	if s == "" {
		return Qualified{}
	}
	parts := strings.Split(s, "::")
	q := Qualified{Name: strings.TrimSpace(parts[len(parts)-1])}
	for _, ns := range parts[:len(parts)-1] {
		ns = strings.TrimSpace(ns)
		if ns == "" {
			continue
		}
		q.Namespaces = append(q.Namespaces, ns)
	}
	return q
}

// QualifiedName joins namespaces and name with delim.
func (q Qualified) QualifiedName(delim string) string {
	if len(q.Namespaces) == 0 {
		return q.Name
	}
	return strings.Join(q.Namespaces, delim) + delim + q.Name
}

// Match reports whether q is the unqualified name.
func (q Qualified) Match(name string) bool {
	return len(q.Namespaces) == 0 && q.Name == name
}

// Equal compares namespaces and name.
func (q Qualified) Equal(other Qualified) bool {
	if q.Name != other.Name || len(q.Namespaces) != len(other.Namespaces) {
		return false
	}
	for i := range q.Namespaces {
		if q.Namespaces[i] != other.Namespaces[i] {
			return false
		}
	}
	return true
}

func (q Qualified) IsZero() bool {
	return q.Name == "" && len(q.Namespaces) == 0
}

// IsBasis reports whether q names a builtin scalar type.
func (q Qualified) IsBasis() bool {
	if len(q.Namespaces) != 0 {
		return q.QualifiedName("::") == "std::string"
	}
	_, ok := basisTypes[q.Name]
	return ok
}

// IsVoid reports whether q is the void type.
func (q Qualified) IsVoid() bool {
	return q.Match("void") || q.IsZero()
}

func (q Qualified) String() string {
	return q.QualifiedName("::")
}

func (q Qualified) clone() Qualified {
	if q.Namespaces == nil {
		return q
	}
	ns := make([]string, len(q.Namespaces))
	copy(ns, q.Namespaces)
	return Qualified{Namespaces: ns, Name: q.Name}
}
