package backend

import (
	"strings"
	"unicode"
)

// reserved lists the Python keywords plus the words Cython adds on top.
var reserved = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,

	"cdef": true, "cpdef": true, "ctypedef": true, "cimport": true, "include": true,
	"extern": true, "inline": true, "nogil": true, "gil": true, "public": true,
	"readonly": true, "api": true, "struct": true, "union": true, "enum": true,
	"fused": true, "sizeof": true, "NULL": true, "DEF": true, "IF": true,
	"ELIF": true, "ELSE": true,
}

// Ident returns name as a usable host identifier. Reserved words get a
// trailing underscore; the keyword argument key stays the original name.
func Ident(name string) string {
	if reserved[name] {
		return name + "_"
	}
	return name
}

// FuncName turns an overload set name such as "Pose2.between" into a
// host function name.
func FuncName(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
			sb.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return Ident(sb.String())
}
