package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Missing dependencies
	DepInfo           Code = 1000
	DependencyMissing Code = 1001 // argument type not in the known-type set

	// Declaration identity
	IdnInfo          Code = 2000
	IdentityConflict Code = 2001 // repeated declaration disagrees with the first one
	IdnEmptyName     Code = 2002

	// Internal misuse
	IdxInfo         Code = 3000
	IndexOutOfRange Code = 3001

	// Manifest / configuration
	CfgInfo           Code = 4000
	CfgParseError     Code = 4001
	CfgMissingField   Code = 4002
	CfgUnknownBackend Code = 4003
	CfgBadIndent      Code = 4004
	CfgBadArgument    Code = 4005
	CfgNotFound       Code = 4006

	// Dispatch analysis
	AmbInfo            Code = 5000
	AmbPositionalArity Code = 5001 // arity shared by several overloads, keywords required

	// Emission
	EmtInfo       Code = 6000
	EmtWriteError Code = 6001
	EmtCacheError Code = 6002
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	DepInfo:            "Dependency information",
	DependencyMissing:  "Missing dependency",
	IdnInfo:            "Identity information",
	IdentityConflict:   "Conflicting overload identity",
	IdnEmptyName:       "Overload declared without a name",
	IdxInfo:            "Index information",
	IndexOutOfRange:    "Signature index out of range",
	CfgInfo:            "Configuration information",
	CfgParseError:      "Malformed manifest",
	CfgMissingField:    "Missing manifest field",
	CfgUnknownBackend:  "Unknown backend",
	CfgBadIndent:       "Invalid indentation level",
	CfgBadArgument:     "Malformed argument declaration",
	CfgNotFound:        "Manifest not found",
	AmbInfo:            "Dispatch information",
	AmbPositionalArity: "Overloads share an arity",
	EmtInfo:            "Emission information",
	EmtWriteError:      "Failed to write output",
	EmtCacheError:      "Fragment cache failure",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DEP%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("IDN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IDX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("AMB%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("EMT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
