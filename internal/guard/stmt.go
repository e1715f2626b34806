package guard

import "wrapgen/internal/decl"

// StmtKind enumerates guard statement kinds.
type StmtKind uint8

const (
	// StmtAmbiguityCheck aborts a keyword-free call whose argument count
	// cannot select a unique overload.
	StmtAmbiguityCheck StmtKind = iota
	// StmtArityCheck skips the signature when the total argument count differs.
	StmtArityCheck
	// StmtBindAndCoerce binds positional and keyword values to parameter
	// names and checks each against its declared type.
	StmtBindAndCoerce
	// StmtNoMatch reports that this signature does not apply.
	StmtNoMatch
	// StmtRaise raises a host-visible error.
	StmtRaise
)

// String returns a human-readable name for the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtAmbiguityCheck:
		return "AmbiguityCheck"
	case StmtArityCheck:
		return "ArityCheck"
	case StmtBindAndCoerce:
		return "BindAndCoerce"
	case StmtNoMatch:
		return "NoMatch"
	case StmtRaise:
		return "Raise"
	default:
		return "Unknown"
	}
}

// Stmt is one guard statement.
type Stmt struct {
	Kind StmtKind
	Data StmtData // Kind-specific payload
}

// StmtData is the interface for statement-specific data.
type StmtData interface {
	stmtData()
}

// AmbiguityCheckData holds data for StmtAmbiguityCheck.
type AmbiguityCheckData struct {
	Arities []int // arities shared by two or more signatures
	Raise   RaiseData
}

// ArityCheckData holds data for StmtArityCheck.
type ArityCheckData struct {
	Arity      int
	OnMismatch NoMatchData
}

// Param is one parameter slot filled by StmtBindAndCoerce.
type Param struct {
	Name string
	Type decl.Qualified
}

// BindAndCoerceData holds data for StmtBindAndCoerce.
// Keyword values overlay positional ones for the same slot.
type BindAndCoerceData struct {
	Params    []Param
	OnFailure NoMatchData
}

// NoMatchData holds data for StmtNoMatch.
// WithValue pairs the false flag with a null placeholder.
type NoMatchData struct {
	WithValue bool
}

// RaiseData holds data for StmtRaise.
type RaiseData struct {
	Error   string // host exception type
	Message string
}

func (AmbiguityCheckData) stmtData() {}
func (ArityCheckData) stmtData()     {}
func (BindAndCoerceData) stmtData()  {}
func (NoMatchData) stmtData()        {}
func (RaiseData) stmtData()          {}

// AmbiguityMessage is raised when only keyword arguments can pick an overload.
const AmbiguityMessage = "Overloads with the same number of arguments exist. Please use keyword arguments to differentiate them!"

// NewAmbiguityCheck builds the guard raised for keyword-free calls of an ambiguous arity.
func NewAmbiguityCheck(arities []int) Stmt {
	return Stmt{Kind: StmtAmbiguityCheck, Data: AmbiguityCheckData{
		Arities: arities,
		Raise:   RaiseData{Error: "TypeError", Message: AmbiguityMessage},
	}}
}

// NewArityCheck builds a count comparison against arity.
func NewArityCheck(arity int, withValue bool) Stmt {
	return Stmt{Kind: StmtArityCheck, Data: ArityCheckData{
		Arity:      arity,
		OnMismatch: NoMatchData{WithValue: withValue},
	}}
}

// NewBindAndCoerce builds the binding step for args.
func NewBindAndCoerce(args decl.ArgumentList, withValue bool) Stmt {
	params := make([]Param, len(args))
	for i, arg := range args {
		params[i] = Param{Name: arg.Name, Type: arg.Type}
	}
	return Stmt{Kind: StmtBindAndCoerce, Data: BindAndCoerceData{
		Params:    params,
		OnFailure: NoMatchData{WithValue: withValue},
	}}
}
