package overload

import (
	"fmt"

	"wrapgen/internal/diag"
)

// ErrEmptyName is returned when an overload is declared without a name.
var ErrEmptyName error = emptyNameError{}

type emptyNameError struct{}

func (emptyNameError) Error() string       { return "overload declared with an empty name" }
func (emptyNameError) DiagCode() diag.Code { return diag.IdnEmptyName }

// DependencyMissingError reports an argument type absent from the known-type set.
type DependencyMissingError struct {
	Type    string // fully qualified type name
	Context string
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("Missing dependency '%s' in %s", e.Type, e.Context)
}

func (e *DependencyMissingError) DiagCode() diag.Code { return diag.DependencyMissing }

// IdentityConflictError reports a repeated declaration that disagrees with
// the identity fixed by the first one.
type IdentityConflictError struct {
	Name  string
	Field string // "name", "instantiation", "verbose" or "returns"
	Have  string
	Got   string
}

func (e *IdentityConflictError) Error() string {
	return fmt.Sprintf("overload of %q declared with different %s: have %s, got %s", e.Name, e.Field, e.Have, e.Got)
}

func (e *IdentityConflictError) DiagCode() diag.Code { return diag.IdentityConflict }

// IndexOutOfRangeError is the panic value of ArgumentOverloads.ArgumentList
// when the index exceeds the overload count.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("signature index %d out of range [0,%d)", e.Index, e.Len)
}

func (e *IndexOutOfRangeError) DiagCode() diag.Code { return diag.IndexOutOfRange }
