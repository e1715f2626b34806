package diag

import (
	"errors"
	"fmt"
)

type Note struct {
	Subject string
	Msg     string
}

// Diagnostic is a finding addressed to the interface author.
// Subject names the callable, class or manifest the finding is about.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Subject  string
	Message  string
	Notes    []Note
}

func New(sev Severity, code Code, subject, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Subject:  subject,
		Message:  msg,
	}
}

func NewError(code Code, subject, msg string) Diagnostic {
	return New(SevError, code, subject, msg)
}

func (d Diagnostic) WithNote(subject, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Subject: subject, Msg: msg})
	return d
}

// Coded is implemented by errors that map onto a diagnostic code.
type Coded interface {
	error
	DiagCode() Code
}

// FromError converts err into an error diagnostic. A wrapped *Error is
// returned as is; other errors implementing Coded keep their code; everything
// else becomes UnknownCode.
func FromError(subject string, err error) Diagnostic {
	var de *Error
	if errors.As(err, &de) {
		d := de.Diag
		if d.Subject == "" {
			d.Subject = subject
		}
		return d
	}
	var coded Coded
	if errors.As(err, &coded) {
		return NewError(coded.DiagCode(), subject, coded.Error())
	}
	return NewError(UnknownCode, subject, err.Error())
}

// Error wraps a diagnostic so it can travel as an error value.
type Error struct {
	Diag Diagnostic
}

func (e *Error) Error() string {
	if e.Diag.Subject == "" {
		return fmt.Sprintf("%s: %s", e.Diag.Code.ID(), e.Diag.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Diag.Code.ID(), e.Diag.Subject, e.Diag.Message)
}

func (e *Error) DiagCode() Code { return e.Diag.Code }

// Errorf builds an *Error with a formatted message.
func Errorf(code Code, subject, format string, args ...any) error {
	return &Error{Diag: NewError(code, subject, fmt.Sprintf(format, args...))}
}
