package diagnostics

import "fmt"

// Code is a stable diagnostic code. Downstream tooling filters on it, so
// codes are part of the public contract and never renamed.
type Code string

const (
	ModuleAlreadyDefined Code = "MODULE-ALREADY-DEFINED"
	NameConflict         Code = "NAME-CONFLICT"
	BuiltinRedefined     Code = "BUILTIN-REDEFINED"
	SelfReference        Code = "SELF-REFERENCE"
	ModuleNotFound       Code = "MODULE-NOT-FOUND"
	ParamNotFound        Code = "PARAM-NOT-FOUND"
	ParamNotConst        Code = "PARAM-NOT-CONST"
	NameNotFound         Code = "NAME-NOT-FOUND"
)

// DiagnosticError is a single structured diagnostic produced during
// resolution. Reference is the source identity of the offending node;
// 0 means the diagnostic has no source anchor (built-ins have none).
//
// Diagnostics are not fatal: a resolution pass always runs to completion
// and returns every diagnostic it accumulated.
type DiagnosticError struct {
	Code      Code   `json:"code"`
	Message   string `json:"message"`
	Reference int    `json:"reference,omitempty"`
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// New builds a diagnostic anchored to the given source identity.
func New(code Code, reference int, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		Reference: reference,
	}
}
