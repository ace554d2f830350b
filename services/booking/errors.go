package booking

import (
	"errors"
	"fmt"
)

// LedgerError is the common shape for booking failures. Code drives the
// orchestrator's recovery decision; Message is internal and never echoed to
// the end user verbatim.
type LedgerError struct {
	Code    string
	Message string
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeValidation          = "validationError"
	CodeNotFound            = "notFoundError"
	CodeConflict            = "conflictError"
	CodeGenerationExhausted = "generationExhausted"
	CodeExternalTool        = "externalToolError"
)

func NewValidationError(msg string) error {
	return &LedgerError{Code: CodeValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &LedgerError{Code: CodeNotFound, Message: msg}
}

func NewConflictError(msg string) error {
	return &LedgerError{Code: CodeConflict, Message: msg}
}

func NewGenerationExhaustedError(msg string) error {
	return &LedgerError{Code: CodeGenerationExhausted, Message: msg}
}

func NewExternalToolError(msg string) error {
	return &LedgerError{Code: CodeExternalTool, Message: msg}
}

// HasCode reports whether err is a LedgerError carrying the given code.
func HasCode(err error, code string) bool {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.Code == code
	}
	return false
}
