package configuration

import (
	"fmt"

	"keypad-studio/models"
)

// ErrorCode identifies one class of validation failure.
type ErrorCode string

const (
	CodeMalformedJson           ErrorCode = "MalformedJson"
	CodeNotAnObject             ErrorCode = "NotAnObject"
	CodeUnexpectedKey           ErrorCode = "UnexpectedKey"
	CodeUnexpectedSlotKey       ErrorCode = "UnexpectedSlotKey"
	CodeMissingSlot             ErrorCode = "MissingSlot"
	CodeInvalidSlotShape        ErrorCode = "InvalidSlotShape"
	CodeInvalidIconId           ErrorCode = "InvalidIconId"
	CodeInvalidColor            ErrorCode = "InvalidColor"
	CodeIncompleteConfiguration ErrorCode = "IncompleteConfiguration"
)

// ValidationError is the tagged failure value returned by the contract.
// Validation never panics and never returns a partially normalized value
// alongside an error.
type ValidationError struct {
	Code    ErrorCode       `json:"code"`
	Message string          `json:"message"`
	Key     string          `json:"key,omitempty"`   // offending top-level key, if any
	Slots   []models.SlotID `json:"slots,omitempty"` // slots involved, if any
}

func (e *ValidationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %s (key %q)", e.Code, e.Message, e.Key)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}
