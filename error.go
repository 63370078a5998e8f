package blockdoc

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("blockdoc error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// MarkerError reports a marker whose deferred subtree is missing, or a
// deferred subtree whose marker is missing. Either case means content would
// be lost, so the whole conversion fails.
type MarkerError struct {
	MarkerID     string
	OwnerBlockID string
	Reason       string
	// Blocks is the number of top-level blocks in the affected subtree,
	// or zero when the subtree itself is missing.
	Blocks int
}

// Error implements the error interface.
func (e *MarkerError) Error() string {
	return fmt.Sprintf("blockdoc error: code=%s marker=%s owner=%s blocks=%d: %s",
		EINTERNAL, e.MarkerID, e.OwnerBlockID, e.Blocks, e.Reason)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	var me *MarkerError
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	} else if errors.As(err, &me) {
		return EINTERNAL
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	var me *MarkerError
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	} else if errors.As(err, &me) {
		return me.Reason
	}
	return "Internal error."
}
