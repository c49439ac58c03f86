// Package errors provides structured error types for boardctx.
package errors

import (
	"fmt"
	"strings"
)

// Code represents a unique error code.
type Code string

// Error codes for boardctx.
const (
	// Scope errors (programmer errors)
	CodeScopeMissing Code = "SCOPE_MISSING"
	CodeProjectUnset Code = "PROJECT_UNSET"

	// Data errors
	CodeFetchFailed     Code = "FETCH_FAILED"
	CodeSnapshotCorrupt Code = "SNAPSHOT_CORRUPT"

	// Config errors
	CodeConfigInvalid Code = "CONFIG_INVALID"
)

// BoardError is the structured error type for boardctx.
type BoardError struct {
	Code  Code   `json:"code"`
	What  string `json:"what"`
	Why   string `json:"why,omitempty"`
	Fix   string `json:"fix,omitempty"`
	Cause error  `json:"-"`
}

// Error implements the error interface.
func (e *BoardError) Error() string {
	var b strings.Builder
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString(": ")
		b.WriteString(e.Why)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *BoardError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a BoardError with the same code.
func (e *BoardError) Is(target error) bool {
	t, ok := target.(*BoardError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// UserMessage returns a user-friendly message for CLI output.
func (e *BoardError) UserMessage() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString("\n\nWhy: ")
		b.WriteString(e.Why)
	}
	if e.Fix != "" {
		b.WriteString("\n\nFix: ")
		b.WriteString(e.Fix)
	}
	return b.String()
}

// --- Error constructors ---

// ErrScopeMissing returns the error for a strict directory consumer used
// without an enclosing provider scope. This is a programmer error and is
// meant to surface immediately, never to be rendered around.
func ErrScopeMissing(kind string) *BoardError {
	return &BoardError{
		Code: CodeScopeMissing,
		What: fmt.Sprintf("no %s directory in scope", kind),
		Why:  "A strict consumer was called on a context with no provider attached",
		Fix:  fmt.Sprintf("Attach the %s directory with directory.Attach, or use the *FromContextSafe accessor if empty defaults are acceptable", kind),
	}
}

// ErrProjectUnset returns the error for operations that need a project id.
func ErrProjectUnset() *BoardError {
	return &BoardError{
		Code: CodeProjectUnset,
		What: "no project selected",
		Why:  "This command needs a project id to scope its data",
		Fix:  "Pass --project, set BOARDCTX_PROJECT, or add project.id to .boardctx/config.yaml",
	}
}

// ErrFetchFailed wraps a collaborator fetch failure.
func ErrFetchFailed(what string, cause error) *BoardError {
	return &BoardError{
		Code:  CodeFetchFailed,
		What:  fmt.Sprintf("failed to fetch %s", what),
		Why:   "The board service request did not complete",
		Fix:   "Check service.url and your network; cached snapshots are used when available",
		Cause: cause,
	}
}

// ErrSnapshotCorrupt returns the error for an unreadable local snapshot.
func ErrSnapshotCorrupt(path string, cause error) *BoardError {
	return &BoardError{
		Code:  CodeSnapshotCorrupt,
		What:  fmt.Sprintf("snapshot database %s is corrupt", path),
		Why:   "The local snapshot store could not be read",
		Fix:   "Delete the file; it will be rebuilt on the next successful fetch",
		Cause: cause,
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(field, reason string) *BoardError {
	return &BoardError{
		Code: CodeConfigInvalid,
		What: fmt.Sprintf("invalid configuration: %s", field),
		Why:  reason,
		Fix:  "Check .boardctx/config.yaml and fix the invalid field",
	}
}
