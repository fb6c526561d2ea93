// Package cli provides structured errors with stable exit codes for
// scripting around the ramlog tool.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes, stable for scripts wrapping the CLI.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsage    = 2
	ExitNotFound = 3
	ExitCorrupt  = 4
	ExitNetwork  = 5
)

// Error is a categorized CLI error.
type Error struct {
	Code    int    `json:"exit_code"`
	Type    string `json:"error"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// NewUsageError creates an error for invalid arguments.
func NewUsageError(msg string) *Error {
	return &Error{Code: ExitUsage, Type: "invalid_args", Message: msg}
}

// NewNotFoundError creates an error for a missing image or file.
func NewNotFoundError(msg string) *Error {
	return &Error{Code: ExitNotFound, Type: "not_found", Message: msg}
}

// NewCorruptError creates an error for an image that failed validation.
func NewCorruptError(msg string) *Error {
	return &Error{Code: ExitCorrupt, Type: "corrupt_image", Message: msg}
}

// NewNetworkError creates an error for a failed upload.
func NewNetworkError(msg string) *Error {
	return &Error{Code: ExitNetwork, Type: "network", Message: msg}
}

// ExitCode extracts the exit code from an error.
// Returns ExitInternal (1) for uncategorized errors, ExitOK (0) for nil.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ExitInternal
}

// FormatError writes the error to w. In JSON mode, it writes structured
// JSON. In text mode, it writes "error: <message>".
func FormatError(w io.Writer, err error, jsonMode bool) {
	if err == nil {
		return
	}

	if jsonMode {
		var ce *Error
		if !errors.As(err, &ce) {
			ce = &Error{
				Code:    ExitInternal,
				Type:    "internal",
				Message: err.Error(),
			}
		}
		data, _ := json.Marshal(ce)
		_, _ = fmt.Fprintln(w, string(data))
		return
	}

	_, _ = fmt.Fprintf(w, "error: %v\n", err)
}
