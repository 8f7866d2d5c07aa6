package core

// error_messages.go maps fatal conversion errors to short user messages with
// a code for support reference.
//
// # Validation Errors (VAL)
//
//	VAL004 - Missing column: a recognised column is missing from the header
//	         Action: add the listed columns to the first line
//	VAL007 - Short row: a row has fewer cells than the header maps
//	         Action: check bad_rows.txt for the affected rows
//
// # File Errors (FILE)
//
//	FILE003 - Encoding error: a row is not valid UTF-8
//	          Action: save the file as UTF-8 and re-run the rejected rows
//	FILE005 - Empty file: the input has no header row
//	FILE006 - File not found: the input or output path does not exist
//	FILE007 - Permission denied: the input or output path is not accessible
//
// # Output Errors (OUT)
//
//	OUT001 - Serialization failed: a batch could not be rendered as XML
//	         Action: re-run with --keep-going to skip the batch
//
// # Configuration Errors (CFG)
//
//	CFG001 - Invalid configuration: a flag or environment value is malformed
//	         or out of range
//	         Action: fix the listed settings
//
// # Run Errors (RUN)
//
//	RUN001 - Cancelled: the run was interrupted
//
// # Default Error (ERR000)
//
// Typed errors are matched first with errors.As / errors.Is. Other errors fall
// back to case-insensitive substring patterns; the first match wins.

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgMissingColumn = UserMessage{
		Message: "Required column is missing from the header",
		Action:  "Add every recognised column to the first line of the file",
		Code:    "VAL004",
	}
	msgShortRow = UserMessage{
		Message: "A row has fewer cells than the header",
		Action:  "Check bad_rows.txt for the affected rows",
		Code:    "VAL007",
	}
	msgEncoding = UserMessage{
		Message: "File contains invalid characters",
		Action:  "Save the file as UTF-8 and re-run the rows from bad_rows.txt",
		Code:    "FILE003",
	}
	msgEmptyFile = UserMessage{
		Message: "The input file is empty",
		Action:  "Provide a file with a header row and data rows",
		Code:    "FILE005",
	}
	msgNotFound = UserMessage{
		Message: "File or directory not found",
		Action:  "Check the input path and --outdir",
		Code:    "FILE006",
	}
	msgPermission = UserMessage{
		Message: "Permission denied",
		Action:  "Check read access to the input and write access to --outdir",
		Code:    "FILE007",
	}
	msgSerialization = UserMessage{
		Message: "A batch could not be written as XML",
		Action:  "Re-run with --keep-going to skip the failing batch",
		Code:    "OUT001",
	}
	msgConfig = UserMessage{
		Message: "Invalid configuration",
		Action:  "Fix the listed flags or environment variables and re-run",
		Code:    "CFG001",
	}
	msgCancelled = UserMessage{
		Message: "Conversion was cancelled",
		Action:  "Re-run the conversion; existing batch files will be overwritten",
		Code:    "RUN001",
	}

	defaultMessage = UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Re-run with --log-level debug and check the log output",
		Code:    "ERR000",
	}
)

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns catch errors that lost their type, e.g. after formatting.
var errorPatterns = []errorPattern{
	{pattern: "config validation failed", msg: msgConfig},
	{pattern: "config load", msg: msgConfig},
	{pattern: "missing required column", msg: msgMissingColumn},
	{pattern: "encoding error", msg: msgEncoding},
	{pattern: "empty file", msg: msgEmptyFile},
	{pattern: "no such file", msg: msgNotFound},
	{pattern: "permission denied", msg: msgPermission},
}

// MapError converts a technical error to a user-friendly message.
// It returns the zero UserMessage for a nil error and the ERR000 fallback when
// nothing matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var (
		missing *MissingFieldError
		short   *ShortRowError
		enc     *RowEncodingError
		ser     *BatchSerializationError
	)
	switch {
	case errors.As(err, &missing):
		return msgMissingColumn
	case errors.As(err, &short):
		return msgShortRow
	case errors.As(err, &enc):
		return msgEncoding
	case errors.As(err, &ser):
		return msgSerialization
	case errors.Is(err, context.Canceled):
		return msgCancelled
	case errors.Is(err, os.ErrNotExist):
		return msgNotFound
	case errors.Is(err, os.ErrPermission):
		return msgPermission
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
