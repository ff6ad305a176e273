package core

// Error codes reference.
//
// Technical errors are mapped to user-friendly messages with a code that
// users can quote to support staff. Patterns are matched case-insensitively
// with strings.Contains and the first match wins, so specific patterns come
// before general ones.
//
//	TBL001  Table not found          "table not found"
//	TBL002  Table is read-only       "table is read-only"
//	REQ001  Row is missing its id    "missing id field"
//	REQ002  Invalid row payload      "invalid row"
//	REQ003  Request cancelled        "context canceled"
//	REQ004  Request timed out        "context deadline exceeded"
//	REQ005  Row id is not a scalar   "invalid id field"
//	DB004   Connection refused       "connection refused"
//	DB005   Connection reset         "connection reset"
//	DB006   Timeout                  "timeout"
//	DB008   Missing relation         "does not exist"
//	RATE001 Too many requests        "rate limit"
//	AUTH001 Missing or invalid key   "api key"
//	ERR000  Anything else; check the logs for the technical error

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Order matters: the first matching pattern wins.
var errorPatterns = []errorPattern{
	// Table errors
	{
		pattern: "table not found",
		msg: UserMessage{
			Message: "Table not found",
			Action:  "Verify the table name is correct",
			Code:    "TBL001",
		},
	},
	{
		pattern: "table is read-only",
		msg: UserMessage{
			Message: "This table does not accept changes",
			Action:  "Edit the data at its source instead",
			Code:    "TBL002",
		},
	},

	// Request errors. Context errors come before the generic "timeout".
	{
		pattern: "missing id field",
		msg: UserMessage{
			Message: "The row has no id",
			Action:  "Include the table's id field in the row",
			Code:    "REQ001",
		},
	},
	{
		pattern: "invalid row",
		msg: UserMessage{
			Message: "The row could not be read",
			Action:  "Send the row as a JSON object",
			Code:    "REQ002",
		},
	},
	{
		pattern: "invalid id field",
		msg: UserMessage{
			Message: "The row's id must be a string, number or boolean",
			Action:  "Send the id as a plain value, not an object or list",
			Code:    "REQ005",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ003",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a narrower search or a smaller page size",
			Code:    "REQ004",
		},
	},

	// Database errors
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "does not exist",
		msg: UserMessage{
			Message: "The table's database relation is missing",
			Action:  "Check SQL_TABLES against the database schema",
			Code:    "DB008",
		},
	},

	// Access errors
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "api key",
		msg: UserMessage{
			Message: "Missing or invalid API key",
			Action:  "Send a valid key in the X-API-Key header",
			Code:    "AUTH001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// This is the fallback for unexpected errors. Support staff should check
// application logs for the original technical error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
//
// Example:
//
//	err := fmt.Errorf("%w: vendors", ErrTableNotFound)
//	msg := MapError(err)
//	// msg.Code == "TBL001"
//	// msg.Message == "Table not found"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
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
//
// Example output: "Table not found (Code: TBL001). Verify the table name is correct"
//
// This is the primary function for displaying errors to end users.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing checks if an error matches a known pattern and should be shown to users.
// Returns true if the error matches a specific pattern (not the generic ERR000 fallback).
// Use this to decide whether to show the raw error or the mapped user message.
//
// Example:
//
//	if IsUserFacing(err) {
//	    showToUser(FormatUserError(err))
//	} else {
//	    slog.Error("request failed", "error", err)
//	    showToUser("An error occurred. Please try again.")
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
// The original error is preserved for logging while providing a clean message for users.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError creates a UserError by mapping a technical error to a user-friendly message.
// The returned UserError preserves the original technical error for logging via Unwrap(),
// while providing a clean user message via Error().
//
// Returns nil if err is nil.
//
// Example:
//
//	ue := NewUserError(dbErr)
//	slog.Error("fetch", "error", ue.Technical) // Log original error
//	fmt.Println(ue.Error())                    // Show "Unable to connect to database"
//	fmt.Println(ue.User.Code)                  // Show "DB004"
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
