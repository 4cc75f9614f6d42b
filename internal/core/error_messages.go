package core

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Users quote the code; support staff look it up here and then
// search the logs by request id for the technical error.
//
// # Database Errors (DB000-DB099)
//
//	DB001 - Duplicate key: A record with this key already exists
//	        Patterns: "duplicate key", "unique constraint failed"
//
//	DB002 - Unique constraint: This value must be unique but already exists
//	        Patterns: "unique constraint", "violates unique"
//
//	DB003 - Foreign key: Referenced record does not exist
//	        Patterns: "foreign key constraint", "violates foreign key"
//
//	DB004 - Connection refused: Unable to connect to database
//	        Patterns: "connection refused"
//
//	DB005 - Connection reset: Database connection was interrupted
//	        Patterns: "connection reset"
//
//	DB006 - Timeout: Operation timed out
//	        Patterns: "timeout"
//
//	DB007 - Deadlock: Database was busy with conflicting operations
//	        Patterns: "deadlock"
//
//	DB008 - Missing value: A required column was left empty
//	        Patterns: "not-null constraint", "not null constraint"
//
//	DB000 - Query failed: Any other persistence error
//	        Patterns: "query failed"
//
// # Validation Errors (VAL000-VAL099)
//
//	VAL001 - Invalid date        Patterns: "invalid date"
//	VAL002 - Invalid number      Patterns: "invalid number"
//	VAL003 - Required field      Patterns: "required field"
//	VAL004 - Invalid email       Patterns: "invalid email"
//	VAL005 - Passwords mismatch  Patterns: "passwords do not match"
//	VAL006 - Unknown field       Patterns: "unknown field"
//	VAL000 - Other validation    Patterns: "validation failed"
//
// # Lookup Errors (NF001, ENT001-ENT002)
//
//	NF001  - Record not found      Patterns: "record not found"
//	ENT001 - Unknown entity        Patterns: "unknown entity"
//	ENT002 - Unknown option list   Patterns: "unknown option list"
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Unsupported format  Patterns: "unsupported export format"
//	EXP002 - System busy         Patterns: "too many exports"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled   Patterns: "context canceled"
//	REQ002 - Request timeout     Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests  Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches.
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns are defined
// before general ones.

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
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Database Constraint Errors (DB001-DB003, DB008)
	// =========================================================================
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this key already exists",
			Action:  "Use a different key or edit the existing record",
			Code:    "DB001",
		},
	},
	{
		pattern: "unique constraint failed",
		msg: UserMessage{
			Message: "A record with this key already exists",
			Action:  "Use a different key or edit the existing record",
			Code:    "DB001",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Choose a value that is not already in use",
			Code:    "DB002",
		},
	},
	{
		pattern: "violates unique",
		msg: UserMessage{
			Message: "A duplicate value was found",
			Action:  "Choose a value that is not already in use",
			Code:    "DB002",
		},
	},
	{
		pattern: "foreign key constraint",
		msg: UserMessage{
			Message: "Referenced record does not exist",
			Action:  "Create the referenced record first",
			Code:    "DB003",
		},
	},
	{
		pattern: "violates foreign key",
		msg: UserMessage{
			Message: "Referenced record does not exist",
			Action:  "Create the referenced record first",
			Code:    "DB003",
		},
	},
	{
		pattern: "not-null constraint",
		msg: UserMessage{
			Message: "A required value is missing",
			Action:  "Fill in every required field",
			Code:    "DB008",
		},
	},
	{
		pattern: "not null constraint",
		msg: UserMessage{
			Message: "A required value is missing",
			Action:  "Fill in every required field",
			Code:    "DB008",
		},
	},

	// =========================================================================
	// Database Connection Errors (DB004-DB007)
	// =========================================================================
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
			Action:  "Narrow your search or try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB007",
		},
	},

	// =========================================================================
	// Validation Errors (VAL001-VAL006, VAL000)
	// =========================================================================
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Invalid date format detected",
			Action:  "Use YYYY-MM-DD, MM/DD/YYYY, or Jan 15, 2024",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Invalid number format detected",
			Action:  "Remove currency symbols and use standard decimal format",
			Code:    "VAL002",
		},
	},
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "Required field is empty",
			Action:  "Fill in every required field",
			Code:    "VAL003",
		},
	},
	{
		pattern: "invalid email",
		msg: UserMessage{
			Message: "Invalid email address",
			Action:  "Enter an address like name@example.com",
			Code:    "VAL004",
		},
	},
	{
		pattern: "passwords do not match",
		msg: UserMessage{
			Message: "Passwords do not match",
			Action:  "Enter the same password in both fields",
			Code:    "VAL005",
		},
	},
	{
		pattern: "unknown field",
		msg: UserMessage{
			Message: "Unknown field",
			Action:  "Filter and sort only by fields of this record type",
			Code:    "VAL006",
		},
	},
	{
		pattern: "validation failed",
		msg: UserMessage{
			Message: "Some values are invalid",
			Action:  "Correct the highlighted fields and try again",
			Code:    "VAL000",
		},
	},

	// =========================================================================
	// Lookup Errors (NF001, ENT001-ENT002)
	// =========================================================================
	{
		pattern: "record not found",
		msg: UserMessage{
			Message: "Record not found",
			Action:  "The record may have been deleted",
			Code:    "NF001",
		},
	},
	{
		pattern: "unknown entity",
		msg: UserMessage{
			Message: "Page not found",
			Action:  "Verify the address is correct",
			Code:    "ENT001",
		},
	},
	{
		pattern: "unknown option list",
		msg: UserMessage{
			Message: "Option list not found",
			Action:  "Verify the option list name is correct",
			Code:    "ENT002",
		},
	},

	// =========================================================================
	// Export Errors (EXP001-EXP002)
	// =========================================================================
	{
		pattern: "unsupported export format",
		msg: UserMessage{
			Message: "Unsupported export format",
			Action:  "Use excel, csv, pdf or print",
			Code:    "EXP001",
		},
	},
	{
		pattern: "too many exports",
		msg: UserMessage{
			Message: "System is busy processing other exports",
			Action:  "Please wait a moment and try again",
			Code:    "EXP002",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ002)
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Narrow your search or try again later",
			Code:    "REQ002",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},

	// =========================================================================
	// Generic persistence failure (DB000). Kept last so every specific
	// pattern above wins.
	// =========================================================================
	{
		pattern: "query failed",
		msg: UserMessage{
			Message: "The request could not be completed",
			Action:  "Please try again or contact support",
			Code:    "DB000",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
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
//	err := errors.New("duplicate key violation")
//	msg := MapError(err)
//	// msg.Code == "DB001"
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
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
