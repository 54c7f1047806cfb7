// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across the chat bot: module
//              construction, registry loading, dispatch, storage and
//              configuration.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Replaced platform codes with module registry codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Module construction
	CodeInvalidCommandName   Code = "INVALID_COMMAND_NAME"
	CodeInvalidPattern       Code = "INVALID_PATTERN"
	CodeInvalidSyntax        Code = "INVALID_SYNTAX"
	CodeUnsupportedAttribute Code = "UNSUPPORTED_ATTRIBUTE"
	CodeModuleFinalized      Code = "MODULE_FINALIZED"

	// Registry
	CodeModuleClash      Code = "MODULE_CLASH"
	CodeFeatureClash     Code = "FEATURE_CLASH"
	CodeTriggerNotFound  Code = "TRIGGER_NOT_FOUND"
	CodeAmbiguousTrigger Code = "AMBIGUOUS_TRIGGER"

	// Dispatch
	CodeUnknownCommand Code = "UNKNOWN_COMMAND"
	CodeForbidden      Code = "FORBIDDEN"

	// Storage and configuration
	CodeDatabaseError Code = "DATABASE_ERROR"
	CodeConfigError   Code = "CONFIG_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeInvalidCommandName, CodeInvalidPattern, CodeInvalidSyntax, CodeUnsupportedAttribute, CodeModuleFinalized,
		CodeModuleClash, CodeFeatureClash, CodeTriggerNotFound, CodeAmbiguousTrigger,
		CodeUnknownCommand, CodeForbidden,
		CodeDatabaseError, CodeConfigError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeInvalidCommandName, CodeInvalidPattern, CodeInvalidSyntax, CodeUnsupportedAttribute, CodeModuleFinalized:
		return "module"
	case CodeModuleClash, CodeFeatureClash, CodeTriggerNotFound, CodeAmbiguousTrigger:
		return "registry"
	case CodeUnknownCommand, CodeForbidden:
		return "dispatch"
	case CodeDatabaseError:
		return "database"
	case CodeConfigError:
		return "configuration"
	default:
		return "generic"
	}
}
