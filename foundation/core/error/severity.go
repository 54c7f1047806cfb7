// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The logger picks its
//              level from the severity when it renders an *Error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-19 v0.2.0: Severity mapping for registry and dispatch codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a caller mistake, e.g. a malformed command argument
	SeverityLow Severity = iota

	// SeverityMedium indicates a failed operation the bot recovers from
	SeverityMedium

	// SeverityHigh indicates a broken dependency such as the quote database
	SeverityHigh

	// SeverityCritical indicates the bot cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeDatabaseError, CodeConfigError:
		return SeverityHigh

	case CodeModuleClash, CodeFeatureClash, CodeInternal:
		return SeverityMedium

	case CodeInvalidInput, CodeNotFound, CodeUnknownCommand, CodeForbidden,
		CodeInvalidCommandName, CodeInvalidPattern, CodeInvalidSyntax,
		CodeUnsupportedAttribute, CodeModuleFinalized,
		CodeTriggerNotFound, CodeAmbiguousTrigger:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
