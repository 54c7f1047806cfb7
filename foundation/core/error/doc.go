// Package error provides structured errors for the chat bot.
//
// Package: error
// Title: Structured Error Handling
// Description: An error type carrying a code, a severity, key/value details
//              and a captured stack. Module construction, the registry, the
//              dispatcher and the quote store report failures through it so
//              the logger can render them uniformly.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Usage:
//
//	err := error.New("command name contains whitespace").
//		WithCode(error.CodeInvalidCommandName).
//		WithDetail("command", name)
//
//	if error.HasCode(err, error.CodeInvalidCommandName) {
//		// reject the module
//	}
package error
