// Package stringx provides the string helpers shared by the bot packages.
//
// Package: stringx
// Title: Extended String Operations
// Description: Whitespace-aware helpers that extend the standard strings
//              package: blank checks, command word splitting and rune-safe
//              truncation for chat output.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core string utilities
// - 2025-01-26 v0.2.0: Enhanced documentation
// - 2026-10-19 v0.3.0: Reduced to the helpers used by the bot
//
// Usage:
//
//	if stringx.ContainsWhitespace(name) {
//		return errInvalidName
//	}
//	cmd, args := stringx.FirstField("quote {r: foo}")
package stringx
