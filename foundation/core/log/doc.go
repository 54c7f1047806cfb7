// Package log provides structured logging for the chat bot.
//
// Package: log
// Title: Structured Logging
// Description: A small structured logger with persistent context fields,
//              JSON/text/console formatters and first-class rendering of
//              foundation/core/error values.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatText}).
//		WithField("component", "module-registry")
//
//	logger.Info("Module loaded", log.Fields{"module": "quote", "features": 2})
//	logger.LogError(err)
package log
