// ============================================================================
// chatbot - Modular Chat Bot Runtime
// ============================================================================
//
// Package:     version
// Description: Central version information for the bot binary
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version is the release of the bot
const Version = "0.3.0"

// Commit is set at build time via -ldflags "-X .../version.Commit=..."
var Commit = "dev"

// String returns a one-line description of the build
func String(name string) string {
	return fmt.Sprintf("%s %s (%s, %s %s/%s)", name, Version, Commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
