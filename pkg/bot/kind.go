package bot

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
)

// FeatureKind tags the variant of a Feature.
type FeatureKind int

const (
	KindCommand FeatureKind = iota + 1
	KindTrigger
)

func (k FeatureKind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindTrigger:
		return "trigger"
	default:
		return fmt.Sprintf("FeatureKind(%d)", int(k))
	}
}

// MarshalText renders the kind by name in structured log output.
func (k FeatureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AuthLevel is the authorization a sender needs to invoke a command.
type AuthLevel int

const (
	// AuthPublic commands may be invoked by anyone.
	AuthPublic AuthLevel = iota
	// AuthOwner commands are restricted to the bot's configured owners.
	AuthOwner
)

func (a AuthLevel) String() string {
	switch a {
	case AuthPublic:
		return "public"
	case AuthOwner:
		return "owner"
	default:
		return fmt.Sprintf("AuthLevel(%d)", int(a))
	}
}

// Priority orders triggers during dispatch; higher priorities are tried
// first. Any int value is valid, the named levels are conventions.
type Priority int

const (
	PriorityMinimum Priority = -2
	PriorityLow     Priority = -1
	PriorityMedium  Priority = 0
	PriorityHigh    Priority = 1
	PriorityMaximum Priority = 2
)

func (p Priority) String() string {
	switch p {
	case PriorityMinimum:
		return "minimum"
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityMaximum:
		return "maximum"
	default:
		return fmt.Sprintf("%d", int(p))
	}
}

// LoadMode governs how a module load interacts with previously loaded state.
type LoadMode int

const (
	// LoadAdd fails if the module name is already loaded or if any command
	// collides with an existing command.
	LoadAdd LoadMode = iota
	// LoadReplace silently overwrites commands previously provided by a
	// module of the same name, and fails on collisions with other modules.
	LoadReplace
	// LoadForce overwrites colliding modules and commands unconditionally.
	LoadForce
)

func (m LoadMode) String() string {
	switch m {
	case LoadAdd:
		return "add"
	case LoadReplace:
		return "replace"
	case LoadForce:
		return "force"
	default:
		return fmt.Sprintf("LoadMode(%d)", int(m))
	}
}

// Valid reports whether m is one of the defined load modes.
func (m LoadMode) Valid() bool {
	return m >= LoadAdd && m <= LoadForce
}

// MarshalText renders the mode by name in structured log output.
func (m LoadMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseLoadMode parses "add", "replace" or "force", ignoring case.
func ParseLoadMode(s string) (LoadMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add":
		return LoadAdd, nil
	case "replace":
		return LoadReplace, nil
	case "force":
		return LoadForce, nil
	default:
		return LoadAdd, mdwerror.Newf("unknown load mode %q", s).WithCode(mdwerror.CodeInvalidInput)
	}
}
