package bot

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
)

// ModuleRegistryClashError reports that a module name is already loaded
// under a mode that does not allow it.
type ModuleRegistryClashError struct {
	Existing ModuleInfo
	Incoming ModuleInfo
}

func (e *ModuleRegistryClashError) Error() string {
	return fmt.Sprintf("cannot load %s: %s is already loaded", e.Incoming, e.Existing)
}

// Code returns the structured error code of the clash.
func (e *ModuleRegistryClashError) Code() mdwerror.Code {
	return mdwerror.CodeModuleClash
}

// FeatureRegistryClashError reports that a command collides with an
// already loaded command under a mode that does not allow it.
type FeatureRegistryClashError struct {
	Existing FeatureInfo
	Incoming FeatureInfo

	// ExistingProvider and IncomingProvider name the modules involved.
	ExistingProvider ModuleInfo
	IncomingProvider ModuleInfo
}

func (e *FeatureRegistryClashError) Error() string {
	return fmt.Sprintf("cannot load %s from %s: clashes with %s from %s",
		e.Incoming, e.IncomingProvider, e.Existing, e.ExistingProvider)
}

// Code returns the structured error code of the clash.
func (e *FeatureRegistryClashError) Code() mdwerror.Code {
	return mdwerror.CodeFeatureClash
}

// LoadErrors collects every failure of a module load. It supports errors.Is
// and errors.As over its elements.
type LoadErrors []error

func (e LoadErrors) Error() string {
	switch len(e) {
	case 0:
		return "no errors"
	case 1:
		return e[0].Error()
	}

	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d load errors: %s", len(e), strings.Join(msgs, "; "))
}

func (e LoadErrors) Unwrap() []error {
	return e
}

// errOrNil keeps a nil LoadErrors from becoming a non-nil error value.
func (e LoadErrors) errOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
