package bot

import (
	"fmt"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
	"github.com/msto63/chatbot/foundation/utils/stringx"
)

// CommandAttr is an optional flag on a command. No command attributes are
// defined yet; every value is rejected by the builder.
type CommandAttr int

// TriggerAttr is an optional flag on a trigger.
type TriggerAttr int

const (
	// AlwaysWatching makes dispatch evaluate the trigger even when an earlier,
	// higher-priority trigger already fired for the message.
	AlwaysWatching TriggerAttr = iota + 1
)

func (a TriggerAttr) String() string {
	switch a {
	case AlwaysWatching:
		return "always-watching"
	default:
		return fmt.Sprintf("TriggerAttr(%d)", int(a))
	}
}

// Module is a named, uniquely identified bundle of features. A Module is
// immutable once built and is shared by pointer between the registry and
// every entry it provides.
type Module struct {
	name     string
	id       uuid.UUID
	features []Feature
}

func (m *Module) Name() string  { return m.name }
func (m *Module) ID() uuid.UUID { return m.id }

// Features returns the module's features in declaration order.
func (m *Module) Features() []Feature {
	out := make([]Feature, len(m.features))
	copy(out, m.features)
	return out
}

// Info returns the module's diagnostic summary.
func (m *Module) Info() ModuleInfo {
	return ModuleInfo{Name: m.name}
}

// Equal reports whether m and other are the same module. Identity is the
// module ID; two modules sharing an ID but not a name is a broken invariant.
func (m *Module) Equal(other *Module) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.id != other.id {
		return false
	}
	if m.name != other.name {
		panic(fmt.Sprintf("bot: modules %q and %q share id %s", m.name, other.name, m.id))
	}
	return true
}

// ModuleBuilder accumulates the features of a module. Each feature is
// validated when it is added; the first failure sticks and is returned by
// End, and later calls are ignored.
type ModuleBuilder struct {
	name     string
	features []Feature
	err      error
	ended    bool
}

// NewModule starts building a module called name.
func NewModule(name string) *ModuleBuilder {
	b := &ModuleBuilder{name: name}
	if stringx.IsBlank(name) {
		b.err = mdwerror.New("module name cannot be empty").
			WithCode(mdwerror.CodeInvalidInput)
	}
	return b
}

// Command adds a command. The name must not contain whitespace. syntax is a
// YAML template describing the arguments. A blank template declares a
// command that takes free text: its argument is passed on unparsed in
// CommandRequest.ArgText.
func (b *ModuleBuilder) Command(name, syntax, help string, auth AuthLevel, handler CommandHandler, attrs ...CommandAttr) *ModuleBuilder {
	if !b.usable() {
		return b
	}

	if stringx.IsBlank(name) || stringx.ContainsWhitespace(name) {
		return b.fail(mdwerror.Newf("command name %q must be non-empty and contain no whitespace", name).
			WithCode(mdwerror.CodeInvalidCommandName))
	}
	if handler == nil {
		return b.fail(mdwerror.Newf("command %q has no handler", name).
			WithCode(mdwerror.CodeInvalidInput))
	}

	parsed, err := ParseSyntax(syntax)
	if err != nil {
		return b.fail(mdwerror.Wrap(err, fmt.Sprintf("command %q", name)))
	}

	for _, attr := range attrs {
		switch attr {
		default:
			return b.fail(mdwerror.Newf("command %q: unsupported attribute %d", name, int(attr)).
				WithCode(mdwerror.CodeUnsupportedAttribute))
		}
	}

	b.features = append(b.features, &CommandFeature{
		name:       name,
		syntaxText: syntax,
		syntax:     parsed,
		help:       help,
		auth:       auth,
		handler:    handler,
	})
	return b
}

// Trigger adds a trigger. pattern is compiled case-insensitively.
func (b *ModuleBuilder) Trigger(name, pattern, help string, priority Priority, handler TriggerHandler, attrs ...TriggerAttr) *ModuleBuilder {
	if !b.usable() {
		return b
	}

	if handler == nil {
		return b.fail(mdwerror.Newf("trigger %q has no handler", name).
			WithCode(mdwerror.CodeInvalidInput))
	}

	trigger := &TriggerFeature{
		name:     name,
		help:     help,
		priority: priority,
		handler:  handler,
		id:       uuid.New(),
	}

	for _, attr := range attrs {
		switch attr {
		case AlwaysWatching:
			trigger.alwaysWatching = true
		default:
			return b.fail(mdwerror.Newf("trigger %q: unsupported attribute %s", name, attr).
				WithCode(mdwerror.CodeUnsupportedAttribute))
		}
	}

	cell, err := NewRegexCell(pattern)
	if err != nil {
		return b.fail(mdwerror.Wrap(err, fmt.Sprintf("trigger %q", name)))
	}
	trigger.regex = cell

	b.features = append(b.features, trigger)
	return b
}

// End finalizes the module and assigns its ID. It returns the first error
// recorded while building; calling End twice is an error.
func (b *ModuleBuilder) End() (*Module, error) {
	if b.ended {
		return nil, mdwerror.Newf("module %q already finalized", b.name).
			WithCode(mdwerror.CodeModuleFinalized)
	}
	b.ended = true

	if b.err != nil {
		return nil, b.err
	}

	features := make([]Feature, len(b.features))
	copy(features, b.features)
	b.features = nil

	return &Module{
		name:     b.name,
		id:       uuid.New(),
		features: features,
	}, nil
}

// MustEnd is like End but panics on error. It suits modules whose features
// are fixed at compile time.
func (b *ModuleBuilder) MustEnd() *Module {
	m, err := b.End()
	if err != nil {
		panic(err)
	}
	return m
}

func (b *ModuleBuilder) usable() bool {
	if b.ended && b.err == nil {
		b.err = mdwerror.Newf("module %q already finalized", b.name).
			WithCode(mdwerror.CodeModuleFinalized)
	}
	return b.err == nil
}

func (b *ModuleBuilder) fail(err error) *ModuleBuilder {
	b.err = err
	return b
}
