package bot

import (
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Feature is one command or trigger declared by a module. The set of
// implementations is closed: *CommandFeature and *TriggerFeature.
type Feature interface {
	Name() string
	Kind() FeatureKind
	Info() FeatureInfo

	feature()
}

// CommandFeature declares an explicitly invoked command.
type CommandFeature struct {
	name       string
	syntaxText string
	syntax     *yaml.Node
	help       string
	auth       AuthLevel
	handler    CommandHandler
}

func (*CommandFeature) feature() {}

func (c *CommandFeature) Name() string      { return c.name }
func (c *CommandFeature) Kind() FeatureKind { return KindCommand }
func (c *CommandFeature) Info() FeatureInfo { return FeatureInfo{Name: c.name, Kind: KindCommand} }

// SyntaxText returns the syntax template as written by the module author.
func (c *CommandFeature) SyntaxText() string { return c.syntaxText }

// Syntax returns the parsed syntax template.
func (c *CommandFeature) Syntax() *yaml.Node { return c.syntax }

func (c *CommandFeature) Help() string            { return c.help }
func (c *CommandFeature) Auth() AuthLevel         { return c.auth }
func (c *CommandFeature) Handler() CommandHandler { return c.handler }

// TriggerFeature declares a passively matched trigger.
type TriggerFeature struct {
	name           string
	help           string
	regex          *RegexCell
	priority       Priority
	handler        TriggerHandler
	id             uuid.UUID
	alwaysWatching bool
}

func (*TriggerFeature) feature() {}

func (t *TriggerFeature) Name() string      { return t.name }
func (t *TriggerFeature) Kind() FeatureKind { return KindTrigger }
func (t *TriggerFeature) Info() FeatureInfo { return FeatureInfo{Name: t.name, Kind: KindTrigger} }

func (t *TriggerFeature) Help() string            { return t.help }
func (t *TriggerFeature) Regex() *RegexCell       { return t.regex }
func (t *TriggerFeature) Priority() Priority      { return t.priority }
func (t *TriggerFeature) Handler() TriggerHandler { return t.handler }

// ID returns the identifier that distinguishes this trigger from others of
// the same name.
func (t *TriggerFeature) ID() uuid.UUID { return t.id }

// AlwaysWatching reports whether the trigger is evaluated even after an
// earlier trigger has fired for the same message.
func (t *TriggerFeature) AlwaysWatching() bool { return t.alwaysWatching }
