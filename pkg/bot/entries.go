package bot

import (
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/msto63/chatbot/foundation/utils/stringx"
)

// BotCommand is the registry entry of a loaded command.
type BotCommand struct {
	provider   *Module
	name       string
	auth       AuthLevel
	handler    CommandHandler
	syntaxText string
	syntax     *yaml.Node
	help       string
}

// Provider returns the module that registered the command.
func (c *BotCommand) Provider() *Module       { return c.provider }
func (c *BotCommand) Name() string            { return c.name }
func (c *BotCommand) Auth() AuthLevel         { return c.auth }
func (c *BotCommand) Handler() CommandHandler { return c.handler }
func (c *BotCommand) SyntaxText() string      { return c.syntaxText }
func (c *BotCommand) Syntax() *yaml.Node      { return c.syntax }
func (c *BotCommand) Help() string            { return c.help }

// TakesText reports whether the command takes its argument as free text. A
// blank syntax template declares this; such arguments are never parsed.
func (c *BotCommand) TakesText() bool { return stringx.IsBlank(c.syntaxText) }

func (c *BotCommand) Info() FeatureInfo {
	return FeatureInfo{Name: c.name, Kind: KindCommand}
}

// Trigger is the registry entry of a loaded trigger. The regex cell is shared
// with the TriggerFeature it was loaded from.
type Trigger struct {
	provider       *Module
	name           string
	regex          *RegexCell
	handler        TriggerHandler
	priority       Priority
	help           string
	id             uuid.UUID
	alwaysWatching bool
}

// Provider returns the module that registered the trigger.
func (t *Trigger) Provider() *Module       { return t.provider }
func (t *Trigger) Name() string            { return t.name }
func (t *Trigger) Regex() *RegexCell       { return t.regex }
func (t *Trigger) Handler() TriggerHandler { return t.handler }
func (t *Trigger) Priority() Priority      { return t.priority }
func (t *Trigger) Help() string            { return t.help }
func (t *Trigger) ID() uuid.UUID           { return t.id }
func (t *Trigger) AlwaysWatching() bool    { return t.alwaysWatching }

func (t *Trigger) Info() FeatureInfo {
	return FeatureInfo{Name: t.name, Kind: KindTrigger}
}
