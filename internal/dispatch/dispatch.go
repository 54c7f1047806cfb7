// Package dispatch routes incoming chat messages to the commands and
// triggers registered in a bot.State.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
	"github.com/msto63/chatbot/foundation/core/log"
	"github.com/msto63/chatbot/foundation/utils/stringx"
	"github.com/msto63/chatbot/pkg/bot"
)

// Config holds dispatcher settings
type Config struct {
	// Nick is the bot's own nick; "<nick>: cmd" and "<nick>, cmd" invoke cmd,
	// as does any message sent to the nick directly.
	Nick string
	// CommandPrefix marks a command invocation, e.g. "!".
	CommandPrefix string
	// Owners may run AuthOwner commands. An entry matches a sender's nick,
	// ignoring case, or the full nick!user@host prefix.
	Owners []string
}

// Dispatcher evaluates messages against a registry
type Dispatcher struct {
	state  *bot.State
	cfg    Config
	logger *log.Logger
}

// New creates a dispatcher reading from state
func New(state *bot.State, cfg Config, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.GetDefault()
	}
	return &Dispatcher{
		state:  state,
		cfg:    cfg,
		logger: logger.WithField("component", "dispatch"),
	}
}

// Dispatch handles one message and returns the reactions to send, in order.
//
// A command invocation runs at most one command. Other messages are tested
// against the triggers, highest priority first: the first ordinary trigger
// that matches fires, after which only always-watching triggers are still
// evaluated. Always-watching triggers fire on every match, including command
// invocations, and never stop the ordinary triggers after them.
func (d *Dispatcher) Dispatch(ctx context.Context, meta bot.MsgMetadata, text string) ([]bot.Reaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var reactions []bot.Reaction
	fired := false

	if body, ok := d.commandBody(meta, text); ok {
		name, argText := stringx.FirstField(body)
		if name != "" {
			reactions = appendReaction(reactions, d.runCommand(ctx, meta, name, argText))
			fired = true
		}
	}

	for _, trigger := range d.state.Triggers() {
		if fired && !trigger.AlwaysWatching() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return reactions, err
		}

		captures := trigger.Regex().FindStringSubmatch(text)
		if captures == nil {
			continue
		}
		if !trigger.AlwaysWatching() {
			fired = true
		}

		reactions = appendReaction(reactions, d.runTrigger(ctx, meta, trigger, text, captures))
	}

	return reactions, nil
}

// commandBody strips the invocation marker from text. ok is false when the
// message is not a command invocation.
func (d *Dispatcher) commandBody(meta bot.MsgMetadata, text string) (body string, ok bool) {
	text = strings.TrimSpace(text)

	if d.cfg.CommandPrefix != "" && strings.HasPrefix(text, d.cfg.CommandPrefix) {
		return text[len(d.cfg.CommandPrefix):], true
	}

	if d.cfg.Nick == "" {
		return "", false
	}

	if n := len(d.cfg.Nick); len(text) > n && strings.EqualFold(text[:n], d.cfg.Nick) {
		if sep := text[n]; sep == ':' || sep == ',' {
			return text[n+1:], true
		}
	}

	if strings.EqualFold(meta.Target, d.cfg.Nick) {
		return text, true
	}

	return "", false
}

func (d *Dispatcher) runCommand(ctx context.Context, meta bot.MsgMetadata, name, argText string) bot.Reaction {
	cmd, ok := d.state.Command(name)
	if !ok {
		d.logger.LogError(mdwerror.Newf("unknown command %q", name).
			WithCode(mdwerror.CodeUnknownCommand).
			WithDetail("sender", meta.Prefix.String()))
		return bot.Reply(fmt.Sprintf("unknown command %q", name))
	}

	if cmd.Auth() == bot.AuthOwner && !d.IsOwner(meta.Prefix) {
		d.logger.LogError(mdwerror.Newf("%s may not run %q", meta.Prefix, name).
			WithCode(mdwerror.CodeForbidden).
			WithDetail("command", name).
			WithDetail("sender", meta.Prefix.String()))
		return bot.Reply("permission denied")
	}

	args, err := commandArgs(cmd, argText)
	if err != nil {
		return bot.Reply(fmt.Sprintf("invalid arguments: %v (syntax: %s %s)", err, name, cmd.SyntaxText()))
	}

	d.logger.Debug("Running command", log.Fields{
		"command": name,
		"module":  cmd.Provider().Name(),
		"sender":  meta.Prefix.String(),
		"target":  meta.Target,
	})

	reaction, err := cmd.Handler()(ctx, &bot.CommandRequest{
		State:   d.state,
		Meta:    meta,
		Command: cmd,
		Args:    args,
		ArgText: argText,
	})
	if err != nil {
		d.logger.ErrorWithErr("Command failed", err, log.Fields{
			"command": name,
			"module":  cmd.Provider().Name(),
		})
		return bot.Reply("error: " + err.Error())
	}
	return reaction
}

// commandArgs parses argText as YAML unless cmd takes free text
func commandArgs(cmd *bot.BotCommand, argText string) (*yaml.Node, error) {
	if cmd.TakesText() {
		return bot.ParseSyntax("")
	}
	return bot.ParseSyntax(argText)
}

func (d *Dispatcher) runTrigger(ctx context.Context, meta bot.MsgMetadata, trigger *bot.Trigger, text string, captures []string) bot.Reaction {
	d.logger.Debug("Trigger matched", log.Fields{
		"trigger":  trigger.Name(),
		"module":   trigger.Provider().Name(),
		"priority": trigger.Priority(),
		"id":       trigger.ID().String(),
	})

	reaction, err := trigger.Handler()(ctx, &bot.TriggerRequest{
		State:    d.state,
		Meta:     meta,
		Trigger:  trigger,
		Text:     text,
		Captures: captures,
	})
	if err != nil {
		d.logger.ErrorWithErr("Trigger failed", err, log.Fields{
			"trigger": trigger.Name(),
			"module":  trigger.Provider().Name(),
		})
		return bot.Reply("error: " + err.Error())
	}
	return reaction
}

// IsOwner reports whether prefix belongs to a configured owner
func (d *Dispatcher) IsOwner(prefix bot.MsgPrefix) bool {
	full := prefix.String()
	for _, owner := range d.cfg.Owners {
		if strings.EqualFold(owner, prefix.Nick) || owner == full {
			return true
		}
	}
	return false
}

func appendReaction(reactions []bot.Reaction, r bot.Reaction) []bot.Reaction {
	if r.IsNone() {
		return reactions
	}
	return append(reactions, r)
}
