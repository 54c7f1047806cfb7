// Package defaults provides the commands every bot instance carries: help,
// introspection of the registry and administration of trigger patterns.
package defaults

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
	"github.com/msto63/chatbot/pkg/bot"
)

// Name is the module name
const Name = "defaults"

// New builds the defaults module
func New() (*bot.Module, error) {
	return bot.NewModule(Name).
		Command("help", "command",
			"List the commands, or describe one: help <command>.",
			bot.AuthPublic, help).
		Command("modules", "",
			"List the loaded modules.",
			bot.AuthPublic, modules).
		Command("triggers", "",
			"List the triggers in the order they are tried.",
			bot.AuthPublic, triggers).
		Command("trigger-regex", "{name: trigger, id: uuid, regex: pattern}",
			"Replace a trigger's pattern; select the trigger by name or by id.",
			bot.AuthOwner, triggerRegex).
		End()
}

func help(_ context.Context, req *bot.CommandRequest) (bot.Reaction, error) {
	if bot.IsEmptyMapping(req.Args) {
		cmds := req.State.Commands()
		names := make([]string, len(cmds))
		for i, c := range cmds {
			names[i] = c.Name()
		}
		return bot.Msg("Commands: " + strings.Join(names, ", ")), nil
	}

	name, err := bot.ScalarValue(req.Args)
	if err != nil {
		return bot.NoReaction(), err
	}

	cmd, ok := req.State.Command(name)
	if !ok {
		return bot.Reply(fmt.Sprintf("unknown command %q", name)), nil
	}

	usage := cmd.Name()
	if cmd.SyntaxText() != "" {
		usage += " " + cmd.SyntaxText()
	}
	lines := []string{
		fmt.Sprintf("%s (module %s, %s)", usage, cmd.Provider().Name(), cmd.Auth()),
	}
	if cmd.Help() != "" {
		lines = append(lines, cmd.Help())
	}
	return bot.Msgs(lines...), nil
}

func modules(_ context.Context, req *bot.CommandRequest) (bot.Reaction, error) {
	mods := req.State.Modules()
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.Name()
	}
	return bot.Msg("Loaded modules: " + strings.Join(names, ", ")), nil
}

func triggers(_ context.Context, req *bot.CommandRequest) (bot.Reaction, error) {
	all := req.State.Triggers()
	if len(all) == 0 {
		return bot.Msg("No triggers loaded."), nil
	}

	lines := make([]string, len(all))
	for i, t := range all {
		line := fmt.Sprintf("%s [%s] from %s, id %s: /%s/",
			t.Name(), t.Priority(), t.Provider().Name(), t.ID().String()[:8], t.Regex())
		if t.AlwaysWatching() {
			line += " (always watching)"
		}
		lines[i] = line
	}
	return bot.Msgs(lines...), nil
}

func triggerRegex(_ context.Context, req *bot.CommandRequest) (bot.Reaction, error) {
	if req.Args == nil || req.Args.Kind != yaml.MappingNode {
		return bot.NoReaction(), invalid("expected {name: ..., regex: ...} or {id: ..., regex: ...}")
	}

	regexNode, ok := bot.MappingValue(req.Args, "regex", "r")
	if !ok {
		return bot.NoReaction(), invalid("missing regex")
	}
	pattern, err := bot.ScalarValue(regexNode)
	if err != nil {
		return bot.NoReaction(), err
	}

	target, err := selectTrigger(req.State, req.Args)
	if err != nil {
		return bot.NoReaction(), err
	}

	if err := req.State.SetTriggerRegex(target.ID(), pattern); err != nil {
		return bot.NoReaction(), err
	}
	return bot.Reply(fmt.Sprintf("trigger %s (%s) now matches /%s/",
		target.Name(), target.ID(), target.Regex())), nil
}

func selectTrigger(state *bot.State, args *yaml.Node) (*bot.Trigger, error) {
	if idNode, ok := bot.MappingValue(args, "id"); ok {
		raw, err := bot.ScalarValue(idNode)
		if err != nil {
			return nil, err
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, invalid(fmt.Sprintf("invalid id %q", raw))
		}
		t, ok := state.TriggerByID(id)
		if !ok {
			return nil, mdwerror.Newf("no trigger with id %s", id).WithCode(mdwerror.CodeTriggerNotFound)
		}
		return t, nil
	}

	nameNode, ok := bot.MappingValue(args, "name")
	if !ok {
		return nil, invalid("select the trigger with name or id")
	}
	name, err := bot.ScalarValue(nameNode)
	if err != nil {
		return nil, err
	}

	matches := state.TriggersNamed(name)
	switch len(matches) {
	case 0:
		return nil, mdwerror.Newf("no trigger named %q", name).WithCode(mdwerror.CodeTriggerNotFound)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, t := range matches {
			ids[i] = t.ID().String()
		}
		return nil, mdwerror.Newf("%d triggers are named %q, select one by id: %s",
			len(matches), name, strings.Join(ids, ", ")).
			WithCode(mdwerror.CodeAmbiguousTrigger)
	}
}

func invalid(msg string) error {
	return mdwerror.New(msg).WithCode(mdwerror.CodeInvalidInput)
}
