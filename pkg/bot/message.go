package bot

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MsgPrefix identifies the sender of a message.
type MsgPrefix struct {
	Nick string `json:"nick"`
	User string `json:"user,omitempty"`
	Host string `json:"host,omitempty"`
}

// String renders the prefix as nick!user@host, omitting missing parts.
func (p MsgPrefix) String() string {
	s := p.Nick
	if p.User != "" {
		s += "!" + p.User
	}
	if p.Host != "" {
		s += "@" + p.Host
	}
	return s
}

// MsgMetadata describes where a message came from.
type MsgMetadata struct {
	// Target is the channel or nick the message was sent to.
	Target string
	Prefix MsgPrefix
}

// ReactionKind says how a Reaction is delivered.
type ReactionKind int

const (
	ReactionNone ReactionKind = iota
	// ReactionMsg sends the lines to the message target.
	ReactionMsg
	// ReactionReply sends the lines to the target, addressed to the sender.
	ReactionReply
)

func (k ReactionKind) String() string {
	switch k {
	case ReactionNone:
		return "none"
	case ReactionMsg:
		return "msg"
	case ReactionReply:
		return "reply"
	default:
		return fmt.Sprintf("ReactionKind(%d)", int(k))
	}
}

// Reaction is what a handler wants the bot to say in response.
type Reaction struct {
	Kind  ReactionKind
	Lines []string
}

// NoReaction is the reaction of a handler with nothing to say.
func NoReaction() Reaction { return Reaction{Kind: ReactionNone} }

// Msg sends a single line to the message target.
func Msg(line string) Reaction { return Reaction{Kind: ReactionMsg, Lines: []string{line}} }

// Msgs sends several lines to the message target.
func Msgs(lines ...string) Reaction { return Reaction{Kind: ReactionMsg, Lines: lines} }

// Reply sends a line addressed to the sender.
func Reply(line string) Reaction { return Reaction{Kind: ReactionReply, Lines: []string{line}} }

// IsNone reports whether the reaction sends nothing.
func (r Reaction) IsNone() bool {
	return r.Kind == ReactionNone || len(r.Lines) == 0
}

// CommandRequest is passed to a command handler.
type CommandRequest struct {
	State   *State
	Meta    MsgMetadata
	Command *BotCommand
	// Args is the parsed argument text; an empty argument, or any argument to
	// a command that takes free text, is an empty mapping.
	Args *yaml.Node
	// ArgText is the argument as typed, after the command name.
	ArgText string
}

// TriggerRequest is passed to a trigger handler.
type TriggerRequest struct {
	State   *State
	Meta    MsgMetadata
	Trigger *Trigger
	Text    string
	// Captures holds the whole match followed by the capture groups.
	Captures []string
}

// CommandHandler runs an invoked command.
type CommandHandler func(ctx context.Context, req *CommandRequest) (Reaction, error)

// TriggerHandler runs a matched trigger.
type TriggerHandler func(ctx context.Context, req *TriggerRequest) (Reaction, error)
