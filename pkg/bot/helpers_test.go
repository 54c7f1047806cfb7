package bot

import (
	"context"

	"github.com/msto63/chatbot/foundation/core/log"
)

func nopCommand(context.Context, *CommandRequest) (Reaction, error) {
	return NoReaction(), nil
}

func nopTrigger(context.Context, *TriggerRequest) (Reaction, error) {
	return NoReaction(), nil
}

// replyCommand returns a handler whose reaction identifies it.
func replyCommand(line string) CommandHandler {
	return func(context.Context, *CommandRequest) (Reaction, error) {
		return Msg(line), nil
	}
}

func newTestState() *State {
	return NewState(Options{Logger: log.Nop()})
}
