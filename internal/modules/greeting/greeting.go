// Package greeting answers people who greet the channel.
package greeting

import (
	"context"
	"fmt"

	"github.com/msto63/chatbot/pkg/bot"
)

// Name is the module name
const Name = "greeting"

// New builds the greeting module
func New() (*bot.Module, error) {
	return bot.NewModule(Name).
		Trigger("greeting", `^(hi|hello|hey)\b`,
			"Greets whoever says hi, hello or hey.",
			bot.PriorityLow, greet).
		End()
}

func greet(_ context.Context, req *bot.TriggerRequest) (bot.Reaction, error) {
	return bot.Msg(fmt.Sprintf("Hello, %s!", req.Meta.Prefix.Nick)), nil
}
