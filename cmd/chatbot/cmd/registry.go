package cmd

import (
	"errors"

	"github.com/msto63/chatbot/foundation/core/log"
	"github.com/msto63/chatbot/internal/modules"
	"github.com/msto63/chatbot/internal/quotestore"
	"github.com/msto63/chatbot/pkg/bot"
	"github.com/msto63/chatbot/pkg/core/config"
)

// buildRegistry loads the configured modules into a fresh registry. The
// returned load errors describe features that could not be registered; the
// registry is usable regardless.
func buildRegistry(cfg *config.Config, store quotestore.Store, logger *log.Logger) (*bot.State, bot.LoadErrors, error) {
	catalogue, err := modules.Builtin(modules.Deps{Quotes: store})
	if err != nil {
		return nil, nil, err
	}

	selected, err := modules.Select(catalogue, cfg.Modules.Enabled)
	if err != nil {
		return nil, nil, err
	}

	state := bot.NewState(bot.Options{Logger: logger})

	var loadErrs bot.LoadErrors
	if err := modules.Load(state, selected, cfg.LoadMode()); err != nil {
		if !errors.As(err, &loadErrs) {
			return nil, nil, err
		}
	}
	return state, loadErrs, nil
}
