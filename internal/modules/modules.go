// Package modules assembles the built-in feature modules and loads the
// configured selection into a registry.
package modules

import (
	"sort"
	"strings"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
	"github.com/msto63/chatbot/internal/modules/defaults"
	"github.com/msto63/chatbot/internal/modules/greeting"
	"github.com/msto63/chatbot/internal/modules/quote"
	"github.com/msto63/chatbot/internal/quotestore"
	"github.com/msto63/chatbot/pkg/bot"
)

// Deps holds what the built-in modules need at construction time
type Deps struct {
	Quotes quotestore.Store
}

// Builtin builds every built-in module
func Builtin(deps Deps) ([]*bot.Module, error) {
	builders := []func() (*bot.Module, error){
		defaults.New,
		greeting.New,
		func() (*bot.Module, error) { return quote.New(deps.Quotes) },
	}

	mods := make([]*bot.Module, 0, len(builders))
	for _, build := range builders {
		m, err := build()
		if err != nil {
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, nil
}

// Names lists the names of the built-in modules
func Names() []string {
	names := []string{defaults.Name, greeting.Name, quote.Name}
	sort.Strings(names)
	return names
}

// Select picks the modules named in enabled, in the order given. An empty
// enabled list selects the whole catalogue.
func Select(catalogue []*bot.Module, enabled []string) ([]*bot.Module, error) {
	if len(enabled) == 0 {
		return catalogue, nil
	}

	byName := make(map[string]*bot.Module, len(catalogue))
	for _, m := range catalogue {
		byName[m.Name()] = m
	}

	selected := make([]*bot.Module, 0, len(enabled))
	var unknown []string
	for _, name := range enabled {
		m, ok := byName[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		selected = append(selected, m)
	}

	if len(unknown) > 0 {
		return nil, mdwerror.Newf("unknown modules: %s", strings.Join(unknown, ", ")).
			WithCode(mdwerror.CodeConfigError).
			WithDetail("available", strings.Join(Names(), ", "))
	}
	return selected, nil
}

// Load loads mods into state. Failures are returned as bot.LoadErrors; the
// modules that loaded cleanly stay registered.
func Load(state *bot.State, mods []*bot.Module, mode bot.LoadMode) error {
	return state.LoadModules(mods, mode)
}
