// ============================================================================
// chatbot - Modular Chat Bot Runtime
// ============================================================================
//
// Package:     bot
// Description: Module registry core: modules, features, load policy
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package bot is the extensibility core of the chat bot.
//
// Feature modules are built with a ModuleBuilder and contribute two kinds of
// behavior: commands, invoked explicitly by name, and triggers, matched
// passively against every message by regular expression. A State holds the
// loaded modules together with a command index and a priority-ordered trigger
// index, and decides per LoadMode how a newly loaded module interacts with
// what is already registered.
//
//	module, err := bot.NewModule("quote").
//		Command("quote", "{}", "Request a quotation.", bot.AuthPublic, handleQuote).
//		Trigger("thanks", `\bthanks?\b`, "Say you're welcome.", bot.PriorityLow, handleThanks).
//		End()
//	if err != nil {
//		return err
//	}
//
//	state := bot.NewState(bot.Options{Logger: logger})
//	if err := state.LoadModule(module, bot.LoadAdd); err != nil {
//		logger.LogError(err)
//	}
//
// Loading takes the registry's write lock; lookups take the read lock and
// return snapshots, so handlers may call back into the State. The one value
// that changes after publication is a trigger's pattern, which lives in a
// RegexCell and can be replaced with State.SetTriggerRegex.
package bot
