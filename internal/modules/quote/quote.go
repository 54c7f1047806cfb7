// Package quote serves quotations from a quotestore.Store.
//
// The quote command takes a YAML mapping of parameters:
//
//   - regex (or r): a scalar or a sequence of scalars, each a regular
//     expression. Matching is case-insensitive unless a pattern disables it
//     with the (?-i) flag.
//   - string (or s): a scalar or a sequence of scalars, each a text that must
//     occur in the quotation. Matching is case-sensitive.
//
// A quotation qualifies only if every regex matches and every string occurs.
//
//	quote
//	quote s: rabbit
//	quote r: 'blue ?berr(y|ies)'
package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
	"github.com/msto63/chatbot/internal/quotestore"
	"github.com/msto63/chatbot/pkg/bot"
)

// Name is the module name
const Name = "quote"

var (
	regexKeys  = []string{"regex", "r"}
	stringKeys = []string{"string", "s"}
)

type module struct {
	store quotestore.Store
}

// New builds the quote module on top of store
func New(store quotestore.Store) (*bot.Module, error) {
	if store == nil {
		return nil, mdwerror.New("quote module needs a store").WithCode(mdwerror.CodeInvalidInput)
	}
	m := &module{store: store}

	return bot.NewModule(Name).
		Command("quote", "{}",
			"Request a quotation. Parameters: regex (r) and string (s), each a value or a list; "+
				"e.g. quote r: 'blue ?berr(y|ies)'",
			bot.AuthPublic, m.quote).
		Command("quote-add", "",
			"Add a quotation. The text is stored as typed; {text: ...} is accepted too.",
			bot.AuthOwner, m.add).
		Command("quote-count", "",
			"Show how many quotations are stored.",
			bot.AuthPublic, m.count).
		End()
}

func (m *module) quote(ctx context.Context, req *bot.CommandRequest) (bot.Reaction, error) {
	filter, err := parseFilter(req.Args)
	if err != nil {
		return bot.NoReaction(), err
	}

	q, err := m.store.Random(ctx, filter)
	if errors.Is(err, quotestore.ErrNoQuote) {
		return bot.Reply("no matching quotation"), nil
	}
	if err != nil {
		return bot.NoReaction(), err
	}
	return bot.Msg(q.Text), nil
}

func (m *module) add(ctx context.Context, req *bot.CommandRequest) (bot.Reaction, error) {
	text, err := quotationText(req.ArgText)
	if err != nil {
		return bot.NoReaction(), err
	}

	q, err := m.store.Add(ctx, text, req.Meta.Prefix.String())
	if err != nil {
		return bot.NoReaction(), err
	}
	return bot.Reply(fmt.Sprintf("added quotation #%d", q.ID)), nil
}

func (m *module) count(ctx context.Context, _ *bot.CommandRequest) (bot.Reaction, error) {
	n, err := m.store.Count(ctx)
	if err != nil {
		return bot.NoReaction(), err
	}
	return bot.Msg(fmt.Sprintf("%d quotations", n)), nil
}

// parseFilter reads the regex and string parameters of the quote command
func parseFilter(args *yaml.Node) (quotestore.Filter, error) {
	var filter quotestore.Filter

	if args == nil || bot.IsEmptyMapping(args) {
		return filter, nil
	}
	if args.Kind != yaml.MappingNode {
		return filter, mdwerror.New("expected a mapping of parameters, e.g. {s: rabbit}").
			WithCode(mdwerror.CodeInvalidInput)
	}

	for i := 0; i+1 < len(args.Content); i += 2 {
		if key := args.Content[i].Value; !isKnownKey(key) {
			return filter, mdwerror.Newf("unknown parameter %q; use regex (r) or string (s)", key).
				WithCode(mdwerror.CodeInvalidInput)
		}
	}

	if node, ok := bot.MappingValue(args, regexKeys...); ok {
		patterns, err := bot.ScalarList(node)
		if err != nil {
			return filter, mdwerror.Wrap(err, "regex")
		}
		for _, p := range patterns {
			re, err := bot.CompileCI(p)
			if err != nil {
				return filter, err
			}
			filter.Regexes = append(filter.Regexes, re)
		}
	}

	if node, ok := bot.MappingValue(args, stringKeys...); ok {
		strs, err := bot.ScalarList(node)
		if err != nil {
			return filter, mdwerror.Wrap(err, "string")
		}
		filter.Strings = strs
	}

	return filter, nil
}

func isKnownKey(key string) bool {
	for _, keys := range [][]string{regexKeys, stringKeys} {
		for _, k := range keys {
			if k == key {
				return true
			}
		}
	}
	return false
}

// quotationText returns the typed text verbatim, unless it is a YAML
// mapping of the form {text: ...}
func quotationText(argText string) (string, error) {
	text := strings.TrimSpace(argText)
	if !strings.HasPrefix(text, "{") {
		return text, nil
	}

	args, err := bot.ParseSyntax(text)
	if err != nil || args.Kind != yaml.MappingNode {
		return text, nil
	}
	node, ok := bot.MappingValue(args, "text")
	if !ok || len(args.Content) != 2 {
		return "", mdwerror.New("a mapping must be {text: quotation}").
			WithCode(mdwerror.CodeInvalidInput)
	}
	return bot.ScalarValue(node)
}
