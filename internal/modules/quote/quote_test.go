package quote

import (
	"context"
	"strings"
	"testing"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
	"github.com/msto63/chatbot/foundation/core/log"
	"github.com/msto63/chatbot/internal/dispatch"
	"github.com/msto63/chatbot/internal/quotestore"
	"github.com/msto63/chatbot/pkg/bot"
)

var owner = bot.MsgMetadata{Target: "#q", Prefix: bot.MsgPrefix{Nick: "owner", User: "o", Host: "h"}}

func setup(t *testing.T, quotes ...string) (*dispatch.Dispatcher, quotestore.Store) {
	t.Helper()
	store := quotestore.NewMemoryStore()
	for _, q := range quotes {
		if _, err := store.Add(context.Background(), q, "seed"); err != nil {
			t.Fatal(err)
		}
	}

	m, err := New(store)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	state := bot.NewState(bot.Options{Logger: log.Nop()})
	if err := state.LoadModule(m, bot.LoadAdd); err != nil {
		t.Fatalf("LoadModule() error = %v", err)
	}
	return dispatch.New(state, dispatch.Config{CommandPrefix: "!", Owners: []string{"owner"}}, log.Nop()), store
}

func run(t *testing.T, d *dispatch.Dispatcher, text string) []string {
	t.Helper()
	reactions, err := d.Dispatch(context.Background(), owner, text)
	if err != nil {
		t.Fatalf("Dispatch(%q) error = %v", text, err)
	}
	var out []string
	for _, r := range reactions {
		out = append(out, r.Lines...)
	}
	return out
}

func TestNew_RequiresStore(t *testing.T) {
	if _, err := New(nil); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("New(nil) error = %v", err)
	}
}

func TestQuoteModuleShape(t *testing.T) {
	m, err := New(quotestore.NewMemoryStore())
	if err != nil {
		t.Fatal(err)
	}
	if m.Name() != "quote" {
		t.Errorf("Name() = %q", m.Name())
	}
	cmd := m.Features()[0].(*bot.CommandFeature)
	if cmd.Name() != "quote" || cmd.SyntaxText() != "{}" || cmd.Auth() != bot.AuthPublic {
		t.Errorf("quote command = %s %q %v", cmd.Name(), cmd.SyntaxText(), cmd.Auth())
	}
}

func TestQuote(t *testing.T) {
	d, _ := setup(t,
		"I ate a Blueberry pie.",
		"The rabbit ate blue berries.",
		"Curiouser and curiouser!",
	)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"string", "!quote s: rabbit", "The rabbit ate blue berries."},
		{"long string key", "!quote {string: Curiouser}", "Curiouser and curiouser!"},
		{"regex case-insensitive", "!quote r: 'blueberr(y|ies)'", "I ate a Blueberry pie."},
		{"regex list", "!quote {r: [blue, pie]}", "I ate a Blueberry pie."},
		{"regex and string", "!quote {r: 'blue ?berr(y|ies)', s: rabbit}", "The rabbit ate blue berries."},
		{"string is case-sensitive", "!quote s: curiouser!", "Curiouser and curiouser!"},
		{"no match", "!quote s: Cheshire", "no matching quotation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, d, tt.text)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("Dispatch(%q) = %v, want [%s]", tt.text, got, tt.want)
			}
		})
	}
}

func TestQuote_NoArguments(t *testing.T) {
	d, _ := setup(t, "only one")
	if got := run(t, d, "!quote"); len(got) != 1 || got[0] != "only one" {
		t.Errorf("Dispatch(!quote) = %v", got)
	}
}

func TestQuote_BadParameters(t *testing.T) {
	d, _ := setup(t, "x")

	tests := []struct {
		text string
		want string
	}{
		{"!quote q: x", `unknown parameter "q"`},
		{"!quote rabbit", "expected a mapping"},
		{"!quote r: '('", "invalid pattern"},
		{"!quote {s: {a: b}}", "string"},
	}
	for _, tt := range tests {
		got := run(t, d, tt.text)
		if len(got) != 1 || !strings.HasPrefix(got[0], "error: ") || !strings.Contains(got[0], tt.want) {
			t.Errorf("Dispatch(%q) = %v, want an error mentioning %q", tt.text, got, tt.want)
		}
	}
}

func TestQuoteAddAndCount(t *testing.T) {
	d, store := setup(t)

	if got := run(t, d, "!quote-add Off with their heads!"); len(got) != 1 || got[0] != "added quotation #1" {
		t.Fatalf("quote-add = %v", got)
	}
	if got := run(t, d, `!quote-add {text: "Why, sometimes I've believed: six impossible things"}`); len(got) != 1 || got[0] != "added quotation #2" {
		t.Fatalf("quote-add mapping = %v", got)
	}

	all, _ := store.All(context.Background())
	if len(all) != 2 || all[0].Text != "Off with their heads!" || all[0].AddedBy != "owner!o@h" {
		t.Errorf("stored = %+v", all)
	}

	if got := run(t, d, "!quote-count"); len(got) != 1 || got[0] != "2 quotations" {
		t.Errorf("quote-count = %v", got)
	}

	if got := run(t, d, "!quote-add"); len(got) != 1 || !strings.Contains(got[0], "quotation text is required") {
		t.Errorf("quote-add without text = %v", got)
	}
}

func TestQuoteAdd_StoresTextAsTyped(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"hash", "<alice> we're #1 at this", "<alice> we're #1 at this"},
		{"colon", "<bob> note: this fails", "<bob> note: this fails"},
		{"flow sequence", "[12:00] <carol> hi", "[12:00] <carol> hi"},
		{"list", "[a, b]", "[a, b]"},
		{"leading dash", "- the Hatter", "- the Hatter"},
		{"quotes", `"Off with their heads!" she said`, `"Off with their heads!" she said`},
		{"brace that is not YAML", "{grin} said the cat: {", "{grin} said the cat: {"},
		{"text mapping", `{text: "Why, sometimes: #6"}`, "Why, sometimes: #6"},
		{"surrounding space", "  tea time  ", "tea time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, store := setup(t)
			if got := run(t, d, "!quote-add "+tt.text); len(got) != 1 || got[0] != "added quotation #1" {
				t.Fatalf("quote-add %q = %v", tt.text, got)
			}
			all, _ := store.All(context.Background())
			if len(all) != 1 || all[0].Text != tt.want {
				t.Errorf("stored = %+v, want %q", all, tt.want)
			}
		})
	}
}

func TestQuoteAdd_BadMapping(t *testing.T) {
	d, store := setup(t)

	for _, text := range []string{"!quote-add {txt: x}", "!quote-add {text: a, by: b}", "!quote-add {text: [a, b]}"} {
		if got := run(t, d, text); len(got) != 1 || !strings.HasPrefix(got[0], "error: ") {
			t.Errorf("Dispatch(%q) = %v, want an error", text, got)
		}
	}
	if n, _ := store.Count(context.Background()); n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}
}

func TestQuoteAdd_OwnerOnly(t *testing.T) {
	d, _ := setup(t)
	reactions, _ := d.Dispatch(context.Background(),
		bot.MsgMetadata{Target: "#q", Prefix: bot.MsgPrefix{Nick: "guest"}}, "!quote-add hi")
	if len(reactions) != 1 || reactions[0].Lines[0] != "permission denied" {
		t.Errorf("reactions = %+v", reactions)
	}
}
