package console

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/msto63/chatbot/foundation/core/log"
	"github.com/msto63/chatbot/internal/dispatch"
	"github.com/msto63/chatbot/pkg/bot"
)

type response struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type failingDispatcher struct{}

func (failingDispatcher) Dispatch(context.Context, bot.MsgMetadata, string) ([]bot.Reaction, error) {
	return nil, errors.New("dispatch down")
}

func newTestServer(t *testing.T, d Dispatcher) *httptest.Server {
	t.Helper()
	h := NewHandler(d, Options{Name: "testbot", Version: "0.0.1", Logger: log.Nop()})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func echoState(t *testing.T) *bot.State {
	t.Helper()
	state := bot.NewState(bot.Options{Logger: log.Nop()})
	m := bot.NewModule("echo").
		Command("echo", "", "", bot.AuthPublic, func(_ context.Context, req *bot.CommandRequest) (bot.Reaction, error) {
			return bot.Reply(req.ArgText), nil
		}).
		Trigger("wave", `\bwave\b`, "", bot.PriorityLow, func(context.Context, *bot.TriggerRequest) (bot.Reaction, error) {
			return bot.Msgs("*waves*", "*waves again*"), nil
		}).
		MustEnd()
	if err := state.LoadModule(m, bot.LoadAdd); err != nil {
		t.Fatal(err)
	}
	return state
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	hello := read(t, conn)
	if hello.Type != "hello" {
		t.Fatalf("first frame = %s, want hello", hello.Type)
	}
	return conn
}

func read(t *testing.T, conn *websocket.Conn) response {
	t.Helper()
	var resp response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return resp
}

func sendMessage(t *testing.T, conn *websocket.Conn, payload WSChatPayload) {
	t.Helper()
	raw, _ := json.Marshal(payload)
	if err := conn.WriteJSON(WSMessage{Type: "message", Payload: raw}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
}

func TestConsole_CommandReply(t *testing.T) {
	state := echoState(t)
	d := dispatch.New(state, dispatch.Config{Nick: "bot", CommandPrefix: "!"}, log.Nop())
	conn := dial(t, newTestServer(t, d))

	sendMessage(t, conn, WSChatPayload{Nick: "alice", Target: "#tea", Text: "!echo hello"})

	resp := read(t, conn)
	if resp.Type != "reaction" {
		t.Fatalf("frame type = %s, want reaction", resp.Type)
	}
	var payload WSReactionPayload
	json.Unmarshal(resp.Payload, &payload)
	if payload.Target != "#tea" || len(payload.Lines) != 1 || payload.Lines[0] != "alice: hello" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestConsole_TriggerMsgsAndDefaultTarget(t *testing.T) {
	state := echoState(t)
	d := dispatch.New(state, dispatch.Config{Nick: "bot", CommandPrefix: "!"}, log.Nop())
	conn := dial(t, newTestServer(t, d))

	sendMessage(t, conn, WSChatPayload{Nick: "alice", Text: "I wave"})

	var payload WSReactionPayload
	json.Unmarshal(read(t, conn).Payload, &payload)
	if payload.Target != "#console" || len(payload.Lines) != 2 || payload.Lines[0] != "*waves*" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestConsole_PingAndErrors(t *testing.T) {
	conn := dial(t, newTestServer(t, failingDispatcher{}))

	conn.WriteJSON(WSMessage{Type: "ping"})
	if resp := read(t, conn); resp.Type != "pong" {
		t.Errorf("ping answered with %s", resp.Type)
	}

	tests := []struct {
		name     string
		msg      WSMessage
		wantCode string
	}{
		{"unknown type", WSMessage{Type: "shout"}, "unknown_type"},
		{"bad payload", WSMessage{Type: "message", Payload: json.RawMessage(`"text"`)}, "invalid_payload"},
		{"missing nick", WSMessage{Type: "message", Payload: json.RawMessage(`{"text":"hi"}`)}, "invalid_request"},
		{"dispatch failure", WSMessage{Type: "message", Payload: json.RawMessage(`{"nick":"a","text":"hi"}`)}, "UNKNOWN"},
	}
	for _, tt := range tests {
		if err := conn.WriteJSON(tt.msg); err != nil {
			t.Fatal(err)
		}
		resp := read(t, conn)
		var payload WSErrorPayload
		json.Unmarshal(resp.Payload, &payload)
		if resp.Type != "error" || payload.Code != tt.wantCode {
			t.Errorf("%s: frame = %s %+v, want error %s", tt.name, resp.Type, payload, tt.wantCode)
		}
	}
}

func TestRender(t *testing.T) {
	meta := bot.MsgMetadata{Target: "#x", Prefix: bot.MsgPrefix{Nick: "bob"}}
	if got := Render(meta, bot.Msg("hi")); got.Lines[0] != "hi" {
		t.Errorf("Render(Msg) = %v", got.Lines)
	}
	if got := Render(meta, bot.Reply("hi")); got.Lines[0] != "bob: hi" {
		t.Errorf("Render(Reply) = %v", got.Lines)
	}
}
