// Package console is the operator console transport: a websocket endpoint
// through which a client can talk to the bot as if it were a chat network.
package console

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
	"github.com/msto63/chatbot/foundation/core/log"
	"github.com/msto63/chatbot/foundation/utils/stringx"
	"github.com/msto63/chatbot/pkg/bot"
)

// Dispatcher handles one chat message
type Dispatcher interface {
	Dispatch(ctx context.Context, meta bot.MsgMetadata, text string) ([]bot.Reaction, error)
}

// Options configures the handler
type Options struct {
	// Name and Version are announced in the hello frame
	Name    string
	Version string
	// ReadTimeout closes idle connections; it is extended by every frame and pong
	ReadTimeout time.Duration
	// DefaultTarget is used when a message names no target
	DefaultTarget string
	Logger        *log.Logger
}

// WebSocket upgrader with permissive settings for local operation
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler serves console connections
type Handler struct {
	dispatcher Dispatcher
	opts       Options
	logger     *log.Logger
}

// NewHandler creates a console handler
func NewHandler(dispatcher Dispatcher, opts Options) *Handler {
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 120 * time.Second
	}
	if opts.DefaultTarget == "" {
		opts.DefaultTarget = "#console"
	}
	if opts.Logger == nil {
		opts.Logger = log.GetDefault()
	}
	return &Handler{
		dispatcher: dispatcher,
		opts:       opts,
		logger:     opts.Logger.WithField("component", "console"),
	}
}

// WSMessage is an inbound frame
type WSMessage struct {
	Type    string          `json:"type"`    // "message", "ping"
	Payload json.RawMessage `json:"payload"` // Message-specific payload
}

// WSChatPayload is the payload of a "message" frame
type WSChatPayload struct {
	Nick   string `json:"nick"`
	User   string `json:"user,omitempty"`
	Host   string `json:"host,omitempty"`
	Target string `json:"target,omitempty"`
	Text   string `json:"text"`
}

// WSResponse is an outbound frame
type WSResponse struct {
	Type    string      `json:"type"`    // "hello", "reaction", "pong", "error"
	Payload interface{} `json:"payload"` // Response-specific payload
}

// WSHelloPayload is sent once after the upgrade
type WSHelloPayload struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// WSReactionPayload carries the lines the bot sends in response
type WSReactionPayload struct {
	Target string   `json:"target"`
	Lines  []string `json:"lines"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ErrorWithErr("WebSocket upgrade failed", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

// handleConnection serves frames of one connection in arrival order
func (h *Handler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	logger := h.logger.WithField("remote", conn.RemoteAddr().String())
	logger.Info("Console connection established")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(h.opts.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(h.opts.ReadTimeout))
		return nil
	})

	h.send(conn, WSResponse{Type: "hello", Payload: WSHelloPayload{Name: h.opts.Name, Version: h.opts.Version}})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WarnWithErr("Console read error", err)
			} else {
				logger.Info("Console connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(h.opts.ReadTimeout))

		switch msg.Type {
		case "ping":
			h.send(conn, WSResponse{Type: "pong"})

		case "message":
			var payload WSChatPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				h.sendError(conn, "invalid_payload", "Invalid message payload")
				continue
			}
			h.handleChatMessage(ctx, conn, payload)

		default:
			h.sendError(conn, "unknown_type", "Unknown message type: "+msg.Type)
		}
	}
}

func (h *Handler) handleChatMessage(ctx context.Context, conn *websocket.Conn, payload WSChatPayload) {
	if stringx.IsBlank(payload.Nick) {
		h.sendError(conn, "invalid_request", "nick is required")
		return
	}

	meta := bot.MsgMetadata{
		Target: stringx.FirstNonBlank(payload.Target, h.opts.DefaultTarget),
		Prefix: bot.MsgPrefix{Nick: payload.Nick, User: payload.User, Host: payload.Host},
	}

	reactions, err := h.dispatcher.Dispatch(ctx, meta, payload.Text)
	if err != nil {
		h.sendError(conn, string(mdwerror.GetCode(err)), err.Error())
		return
	}

	for _, r := range reactions {
		h.send(conn, WSResponse{Type: "reaction", Payload: Render(meta, r)})
	}
}

// Render turns a reaction into the lines sent to the message target. Reply
// lines are addressed to the sender.
func Render(meta bot.MsgMetadata, r bot.Reaction) WSReactionPayload {
	lines := make([]string, len(r.Lines))
	for i, line := range r.Lines {
		if r.Kind == bot.ReactionReply {
			line = meta.Prefix.Nick + ": " + line
		}
		lines[i] = line
	}
	return WSReactionPayload{Target: meta.Target, Lines: lines}
}

// send writes a frame via WebSocket
func (h *Handler) send(conn *websocket.Conn, resp WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		h.logger.ErrorWithErr("WebSocket send error", err)
	}
}

// sendError sends an error frame via WebSocket
func (h *Handler) sendError(conn *websocket.Conn, code, message string) {
	h.send(conn, WSResponse{
		Type: "error",
		Payload: WSErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}
