package relay

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/lekhandas/chatd/internal/models"
	"go.uber.org/zap"
	"golang.org/x/net/websocket"
)

// NewWebSocketHandler serves the persistent per-client connection. Each
// socket gets a fresh server-assigned connection id and its own decode loop.
func NewWebSocketHandler(router *Router, logger *zap.Logger) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		serveConn(conn, router, logger)
	})
}

func serveConn(conn *websocket.Conn, router *Router, logger *zap.Logger) {
	defer func() {
		_ = conn.Close()
	}()

	id := uuid.NewString()
	peer := newPeer(json.NewEncoder(conn))
	decoder := json.NewDecoder(conn)

	defer router.HandleDisconnect(id)

	for {
		var frame models.Frame
		if err := decoder.Decode(&frame); err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Debug("closing connection on decode failure",
					zap.Error(err),
					zap.String("connectionID", id))
			}
			return
		}

		switch frame.Event {
		case models.EventJoin:
			var profile models.Profile
			if err := json.Unmarshal(frame.Payload, &profile); err != nil {
				logger.Debug("ignoring malformed join payload", zap.Error(err))
				continue
			}
			router.HandleJoin(id, profile, peer)

		case models.EventChatMessage:
			var msg models.ChatMessage
			if err := json.Unmarshal(frame.Payload, &msg); err != nil {
				logger.Debug("ignoring malformed chat-message payload", zap.Error(err))
				continue
			}
			router.HandleMessage(id, msg)

		case models.EventTypingState:
			var state models.TypingState
			if err := json.Unmarshal(frame.Payload, &state); err != nil {
				logger.Debug("ignoring malformed typing-state payload", zap.Error(err))
				continue
			}
			router.HandleTyping(id, state)

		default:
			logger.Debug("ignoring unsupported event",
				zap.String("event", frame.Event))
		}
	}
}

// peer serializes writes to one connection. The router's broadcast and the
// delayed assistant reply can race on the same socket.
type peer struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func newPeer(encoder *json.Encoder) *peer {
	return &peer{encoder: encoder}
}

func (p *peer) Send(event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Encode(models.Frame{Event: event, Payload: raw})
}
