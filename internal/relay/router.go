package relay

import (
	"context"
	"math/rand"
	"time"

	"github.com/lekhandas/chatd/internal/models"
	"go.uber.org/zap"
)

const (
	defaultReplyDelayMin = 1000 * time.Millisecond
	defaultReplyDelayMax = 2000 * time.Millisecond
)

// Responder produces assistant replies. Implementations must not fail;
// degraded replies are their own concern.
type Responder interface {
	Respond(ctx context.Context, sessionKey, message string) string
	Forget(sessionKey string)
}

// RouterConfig defines the router's collaborators and tuning.
type RouterConfig struct {
	Logger    *zap.Logger
	Registry  *Registry
	Responder Responder

	// Reply delay window for assistant messages, a typing-simulation
	// affordance. Zero values take the 1000–2000ms defaults.
	ReplyDelayMin time.Duration
	ReplyDelayMax time.Duration
}

// Router dispatches inbound session events: joins and disconnects mutate the
// registry and broadcast presence, messages and typing states relay to
// exactly one recipient. A missing recipient is a silent drop everywhere.
type Router struct {
	logger    *zap.Logger
	registry  *Registry
	responder Responder
	delayMin  time.Duration
	delayMax  time.Duration
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.ReplyDelayMin <= 0 {
		cfg.ReplyDelayMin = defaultReplyDelayMin
	}
	if cfg.ReplyDelayMax <= cfg.ReplyDelayMin {
		cfg.ReplyDelayMax = cfg.ReplyDelayMin + (defaultReplyDelayMax - defaultReplyDelayMin)
	}
	return &Router{
		logger:    cfg.Logger,
		registry:  cfg.Registry,
		responder: cfg.Responder,
		delayMin:  cfg.ReplyDelayMin,
		delayMax:  cfg.ReplyDelayMax,
	}
}

// HandleJoin registers the session, announces it to everyone else, and
// replies to the joiner with a snapshot of the current session list.
func (r *Router) HandleJoin(id string, profile models.Profile, sink Sink) {
	profile.ID = id
	r.registry.Register(id, profile, sink)

	for _, other := range r.registry.Others(id) {
		_ = other.Send(models.EventParticipantJoined, profile)
	}
	_ = sink.Send(models.EventSessionList, r.registry.ListAll())

	r.logger.Info("participant joined",
		zap.String("connectionID", id),
		zap.String("name", profile.Name))
}

// HandleMessage routes a chat message from the identified sender. Messages
// addressed to the assistant identity are answered asynchronously; everything
// else is forwarded to the addressed session only.
func (r *Router) HandleMessage(senderID string, msg models.ChatMessage) {
	if msg.To == models.AssistantID {
		r.relayToAssistant(senderID, msg.Message)
		return
	}

	_, sink, ok := r.registry.Lookup(msg.To)
	if !ok {
		r.logger.Debug("dropping message for unknown recipient",
			zap.String("to", msg.To))
		return
	}

	_ = sink.Send(models.EventChatMessage, models.ChatMessage{
		From:      senderID,
		Message:   msg.Message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleTyping forwards a typing notification to the addressed session only.
func (r *Router) HandleTyping(senderID string, state models.TypingState) {
	_, sink, ok := r.registry.Lookup(state.To)
	if !ok {
		return
	}

	_ = sink.Send(models.EventTypingIndicator, models.TypingIndicator{
		From:   senderID,
		Typing: state.Typing,
	})
}

// HandleDisconnect removes the session and announces its departure to all
// remaining sessions. Idempotent for unknown ids.
func (r *Router) HandleDisconnect(id string) {
	r.registry.Unregister(id)
	r.responder.Forget(id)

	for _, other := range r.registry.Others(id) {
		_ = other.Send(models.EventParticipantLeft, id)
	}

	r.logger.Info("participant left", zap.String("connectionID", id))
}

// relayToAssistant brackets the assistant's reply with typing indicators and
// an artificial delay. A sender that disconnects mid-flight simply never
// receives the reply; the in-flight response is not cancelled.
func (r *Router) relayToAssistant(senderID, message string) {
	if _, sink, ok := r.registry.Lookup(senderID); ok {
		_ = sink.Send(models.EventTypingIndicator, models.TypingIndicator{
			From:   models.AssistantID,
			Typing: true,
		})
	}

	go func() {
		reply := r.responder.Respond(context.Background(), senderID, message)
		time.Sleep(r.replyDelay())

		_, sink, ok := r.registry.Lookup(senderID)
		if !ok {
			r.logger.Debug("dropping assistant reply for departed session",
				zap.String("connectionID", senderID))
			return
		}

		_ = sink.Send(models.EventChatMessage, models.ChatMessage{
			From:      models.AssistantID,
			Message:   reply,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		_ = sink.Send(models.EventTypingIndicator, models.TypingIndicator{
			From:   models.AssistantID,
			Typing: false,
		})
	}()
}

func (r *Router) replyDelay() time.Duration {
	return r.delayMin + time.Duration(rand.Int63n(int64(r.delayMax-r.delayMin)))
}
