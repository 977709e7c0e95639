package assistant

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

const (
	// maxHistoryEntries bounds each session's rolling context: the pinned
	// system instruction plus the last ten user/assistant turns.
	maxHistoryEntries = 11

	maxReplyTokens   = 150
	replyTemperature = 0.8
	requestTimeout   = 30 * time.Second

	placeholderAPIKey = "your_openai_api_key_here"
)

const systemPrompt = "You are Lekhandas, a friendly and helpful AI chat assistant. " +
	"You remember limited user-specific information for fun interactions. " +
	"Keep responses conversational, warm, and engaging. " +
	"Sometimes suggest fun activities or mini-games."

const (
	gameReply = "I'd love to play! Try the mini-games feature - you can play " +
		"tic-tac-toe or guess the number game!"
	greetingReply = "Hello! I'm Lekhandas, your AI friend. I'm here to chat and keep you company!"
)

var fallbackPool = []string{
	"Hi there! I'm Lekhandas, your friendly AI companion. How can I help you today?",
	"That's an interesting point! Tell me more about what you're thinking.",
	"I'm here to chat whenever you need someone to talk to. What's on your mind?",
	"Great question! Let me think about that for a moment...",
	"I love chatting with you! What would you like to discuss?",
	"That sounds fascinating! I'd love to hear more details.",
	"I'm always learning from our conversations. Thank you for sharing!",
	"As an AI assistant, I find that topic quite intriguing!",
	"Would you like to play a game while we chat? I know a few fun ones!",
	"Remember, I'm here to make your chat experience more enjoyable!",
}

// Responder produces assistant replies, consulting the configured model with
// a bounded per-session history and degrading to canned replies when the
// model is unconfigured or unreachable. Respond never fails.
type Responder struct {
	logger *zap.Logger
	model  llms.Model

	mu        sync.Mutex
	histories map[string][]llms.MessageContent
}

// New builds a Responder. A missing or placeholder token is a valid
// configuration and yields fallback-only mode; so does a client that fails
// to construct.
func New(baseURL, token, model string, logger *zap.Logger) *Responder {
	r := &Responder{
		logger:    logger,
		histories: make(map[string][]llms.MessageContent),
	}

	if token == "" || token == placeholderAPIKey {
		logger.Info("assistant model not configured, using fallback replies")
		return r
	}

	llm, err := openai.New(
		openai.WithToken(token),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		logger.Warn("assistant model unavailable, using fallback replies", zap.Error(err))
		return r
	}

	r.model = llm
	logger.Info("assistant model configured", zap.String("model", model))
	return r
}

// Respond returns the assistant's reply for an inbound message. Model
// failures are logged and absorbed by the fallback tier.
func (r *Responder) Respond(ctx context.Context, sessionKey, message string) string {
	if r.model != nil {
		reply, err := r.generate(ctx, sessionKey, message)
		if err == nil {
			return reply
		}
		r.logger.Warn("assistant model call failed, falling back",
			zap.Error(err),
			zap.String("sessionKey", sessionKey))
	}

	return fallbackReply(message)
}

// Forget drops a session's conversation history.
func (r *Responder) Forget(sessionKey string) {
	r.mu.Lock()
	delete(r.histories, sessionKey)
	r.mu.Unlock()
}

func (r *Responder) generate(ctx context.Context, sessionKey, message string) (string, error) {
	r.mu.Lock()
	history, ok := r.histories[sessionKey]
	if !ok {
		history = []llms.MessageContent{
			llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		}
	}
	history = append(history, llms.TextParts(schema.ChatMessageTypeHuman, message))
	history = trimHistory(history)
	r.histories[sessionKey] = history

	snapshot := make([]llms.MessageContent, len(history))
	copy(snapshot, history)
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := r.model.GenerateContent(ctx, snapshot,
		llms.WithMaxTokens(maxReplyTokens),
		llms.WithTemperature(replyTemperature),
	)
	if err != nil {
		return "", fmt.Errorf("generate completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	reply := resp.Choices[0].Content

	r.mu.Lock()
	// The session may have been forgotten while the call was in flight.
	if history, ok := r.histories[sessionKey]; ok {
		r.histories[sessionKey] = trimHistory(append(history,
			llms.TextParts(schema.ChatMessageTypeAI, reply)))
	}
	r.mu.Unlock()

	return reply, nil
}

// trimHistory evicts the oldest user/assistant turns beyond the cap. The
// system instruction at index 0 is never evicted.
func trimHistory(history []llms.MessageContent) []llms.MessageContent {
	if len(history) <= maxHistoryEntries {
		return history
	}
	trimmed := make([]llms.MessageContent, 0, maxHistoryEntries)
	trimmed = append(trimmed, history[0])
	trimmed = append(trimmed, history[len(history)-(maxHistoryEntries-1):]...)
	return trimmed
}

func fallbackReply(message string) string {
	lowered := strings.ToLower(message)
	switch {
	case strings.Contains(lowered, "game"):
		return gameReply
	case strings.Contains(lowered, "hello"), strings.Contains(lowered, "hi"):
		return greetingReply
	}
	return fallbackPool[rand.Intn(len(fallbackPool))]
}
