package models

import "encoding/json"

// Event names carried on websocket frames.
const (
	EventJoin              = "join"
	EventParticipantJoined = "participant-joined"
	EventSessionList       = "session-list"
	EventChatMessage       = "chat-message"
	EventTypingState       = "typing-state"
	EventTypingIndicator   = "typing-indicator"
	EventParticipantLeft   = "participant-left"
)

// AssistantID is the reserved routing identity of the built-in assistant.
// Connection ids are server-assigned uuids, so this value is never issued
// to a live session.
const AssistantID = "lekhandas"

// Frame is the wire envelope for every websocket event in both directions.
type Frame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Profile is the display metadata announced on join and echoed in
// participant-joined and session-list events. ID is always the
// server-assigned connection id, regardless of what the client sent.
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type ChatMessage struct {
	From      string `json:"from"`
	To        string `json:"to,omitempty"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

// TypingState is the client-reported typing notification.
type TypingState struct {
	To     string `json:"to"`
	Typing bool   `json:"typing"`
}

// TypingIndicator is the server-forwarded typing notification.
type TypingIndicator struct {
	From   string `json:"from"`
	Typing bool   `json:"typing"`
}
