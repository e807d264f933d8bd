/*
Package chat contains the core logic for the room state machine, broadcast
routing, and connection identity.

This file defines the event-tagged wire surface: event names, the frame
envelope, and a fixed payload schema per event. Payloads that do not match
their schema are rejected with an advisory error rather than propagated.
*/
package chat

import (
	"encoding/json"
	"time"

	"relaychat/internal/app/message"
)

// Inbound event names.
const (
	EventUserJoin        = "user join"
	EventChatMessage     = "chat message"
	EventPrivateMessage  = "private message"
	EventCreateRoom      = "create room"
	EventJoinRoom        = "join room"
	EventLeaveRoom       = "leave room"
	EventGetRoomInfo     = "get room info"
	EventMessageReaction = "message reaction"
	EventTyping          = "typing"
	EventFileMessage     = "file message"
)

// Outbound event names. Chat, private-message, and reaction events share
// their inbound names.
const (
	EventChatHistory = "chat history"
	EventRoomList    = "room list"
	EventUserList    = "user list"
	EventRoomUpdate  = "room update"
	EventRoomInfo    = "room info"
	EventUserTyping  = "user typing"
	EventError       = "error"
)

// Envelope is the JSON frame exchanged over the transport.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// OutboundEnvelope is the frame shape used when marshaling server events.
type OutboundEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// UserJoinPayload binds a username to the connection.
type UserJoinPayload struct {
	Username string `json:"username"`
}

// ChatMessagePayload carries user input: either chat text or a slash command.
type ChatMessagePayload struct {
	Text string `json:"text"`
}

// PrivateMessagePayload addresses a direct message by connection id.
type PrivateMessagePayload struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// CreateRoomPayload requests a new room. Type defaults to public.
type CreateRoomPayload struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// JoinRoomPayload requests membership in a room. Key is required for
// private rooms.
type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
	Key    string `json:"key,omitempty"`
}

// GetRoomInfoPayload requests a read-only room snapshot.
type GetRoomInfoPayload struct {
	RoomID string `json:"roomId"`
}

// ReactionPayload toggles the caller's reaction on a stored message.
type ReactionPayload struct {
	RoomID    string `json:"roomId"`
	MessageID string `json:"messageId"`
	Emoji     string `json:"emoji"`
}

// TypingPayload signals the caller started or stopped typing.
type TypingPayload struct {
	Typing bool `json:"typing"`
}

// ErrorPayload is the advisory error event. It never closes the connection.
type ErrorPayload struct {
	Message string `json:"message"`
}

// UserSummary is one entry of the user list.
type UserSummary struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joinedAt"`
}

// ChatHistoryPayload replays a room's retained history to a joining
// connection.
type ChatHistoryPayload struct {
	RoomID   string            `json:"roomId"`
	Messages []message.Message `json:"messages"`
}

// PrivateDelivery wraps a private message with its target for both the
// recipient's and the sender's copies.
type PrivateDelivery struct {
	message.Message
	To string `json:"to"`
}

// ReactionUpdate announces the updated reaction state of a message.
type ReactionUpdate struct {
	RoomID    string              `json:"roomId"`
	MessageID string              `json:"messageId"`
	Emoji     string              `json:"emoji"`
	Reactions map[string][]string `json:"reactions"`
}

// TypingNotice relays typing state to the sender's room. Ephemeral, never
// persisted.
type TypingNotice struct {
	Username string `json:"username"`
	Typing   bool   `json:"typing"`
}

// RoomCreatedPayload confirms room creation to the creator. Key is set only
// for private rooms and is never included in any broadcast payload.
type RoomCreatedPayload struct {
	RoomInfo
	Key string `json:"key,omitempty"`
}
