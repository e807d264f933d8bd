/*
Package message defines the chat message model shared by the history store
and the broadcast router.

Message ids are ULIDs: a millisecond timestamp plus random entropy, which
keeps display ordering stable without requiring strict sortability.
*/
package message

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// SystemSender is the sender name attached to server-generated messages.
const SystemSender = "system"

// Kind classifies a message.
type Kind string

const (
	// KindPublic is a user message broadcast to a room and persisted.
	KindPublic Kind = "public"

	// KindPrivate is a direct user-to-user message, never persisted.
	KindPrivate Kind = "private"

	// KindSystem is a server-generated room notification, persisted.
	KindSystem Kind = "system"

	// KindFile is a message wrapping an uploaded attachment reference, persisted.
	KindFile Kind = "file"
)

// Attachment is the opaque reference returned by the external upload
// collaborator. The core wraps it unmodified into a file-kind message.
type Attachment struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	MimeType string `json:"mimetype"`
	Size     int64  `json:"size"`
}

// Message is a single chat entry.
type Message struct {
	ID         string      `json:"id"`
	Kind       Kind        `json:"kind"`
	Sender     string      `json:"sender"`
	Body       string      `json:"body,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`

	// Room is absent for private messages.
	Room string `json:"room,omitempty"`

	// Reactions maps an emoji to the usernames who reacted with it.
	Reactions map[string][]string `json:"reactions,omitempty"`
}

// NewID generates a ULID message identifier.
func NewID() string {
	return ulid.Make().String()
}

// New constructs a user message of the given kind for a room.
func New(kind Kind, room, sender, body string) Message {
	return Message{
		ID:        NewID(),
		Kind:      kind,
		Sender:    sender,
		Body:      body,
		Timestamp: time.Now(),
		Room:      room,
	}
}

// NewSystem constructs a server-generated room notification.
func NewSystem(room, body string) Message {
	return New(KindSystem, room, SystemSender, body)
}

// NewPrivate constructs a direct message. Private messages carry no room.
func NewPrivate(sender, body string) Message {
	return New(KindPrivate, "", sender, body)
}

// NewFile constructs a file-kind message wrapping an attachment reference.
func NewFile(room, sender string, att Attachment) Message {
	msg := New(KindFile, room, sender, "")
	msg.Attachment = &att
	return msg
}

// ToggleReaction adds username under emoji, or removes it when already
// present. An emoji entry left empty is dropped. Toggling twice with the
// same arguments restores the prior state.
func (m *Message) ToggleReaction(emoji, username string) {
	if m.Reactions == nil {
		m.Reactions = make(map[string][]string)
	}

	names := m.Reactions[emoji]
	for i, name := range names {
		if name == username {
			names = append(names[:i], names[i+1:]...)
			if len(names) == 0 {
				delete(m.Reactions, emoji)
			} else {
				m.Reactions[emoji] = names
			}
			return
		}
	}

	m.Reactions[emoji] = append(names, username)
}
