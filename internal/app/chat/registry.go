/*
Package chat contains the core logic for the room state machine, broadcast
routing, and connection identity.

This file holds the connection registry: the Conn type and the Hub
operations that track live connections and their bound identities.
*/
package chat

import (
	"sort"
	"time"

	"relaychat/internal/app/user"
	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/randx"
)

// Conn is one live connection tracked by the hub. Its room placement is an
// explicit state machine: room == "" (unjoined) or room == a room id, and the
// hub's Join/Leave paths are the only mutators, so a connection can never be
// observed as a member of two rooms.
type Conn struct {
	// ID is the opaque, transport-assigned identifier. Unique per live
	// connection.
	ID string

	// sess delivers outbound events for this connection.
	sess Session

	// user is nil until the connection identifies. A connection with no
	// bound user may not send chat or room operations.
	user *user.User

	// room is the id of the currently occupied room, or "" when unjoined.
	room string
}

// Username returns the bound username, or "" when unidentified.
func (c *Conn) Username() string {
	if c.user == nil {
		return ""
	}
	return c.user.Username
}

// Register tracks a new, unidentified connection and sends it the current
// room list so clients can render the lobby before identifying.
func (h *Hub) Register(sess Session) *Conn {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn := &Conn{
		ID:   randx.ConnID(),
		sess: sess,
	}
	h.conns[conn.ID] = conn

	h.logger.Info().
		Str("conn_id", conn.ID).
		Int("total_conns", len(h.conns)).
		Msg("Connection registered.")

	conn.sess.Send(EventRoomList, h.roomListLocked())

	return conn
}

// Identify binds a username to the connection. The name is trimmed and
// truncated; an empty trimmed name is rejected. Uniqueness is not enforced.
// Re-identifying updates the username and keeps the original join time.
func (h *Hub) Identify(connID, rawUsername string) *errs.CustomError {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return errs.NewError(errs.ErrUnknown)
	}

	name, ok := user.SanitizeUsername(rawUsername)
	if !ok {
		return errs.NewError(errs.ErrInvalidUsername)
	}

	if conn.user == nil {
		conn.user = &user.User{Username: name, JoinedAt: time.Now()}
	} else {
		conn.user.Username = name
	}

	h.logger.Info().
		Str("conn_id", conn.ID).
		Str("username", name).
		Msg("Connection identified.")

	conn.sess.Send(EventRoomList, h.roomListLocked())
	h.broadcastAllLocked(EventUserList, h.userListLocked())

	return nil
}

// Lookup returns the user bound to the connection, or nil.
func (h *Hub) Lookup(connID string) *user.User {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok || conn.user == nil {
		return nil
	}

	u := *conn.user
	return &u
}

// Unregister removes a connection, unwinding its room membership and
// identity first. It is idempotent: unknown ids are ignored.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return
	}

	if conn.room != "" {
		h.leaveLocked(conn)
		h.broadcastAllLocked(EventRoomList, h.roomListLocked())
	}

	identified := conn.user != nil

	delete(h.conns, connID)
	conn.sess.Close()

	h.logger.Info().
		Str("conn_id", connID).
		Int("total_conns", len(h.conns)).
		Msg("Connection unregistered.")

	if identified {
		h.broadcastAllLocked(EventUserList, h.userListLocked())
	}
}

// RoomOf returns the room currently occupied by the connection, or "".
func (h *Hub) RoomOf(connID string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return ""
	}
	return conn.room
}

// IdentifiedUsers snapshots the identified connections in join order, which
// is the order private-message target resolution uses: with duplicate
// usernames permitted, the earliest join wins.
func (h *Hub) IdentifiedUsers() []UserRef {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.identifiedUsersLocked()
}

func (h *Hub) identifiedUsersLocked() []UserRef {
	conns := make([]*Conn, 0, len(h.conns))
	for _, conn := range h.conns {
		if conn.user != nil {
			conns = append(conns, conn)
		}
	}

	sort.Slice(conns, func(i, j int) bool {
		if conns[i].user.JoinedAt.Equal(conns[j].user.JoinedAt) {
			return conns[i].ID < conns[j].ID
		}
		return conns[i].user.JoinedAt.Before(conns[j].user.JoinedAt)
	})

	refs := make([]UserRef, 0, len(conns))
	for _, conn := range conns {
		refs = append(refs, UserRef{ConnID: conn.ID, Username: conn.user.Username})
	}

	return refs
}

// userListLocked builds the user-list payload in join order.
func (h *Hub) userListLocked() []UserSummary {
	conns := make([]*Conn, 0, len(h.conns))
	for _, conn := range h.conns {
		if conn.user != nil {
			conns = append(conns, conn)
		}
	}

	sort.Slice(conns, func(i, j int) bool {
		if conns[i].user.JoinedAt.Equal(conns[j].user.JoinedAt) {
			return conns[i].ID < conns[j].ID
		}
		return conns[i].user.JoinedAt.Before(conns[j].user.JoinedAt)
	})

	users := make([]UserSummary, 0, len(conns))
	for _, conn := range conns {
		users = append(users, UserSummary{
			ID:       conn.ID,
			Username: conn.user.Username,
			JoinedAt: conn.user.JoinedAt,
		})
	}

	return users
}
