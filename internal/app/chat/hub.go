/*
Package chat contains the core logic for the room state machine, broadcast
routing, and connection identity.

This file defines the Hub, the single owning component for all mutable chat
state: the connection table, the room table, and the history store. One
mutex serializes every mutating operation, so concurrent connection handlers
can never interleave partial updates to a membership set, a current-room
pointer, or a room's message sequence. Outbound delivery is a non-blocking
enqueue per session, so no network I/O happens under the lock; snapshot
writes are dispatched to the history store's background writer.
*/
package chat

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"relaychat/internal/app/history"
	"relaychat/internal/app/message"
	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/randx"
)

// Hub coordinates connections, rooms, and message history.
type Hub struct {
	// mu is the global ordering lock for all registry mutations.
	mu sync.Mutex

	// conns tracks every live connection by id.
	conns map[string]*Conn

	// rooms tracks every room by slug id.
	rooms map[string]*Room

	// history is the bounded, persisted per-room log.
	history *history.Store

	// structured logger with Hub context.
	logger zerolog.Logger
}

// NewHub constructs a Hub and seeds the two default rooms, which always
// exist and are exempt from empty-room deletion.
func NewHub(store *history.Store) *Hub {
	hubLogger := logx.Logger().With().Str("component", "Hub").Logger()

	h := &Hub{
		conns:   make(map[string]*Conn),
		rooms:   make(map[string]*Room),
		history: store,
		logger:  hubLogger,
	}

	h.rooms[DefaultRoomGeneral] = newRoom(DefaultRoomGeneral, "General", RoomPublic, "", message.SystemSender)
	h.rooms[DefaultRoomRandom] = newRoom(DefaultRoomRandom, "Random", RoomPublic, "", message.SystemSender)

	return h
}

// Join places the connection in the target room. If it currently occupies a
// different room, that room is left first; both steps happen under the hub
// lock, so no observer ever sees the connection in two rooms or in none
// between them.
func (h *Hub) Join(connID, roomID, key string) *errs.CustomError {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok || conn.user == nil {
		return errs.NewError(errs.ErrNotIdentified)
	}

	room, ok := h.rooms[roomID]
	if !ok {
		return errs.NewError(errs.ErrRoomNotFound)
	}

	if room.Type == RoomPrivate && key != room.Key {
		return errs.NewError(errs.ErrInvalidRoomKey)
	}

	h.joinLocked(conn, room)

	return nil
}

// joinLocked performs the placement half of a join: leave the current room,
// enter the target, replay history, and notify. Caller holds the hub lock and
// has already validated identity and room access.
func (h *Hub) joinLocked(conn *Conn, room *Room) {
	if conn.room == room.ID {
		return
	}

	if conn.room != "" {
		h.leaveLocked(conn)
	}

	room.members[conn.ID] = conn
	conn.room = room.ID

	h.logger.Info().
		Str("conn_id", conn.ID).
		Str("username", conn.user.Username).
		Str("room_id", room.ID).
		Int("member_count", len(room.members)).
		Msg("Connection joined room.")

	// Replay retained history to the joiner only, before the join notice.
	conn.sess.Send(EventChatHistory, ChatHistoryPayload{
		RoomID:   room.ID,
		Messages: h.history.Room(room.ID),
	})

	joined := message.NewSystem(room.ID, fmt.Sprintf("%s joined the room", conn.user.Username))
	h.history.Append(room.ID, joined)
	h.broadcastRoomLocked(room, EventChatMessage, joined, "")

	h.broadcastRoomLocked(room, EventRoomUpdate, room.info(), "")
	h.broadcastAllLocked(EventRoomList, h.roomListLocked())
}

// Leave removes the connection from its current room. A connection that
// occupies no room is a no-op.
func (h *Hub) Leave(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok || conn.room == "" {
		return
	}

	h.leaveLocked(conn)
	h.broadcastAllLocked(EventRoomList, h.roomListLocked())
}

// leaveLocked removes membership, notifies the remaining members, and
// deletes the room (with its history) when it empties and is not a default
// room. Caller holds the hub lock.
func (h *Hub) leaveLocked(conn *Conn) {
	room, ok := h.rooms[conn.room]
	conn.room = ""
	if !ok {
		return
	}

	if _, member := room.members[conn.ID]; !member {
		return
	}
	delete(room.members, conn.ID)

	h.logger.Info().
		Str("conn_id", conn.ID).
		Str("room_id", room.ID).
		Int("member_count", len(room.members)).
		Msg("Connection left room.")

	if len(room.members) == 0 && !h.isDefaultRoom(room.ID) {
		delete(h.rooms, room.ID)
		h.history.DeleteRoom(room.ID)

		h.logger.Info().Str("room_id", room.ID).Msg("Empty room deleted.")

		h.broadcastAllLocked(EventRoomList, h.roomListLocked())
		return
	}

	left := message.NewSystem(room.ID, fmt.Sprintf("%s left the room", conn.Username()))
	h.history.Append(room.ID, left)
	h.broadcastRoomLocked(room, EventChatMessage, left, "")
	h.broadcastRoomLocked(room, EventRoomUpdate, room.info(), "")
}

// CreateRoom creates a room and joins the creator into it, both under one
// hold of the hub lock: no observer can ever see the room without its
// creator, and a concurrent unregister either runs entirely before (no room
// is created) or entirely after (the creator's departure deletes the empty
// room). The id is the slugified name; on collision a random suffix forces
// uniqueness, so two rooms may share a display name but never an id. Private
// rooms get a generated access key, returned to the creator only.
func (h *Hub) CreateRoom(connID, name, roomType string) *errs.CustomError {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok || conn.user == nil {
		return errs.NewError(errs.ErrNotIdentified)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewError(errs.ErrEmptyRoomName)
	}

	var rt RoomType
	switch roomType {
	case "", string(RoomPublic):
		rt = RoomPublic
	case string(RoomPrivate):
		rt = RoomPrivate
	default:
		return errs.NewError(errs.ErrRoomTypeInvalid)
	}

	id := Slugify(name)
	if id == "" {
		return errs.NewError(errs.ErrEmptyRoomName)
	}

	if _, exists := h.rooms[id]; exists {
		suffix, err := randx.SlugSuffix()
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to generate slug suffix.")
			return errs.NewError(errs.ErrUnknown)
		}
		// Room ids are lowercase; keep the suffix joinable by /join, which
		// lowercases its argument.
		id = id + "-" + strings.ToLower(suffix)
	}

	var roomKey string
	if rt == RoomPrivate {
		key, err := randx.RoomKey()
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to generate room key.")
			return errs.NewError(errs.ErrUnknown)
		}
		roomKey = key
	}

	room := newRoom(id, name, rt, roomKey, conn.user.Username)
	h.rooms[id] = room

	h.logger.Info().
		Str("room_id", id).
		Str("room_type", string(rt)).
		Str("creator", room.Creator).
		Msg("Room created.")

	conn.sess.Send(EventRoomUpdate, RoomCreatedPayload{
		RoomInfo: room.info(),
		Key:      room.Key,
	})

	h.joinLocked(conn, room)

	return nil
}

// RoomInfoQuery sends a read-only room snapshot to the requester. An unknown
// room is a silent miss, not an error; this is a best-effort query.
func (h *Hub) RoomInfoQuery(connID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return
	}

	room, ok := h.rooms[roomID]
	if !ok {
		return
	}

	conn.sess.Send(EventRoomInfo, room.info())
}

// BroadcastChat appends a public message to the sender's room history and
// broadcasts it to the room, sender included.
func (h *Hub) BroadcastChat(connID, text string) *errs.CustomError {
	text = strings.TrimSpace(text)
	if text == "" {
		return errs.NewError(errs.ErrEmptyMessage)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conn, room, cerr := h.roomSenderLocked(connID)
	if cerr != nil {
		return cerr
	}

	msg := message.New(message.KindPublic, room.ID, conn.user.Username, text)
	h.history.Append(room.ID, msg)
	h.broadcastRoomLocked(room, EventChatMessage, msg, "")

	return nil
}

// BroadcastFile wraps a pre-resolved attachment reference into a file-kind
// message for the sender's room. The reference comes from the external
// upload collaborator and is passed through unmodified.
func (h *Hub) BroadcastFile(connID string, att message.Attachment) *errs.CustomError {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, room, cerr := h.roomSenderLocked(connID)
	if cerr != nil {
		return cerr
	}

	msg := message.NewFile(room.ID, conn.user.Username, att)
	h.history.Append(room.ID, msg)
	h.broadcastRoomLocked(room, EventChatMessage, msg, "")

	return nil
}

// PrivateMessage delivers a direct message to the target connection and
// echoes it to the sender. Private messages are never persisted.
func (h *Hub) PrivateMessage(senderID, targetID, body string) *errs.CustomError {
	body = strings.TrimSpace(body)
	if body == "" {
		return errs.NewError(errs.ErrEmptyMessage)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	sender, ok := h.conns[senderID]
	if !ok || sender.user == nil {
		return errs.NewError(errs.ErrNotIdentified)
	}

	target, ok := h.conns[targetID]
	if !ok || target.user == nil {
		return errs.NewError(errs.ErrUserNotFound, targetID)
	}

	delivery := PrivateDelivery{
		Message: message.NewPrivate(sender.user.Username, body),
		To:      target.user.Username,
	}

	target.sess.Send(EventPrivateMessage, delivery)
	if target.ID != sender.ID {
		sender.sess.Send(EventPrivateMessage, delivery)
	}

	return nil
}

// ToggleReaction toggles the caller's reaction on a stored message and
// broadcasts the updated state to the room. Unknown room or message ids are
// silent misses; reactions are best-effort.
func (h *Hub) ToggleReaction(connID, roomID, messageID, emoji string) *errs.CustomError {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok || conn.user == nil {
		return errs.NewError(errs.ErrNotIdentified)
	}

	updated, found := h.history.ToggleReaction(roomID, messageID, emoji, conn.user.Username)
	if !found {
		return nil
	}

	room, ok := h.rooms[roomID]
	if !ok {
		return nil
	}

	h.broadcastRoomLocked(room, EventMessageReaction, ReactionUpdate{
		RoomID:    roomID,
		MessageID: messageID,
		Emoji:     emoji,
		Reactions: updated.Reactions,
	}, "")

	return nil
}

// Typing relays typing state to the other members of the sender's room.
// Connections outside a room are ignored; typing is ephemeral and
// never persisted.
func (h *Hub) Typing(connID string, typing bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok || conn.user == nil || conn.room == "" {
		return
	}

	room, ok := h.rooms[conn.room]
	if !ok {
		return
	}

	h.broadcastRoomLocked(room, EventUserTyping, TypingNotice{
		Username: conn.user.Username,
		Typing:   typing,
	}, conn.ID)
}

// SendUserList sends the current user list to one connection.
func (h *Hub) SendUserList(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.conns[connID]; ok {
		conn.sess.Send(EventUserList, h.userListLocked())
	}
}

// SendRoomList sends the current room list to one connection.
func (h *Hub) SendRoomList(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.conns[connID]; ok {
		conn.sess.Send(EventRoomList, h.roomListLocked())
	}
}

// roomSenderLocked resolves the identified sender and its current room for
// room-scoped message operations. Caller holds the hub lock.
func (h *Hub) roomSenderLocked(connID string) (*Conn, *Room, *errs.CustomError) {
	conn, ok := h.conns[connID]
	if !ok || conn.user == nil {
		return nil, nil, errs.NewError(errs.ErrNotIdentified)
	}

	if conn.room == "" {
		return nil, nil, errs.NewError(errs.ErrNotInRoom)
	}

	room, ok := h.rooms[conn.room]
	if !ok {
		return nil, nil, errs.NewError(errs.ErrRoomNotFound)
	}

	return conn, room, nil
}

// roomListLocked builds the room-list payload, default rooms first, then by
// creation time.
func (h *Hub) roomListLocked() []RoomSummary {
	rooms := make([]*Room, 0, len(h.rooms))
	for _, room := range h.rooms {
		rooms = append(rooms, room)
	}

	sort.Slice(rooms, func(i, j int) bool {
		di, dj := h.isDefaultRoom(rooms[i].ID), h.isDefaultRoom(rooms[j].ID)
		if di != dj {
			return di
		}
		if rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].ID < rooms[j].ID
		}
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})

	list := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		list = append(list, room.summary())
	}

	return list
}

// isDefaultRoom reports whether the room id is one of the seeded defaults.
func (h *Hub) isDefaultRoom(roomID string) bool {
	return roomID == DefaultRoomGeneral || roomID == DefaultRoomRandom
}

// broadcastRoomLocked enqueues an event for every room member except the one
// identified by exceptID (empty means everyone). Delivery is fire-and-forget
// per member. Caller holds the hub lock.
func (h *Hub) broadcastRoomLocked(room *Room, event string, payload any, exceptID string) {
	for id, member := range room.members {
		if id == exceptID {
			continue
		}
		member.sess.Send(event, payload)
	}
}

// broadcastAllLocked enqueues an event for every live connection, identified
// or not. Caller holds the hub lock.
func (h *Hub) broadcastAllLocked(event string, payload any) {
	for _, conn := range h.conns {
		conn.sess.Send(event, payload)
	}
}
