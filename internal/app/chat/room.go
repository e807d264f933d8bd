/*
Package chat contains the core logic for the room state machine, broadcast
routing, and connection identity.

This file defines the Room struct and its read-only snapshots. Rooms are
plain data owned by the Hub; every mutation happens under the hub lock.
*/
package chat

import (
	"sort"
	"strings"
	"time"
)

// RoomType distinguishes open rooms from key-protected ones.
type RoomType string

const (
	// RoomPublic rooms are open to any identified connection.
	RoomPublic RoomType = "public"

	// RoomPrivate rooms require the access key generated at creation.
	RoomPrivate RoomType = "private"
)

// Default rooms seeded at startup. They are exempt from empty-room deletion.
const (
	DefaultRoomGeneral = "general"
	DefaultRoomRandom  = "random"
)

// Room is a named broadcast scope with a membership set.
// Invariant: Type == RoomPrivate if and only if Key is non-empty.
type Room struct {
	// ID is the URL-safe slug identifying the room. Unique.
	ID string

	// Name is the display name. Two rooms may share a Name; never an ID.
	Name string

	// Type is public or private.
	Type RoomType

	// Key gates access to private rooms. Generated once at creation,
	// immutable. Empty for public rooms.
	Key string

	// CreatedAt records room creation time.
	CreatedAt time.Time

	// Creator is the username of the creating user at creation time.
	Creator string

	// members maps connection ids to their Conn. Mutated only by the Hub.
	members map[string]*Conn
}

// RoomSummary is the room-list entry broadcast to every connection.
// It never carries the access key.
type RoomSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        RoomType  `json:"type"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RoomInfo is the best-effort detail snapshot served by the room-info query.
type RoomInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        RoomType  `json:"type"`
	MemberCount int       `json:"memberCount"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
	Creator     string    `json:"creator"`
}

// newRoom constructs a room with an empty membership set.
func newRoom(id, name string, roomType RoomType, key, creator string) *Room {
	return &Room{
		ID:        id,
		Name:      name,
		Type:      roomType,
		Key:       key,
		CreatedAt: time.Now(),
		Creator:   creator,
		members:   make(map[string]*Conn),
	}
}

// summary builds the room-list entry. Caller holds the hub lock.
func (r *Room) summary() RoomSummary {
	return RoomSummary{
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Type,
		MemberCount: len(r.members),
		CreatedAt:   r.CreatedAt,
	}
}

// info builds the detail snapshot with member usernames sorted for stable
// output. Caller holds the hub lock.
func (r *Room) info() RoomInfo {
	members := make([]string, 0, len(r.members))
	for _, conn := range r.members {
		if conn.user != nil {
			members = append(members, conn.user.Username)
		}
	}
	sort.Strings(members)

	return RoomInfo{
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Type,
		MemberCount: len(r.members),
		Members:     members,
		CreatedAt:   r.CreatedAt,
		Creator:     r.Creator,
	}
}

// Slugify derives a room id from a display name: lower-cased with whitespace
// runs collapsed to single hyphens.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
