/*
Package history implements the bounded, persisted per-room message log.

The in-memory map is the source of truth for a process lifetime. Every
mutation requests a write-behind snapshot of the whole map; the background
writer serializes those requests so registry mutation latency never depends
on storage I/O.
*/
package history

import (
	"sync"

	"github.com/rs/zerolog"

	"relaychat/internal/app/message"
	"relaychat/internal/pkg/logx"
)

// DefaultLimit is the per-room retention window when none is configured.
const DefaultLimit = 100

// Store holds the bounded per-room message log.
type Store struct {
	// mu protects rooms.
	mu sync.RWMutex

	// rooms maps a room id to its ordered message sequence, oldest first.
	rooms map[string][]message.Message

	// limit is the maximum number of retained entries per room.
	limit int

	// path is the snapshot file location.
	path string

	// snapshotReq coalesces pending snapshot requests for the writer goroutine.
	snapshotReq chan struct{}

	// done stops the writer goroutine.
	done chan struct{}

	// wg waits for the writer goroutine during shutdown.
	wg sync.WaitGroup

	// structured logger with store context.
	logger zerolog.Logger
}

// NewStore loads any persisted snapshot from path and starts the write-behind
// goroutine. A missing or malformed snapshot file yields an empty store, not
// an error. A limit <= 0 falls back to DefaultLimit.
func NewStore(path string, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}

	storeLogger := logx.Logger().With().
		Str("component", "HistoryStore").
		Str("path", path).
		Logger()

	s := &Store{
		rooms:       make(map[string][]message.Message),
		limit:       limit,
		path:        path,
		snapshotReq: make(chan struct{}, 1),
		done:        make(chan struct{}),
		logger:      storeLogger,
	}

	s.load()

	s.wg.Add(1)
	go s.runSnapshotLoop()

	return s
}

// Append pushes a message onto the room's sequence, dropping the oldest
// entries beyond the retention limit, and requests a snapshot.
func (s *Store) Append(roomID string, msg message.Message) {
	s.mu.Lock()

	seq := append(s.rooms[roomID], msg)
	if len(seq) > s.limit {
		seq = seq[len(seq)-s.limit:]
	}
	s.rooms[roomID] = seq

	s.mu.Unlock()

	s.requestSnapshot()
}

// Room returns a copy of the room's message sequence, oldest first.
func (s *Store) Room(roomID string) []message.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq := s.rooms[roomID]
	out := make([]message.Message, len(seq))
	copy(out, seq)

	return out
}

// ToggleReaction toggles username under emoji on the identified message and
// returns the updated message. A miss (unknown room or message id) is
// reported by the second return value, not as an error; reactions are
// best-effort.
func (s *Store) ToggleReaction(roomID, messageID, emoji, username string) (message.Message, bool) {
	s.mu.Lock()

	seq, ok := s.rooms[roomID]
	if !ok {
		s.mu.Unlock()
		return message.Message{}, false
	}

	for i := range seq {
		if seq[i].ID == messageID {
			seq[i].ToggleReaction(emoji, username)
			updated := seq[i]
			s.mu.Unlock()

			s.requestSnapshot()
			return updated, true
		}
	}

	s.mu.Unlock()
	return message.Message{}, false
}

// DeleteRoom removes a room's entire history and requests a snapshot.
func (s *Store) DeleteRoom(roomID string) {
	s.mu.Lock()

	_, ok := s.rooms[roomID]
	delete(s.rooms, roomID)

	s.mu.Unlock()

	if ok {
		s.requestSnapshot()
	}
}

// Len reports the number of retained entries for a room.
func (s *Store) Len(roomID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rooms[roomID])
}

// Close writes a final snapshot and stops the writer goroutine.
func (s *Store) Close() {
	close(s.done)
	s.wg.Wait()

	if err := s.snapshot(); err != nil {
		s.logger.Error().Err(err).Msg("Final history snapshot failed.")
	}
}
