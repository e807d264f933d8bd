/*
Package history implements the bounded, persisted per-room message log.

This file contains snapshot persistence: whole-map JSON reads at startup and
write-behind whole-map JSON writes after every mutation. Persistence is
best-effort; a failed write is logged and never rolls back or retries the
in-memory mutation.
*/
package history

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"relaychat/internal/app/message"
)

// requestSnapshot enqueues a snapshot request without blocking. A request
// already pending covers this mutation too, so duplicates are dropped.
func (s *Store) requestSnapshot() {
	select {
	case s.snapshotReq <- struct{}{}:
	default:
	}
}

// runSnapshotLoop serializes snapshot writes on a single goroutine.
func (s *Store) runSnapshotLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.snapshotReq:
			if err := s.snapshot(); err != nil {
				s.logger.Error().Err(err).Msg("History snapshot write failed.")
			}

		case <-s.done:
			return
		}
	}
}

// snapshot marshals the whole history map and rewrites the snapshot file
// atomically (temp file + rename).
func (s *Store) snapshot() error {
	s.mu.RLock()
	data, err := json.Marshal(s.rooms)
	s.mu.RUnlock()

	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}

// load reads the persisted snapshot into memory. Absence of the file or
// malformed contents yield an empty store, never a hard failure.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().Err(err).Msg("History snapshot unreadable. Starting with empty history.")
		}
		return
	}

	rooms := make(map[string][]message.Message)
	if err := json.Unmarshal(data, &rooms); err != nil {
		s.logger.Warn().Err(err).Msg("History snapshot malformed. Starting with empty history.")
		return
	}

	// Re-apply the retention limit in case it shrank between runs.
	for roomID, seq := range rooms {
		if len(seq) > s.limit {
			rooms[roomID] = seq[len(seq)-s.limit:]
		}
	}

	s.rooms = rooms

	s.logger.Info().Int("rooms", len(rooms)).Msg("History snapshot loaded.")
}
