package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"relaychat/internal/app/message"
)

func newTestStore(t *testing.T, limit int) *Store {
	t.Helper()

	s := NewStore(filepath.Join(t.TempDir(), "history.json"), limit)
	t.Cleanup(s.Close)

	return s
}

func TestAppendBoundsHistory(t *testing.T) {
	s := newTestStore(t, DefaultLimit)

	var first string
	for i := 0; i < DefaultLimit+1; i++ {
		msg := message.New(message.KindPublic, "general", "alice", fmt.Sprintf("msg %d", i))
		if i == 0 {
			first = msg.ID
		}
		s.Append("general", msg)
	}

	seq := s.Room("general")
	if len(seq) != DefaultLimit {
		t.Fatalf("expected %d retained entries, got %d", DefaultLimit, len(seq))
	}
	if seq[0].ID == first {
		t.Fatal("expected the oldest entry to be dropped")
	}
	if seq[len(seq)-1].Body != fmt.Sprintf("msg %d", DefaultLimit) {
		t.Fatalf("expected the newest entry to be retained, got %q", seq[len(seq)-1].Body)
	}
}

func TestToggleReactionIsItsOwnInverse(t *testing.T) {
	s := newTestStore(t, DefaultLimit)

	msg := message.New(message.KindPublic, "general", "alice", "hello")
	s.Append("general", msg)

	updated, found := s.ToggleReaction("general", msg.ID, "👍", "bob")
	if !found {
		t.Fatal("expected reaction toggle to find the message")
	}
	if got := updated.Reactions["👍"]; len(got) != 1 || got[0] != "bob" {
		t.Fatalf("expected bob under 👍, got %v", got)
	}

	updated, found = s.ToggleReaction("general", msg.ID, "👍", "bob")
	if !found {
		t.Fatal("expected second toggle to find the message")
	}
	if len(updated.Reactions) != 0 {
		t.Fatalf("expected prior reaction state restored, got %v", updated.Reactions)
	}
}

func TestToggleReactionSilentMiss(t *testing.T) {
	s := newTestStore(t, DefaultLimit)

	if _, found := s.ToggleReaction("nowhere", "no-id", "👍", "bob"); found {
		t.Fatal("expected miss for unknown room")
	}

	s.Append("general", message.New(message.KindPublic, "general", "alice", "hi"))
	if _, found := s.ToggleReaction("general", "no-such-id", "👍", "bob"); found {
		t.Fatal("expected miss for unknown message id")
	}
}

func TestDeleteRoomPurgesHistory(t *testing.T) {
	s := newTestStore(t, DefaultLimit)

	s.Append("lounge", message.New(message.KindPublic, "lounge", "alice", "hi"))
	s.DeleteRoom("lounge")

	if got := s.Len("lounge"); got != 0 {
		t.Fatalf("expected purged history, got %d entries", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	s := NewStore(path, DefaultLimit)
	msg := message.New(message.KindPublic, "general", "alice", "persist me")
	s.Append("general", msg)
	s.Close()

	reloaded := NewStore(path, DefaultLimit)
	t.Cleanup(reloaded.Close)

	seq := reloaded.Room("general")
	if len(seq) != 1 {
		t.Fatalf("expected 1 entry after reload, got %d", len(seq))
	}
	if seq[0].ID != msg.ID || seq[0].Body != "persist me" {
		t.Fatalf("unexpected reloaded entry: %+v", seq[0])
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "does-not-exist.json"), DefaultLimit)
	t.Cleanup(s.Close)

	if got := s.Len("general"); got != 0 {
		t.Fatalf("expected empty store, got %d entries", got)
	}
}

func TestLoadMalformedFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write malformed file: %v", err)
	}

	s := NewStore(path, DefaultLimit)
	t.Cleanup(s.Close)

	if got := s.Len("general"); got != 0 {
		t.Fatalf("expected empty store for malformed snapshot, got %d entries", got)
	}
}

func TestSnapshotWriterCatchesUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	s := NewStore(path, DefaultLimit)
	defer s.Close()

	s.Append("general", message.New(message.KindPublic, "general", "alice", "hi"))

	// The write-behind goroutine owns the file; poll briefly for it.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatal("expected snapshot file to appear after append")
}
