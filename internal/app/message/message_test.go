package message

import "testing"

func TestToggleReactionAddAndRemove(t *testing.T) {
	msg := New(KindPublic, "general", "alice", "hello")

	msg.ToggleReaction("👍", "bob")
	if got := msg.Reactions["👍"]; len(got) != 1 || got[0] != "bob" {
		t.Fatalf("expected bob under 👍, got %v", got)
	}

	msg.ToggleReaction("👍", "carol")
	if got := msg.Reactions["👍"]; len(got) != 2 {
		t.Fatalf("expected two reactors, got %v", got)
	}

	msg.ToggleReaction("👍", "bob")
	if got := msg.Reactions["👍"]; len(got) != 1 || got[0] != "carol" {
		t.Fatalf("expected carol left under 👍, got %v", got)
	}
}

func TestToggleReactionIsItsOwnInverse(t *testing.T) {
	msg := New(KindPublic, "general", "alice", "hello")

	msg.ToggleReaction("🎉", "bob")
	msg.ToggleReaction("🎉", "bob")

	if _, ok := msg.Reactions["🎉"]; ok {
		t.Fatalf("expected empty emoji entry to be dropped, got %v", msg.Reactions)
	}
}

func TestNewPrivateCarriesNoRoom(t *testing.T) {
	msg := NewPrivate("alice", "psst")

	if msg.Room != "" {
		t.Fatalf("expected private message without room, got %q", msg.Room)
	}
	if msg.Kind != KindPrivate {
		t.Fatalf("expected kind %q, got %q", KindPrivate, msg.Kind)
	}
	if msg.ID == "" {
		t.Fatal("expected a generated message id")
	}
}

func TestNewFileWrapsAttachment(t *testing.T) {
	att := Attachment{Filename: "cat.png", URL: "/uploads/cat.png", MimeType: "image/png", Size: 1234}

	msg := NewFile("general", "alice", att)

	if msg.Kind != KindFile {
		t.Fatalf("expected kind %q, got %q", KindFile, msg.Kind)
	}
	if msg.Attachment == nil || *msg.Attachment != att {
		t.Fatalf("expected attachment passed through unmodified, got %+v", msg.Attachment)
	}
}

func TestNewSystemSender(t *testing.T) {
	msg := NewSystem("general", "alice joined the room")

	if msg.Sender != SystemSender {
		t.Fatalf("expected sender %q, got %q", SystemSender, msg.Sender)
	}
	if msg.Kind != KindSystem {
		t.Fatalf("expected kind %q, got %q", KindSystem, msg.Kind)
	}
}
