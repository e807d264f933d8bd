package randx

import "testing"

func TestRoomKey(t *testing.T) {
	key, err := RoomKey()
	if err != nil {
		t.Fatalf("RoomKey returned error: %v", err)
	}

	if len(key) != KeyLength {
		t.Fatalf("expected key of length %d, got %q", KeyLength, key)
	}
	if !IsValidKey(key) {
		t.Fatalf("generated key %q failed validation", key)
	}
}

func TestIsValidKey(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"ABC123", true},
		{"abc123", false},
		{"ABC12", false},
		{"ABC1234", false},
		{"ABC-12", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsValidKey(tc.key); got != tc.want {
			t.Errorf("IsValidKey(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestConnIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := ConnID()
		if id == "" {
			t.Fatal("expected non-empty connection id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate connection id %q", id)
		}
		seen[id] = struct{}{}
	}
}
