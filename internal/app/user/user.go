/*
Package user contains the core data structure for user identity.

A User exists exactly as long as the connection that supplied its username;
identity is self-asserted and never verified, and usernames are not required
to be unique.
*/
package user

import (
	"strings"
	"time"
)

// MaxUsernameLength is the cap applied to usernames after trimming.
const MaxUsernameLength = 20

// User represents the identity bound to a connection after it has supplied
// a display name. Fields use JSON tags for serialization in outbound events.
type User struct {

	// Username is the trimmed, length-capped display name.
	Username string `json:"username"`

	// JoinedAt records when the connection became identified.
	JoinedAt time.Time `json:"joinedAt"`
}

// SanitizeUsername trims the raw input and truncates it to
// MaxUsernameLength runes. It returns the cleaned name and false when the
// trimmed input is empty.
func SanitizeUsername(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", false
	}

	runes := []rune(name)
	if len(runes) > MaxUsernameLength {
		name = string(runes[:MaxUsernameLength])
	}

	return name, true
}
