/*
Package randx provides generators for the random identifiers used across the
chat core: private-room access keys, room-slug collision suffixes, and
connection ids.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// KeyChars is the character set for room keys and slug suffixes (0-9, A-Z).
	KeyChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// KeyLength is the fixed length of generated room keys and slug suffixes.
	KeyLength = 6
)

// RoomKey generates a KeyLength-character uppercase alphanumeric key using
// crypto/rand. Keys gate access to private rooms; they are meant for casual
// access control, not as hardened secrets.
func RoomKey() (string, error) {
	result := make([]byte, KeyLength)

	for i := 0; i < KeyLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(KeyChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for room key: %v", err)
		}

		result[i] = KeyChars[num.Int64()]
	}

	return string(result), nil
}

// SlugSuffix generates the suffix appended to a room slug when it collides
// with an existing room id. Same alphabet and length as a room key.
func SlugSuffix() (string, error) {
	return RoomKey()
}

// ConnID generates an opaque, transport-assigned identifier for a live
// connection (UUID v4).
func ConnID() string {
	return uuid.New().String()
}

// IsValidKey checks length and alphabet of a room key or slug suffix.
func IsValidKey(key string) bool {
	if len(key) != KeyLength {
		return false
	}

	for _, char := range key {
		if !strings.ContainsRune(KeyChars, char) {
			return false
		}
	}

	return true
}
