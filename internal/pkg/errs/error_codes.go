/*
Package errs provides custom error types and application-level error code constants.

Codes identify specific business or system errors both internally and in the
advisory error events sent to clients.
*/
package errs

// 1xxx: General Request Handling and Validation Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrInvalidPayload indicates an event payload that does not match the
	// schema expected for its event name.
	ErrInvalidPayload = 1002

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1003

	// ErrInvalidUsername indicates an empty username after trimming.
	ErrInvalidUsername = 1101

	// ErrEmptyMessage indicates a chat message with no content.
	ErrEmptyMessage = 1102

	// ErrMessageTooLong indicates message content over the maximum length.
	ErrMessageTooLong = 1103
)

// 2xxx: Room Business Logic Errors
const (
	// ErrRoomNotFound indicates that the referenced room does not exist.
	ErrRoomNotFound = 2101

	// ErrEmptyRoomName indicates a create-room request with a blank name.
	ErrEmptyRoomName = 2102

	// ErrInvalidRoomKey indicates a wrong or missing key for a private room.
	ErrInvalidRoomKey = 2103

	// ErrRoomTypeInvalid indicates an unrecognized room type on creation.
	ErrRoomTypeInvalid = 2104
)

// 3xxx: User and Session Errors
const (
	// ErrNotIdentified indicates an operation that requires a bound user on
	// a connection that has not joined with a username yet.
	ErrNotIdentified = 3001

	// ErrNotInRoom indicates a room-scoped operation from a connection that
	// currently occupies no room.
	ErrNotInRoom = 3002

	// ErrUserNotFound indicates a private-message target that matches no
	// identified user.
	ErrUserNotFound = 3003
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
