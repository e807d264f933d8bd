/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling and Validation Errors
	ErrInvalidParams:     {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrInvalidPayload:    {Code: ErrInvalidPayload, Message: "Malformed event payload."},
	ErrRateLimitExceeded: {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrInvalidUsername:   {Code: ErrInvalidUsername, Message: "Username cannot be empty."},
	ErrEmptyMessage:      {Code: ErrEmptyMessage, Message: "Message cannot be empty."},
	ErrMessageTooLong:    {Code: ErrMessageTooLong, Message: "Message is too long."},

	// 2xxx: Room Business Logic Errors
	ErrRoomNotFound:    {Code: ErrRoomNotFound, Message: "Room not found."},
	ErrEmptyRoomName:   {Code: ErrEmptyRoomName, Message: "Room name cannot be empty."},
	ErrInvalidRoomKey:  {Code: ErrInvalidRoomKey, Message: "Invalid room key."},
	ErrRoomTypeInvalid: {Code: ErrRoomTypeInvalid, Message: "Invalid room type."},

	// 3xxx: User and Session Errors
	ErrNotIdentified: {Code: ErrNotIdentified, Message: "Please choose a username first."},
	ErrNotInRoom:     {Code: ErrNotInRoom, Message: "Join a room before sending messages."},
	ErrUserNotFound:  {Code: ErrUserNotFound, Message: "User %q not found."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
