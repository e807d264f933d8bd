/*
Package chat contains the core logic for the room state machine, broadcast
routing, and connection identity.

This file implements the slash-command interpreter. It is a pure classifier:
it parses raw input into an Action and performs no I/O, so command parsing is
testable without a live transport. The caller executes the returned Action
against the Hub.
*/
package chat

import "strings"

// HelpText lists the available slash commands.
const HelpText = `Available commands:
/help - show this help
/users - list online users
/rooms - list rooms
/create <name> [private] - create a room
/join <room> [key] - join a room
/leave - leave the current room
/info [room] - show room details
/pm <user> <message> - send a private message`

// UserRef identifies one currently identified user for command resolution.
type UserRef struct {
	ConnID   string
	Username string
}

// Action is the classified intent of a slash command.
type Action interface {
	isAction()
}

// ShowHelpAction requests the command help text.
type ShowHelpAction struct{}

// ListUsersAction requests the current user list.
type ListUsersAction struct{}

// ListRoomsAction requests the current room list.
type ListRoomsAction struct{}

// CreateRoomAction requests creation of a room.
type CreateRoomAction struct {
	Name string
	Type RoomType
}

// JoinRoomAction requests membership in a room.
type JoinRoomAction struct {
	RoomID string
	Key    string
}

// LeaveRoomAction requests departure from the current room.
type LeaveRoomAction struct{}

// RoomInfoAction requests a room detail snapshot.
type RoomInfoAction struct {
	RoomID string
}

// PrivateMessageAction requests direct delivery to a resolved target.
type PrivateMessageAction struct {
	TargetID   string
	TargetName string
	Body       string
}

// UsageAction reports a malformed command along with its usage line.
type UsageAction struct {
	Usage string
}

// UnknownAction reports an unrecognized command name.
type UnknownAction struct {
	Name string
}

// UserNotFoundAction reports a private-message target that matched no
// identified user. It carries the attempted name.
type UserNotFoundAction struct {
	Name string
}

func (ShowHelpAction) isAction()       {}
func (ListUsersAction) isAction()      {}
func (ListRoomsAction) isAction()      {}
func (CreateRoomAction) isAction()     {}
func (JoinRoomAction) isAction()       {}
func (LeaveRoomAction) isAction()      {}
func (RoomInfoAction) isAction()       {}
func (PrivateMessageAction) isAction() {}
func (UsageAction) isAction()          {}
func (UnknownAction) isAction()        {}
func (UserNotFoundAction) isAction()   {}

// IsCommand reports whether the input is a slash command rather than chat.
func IsCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}

// Interpret classifies a slash command. Input is split on whitespace; the
// first token, case-insensitive and stripped of its leading slash, selects
// the action. currentRoom is the caller's occupied room ("" when unjoined)
// and users is a snapshot of identified users in join order, used to resolve
// private-message targets (first case-insensitive exact match wins).
func Interpret(raw string, currentRoom string, users []UserRef) Action {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return UnknownAction{}
	}

	name := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	args := fields[1:]

	switch name {
	case "help":
		return ShowHelpAction{}

	case "users":
		return ListUsersAction{}

	case "rooms":
		return ListRoomsAction{}

	case "create":
		if len(args) == 0 {
			return UsageAction{Usage: "/create <name> [private]"}
		}

		roomType := RoomPublic
		if len(args) > 1 && strings.EqualFold(args[len(args)-1], string(RoomPrivate)) {
			roomType = RoomPrivate
			args = args[:len(args)-1]
		}

		return CreateRoomAction{
			Name: strings.Join(args, " "),
			Type: roomType,
		}

	case "join":
		if len(args) == 0 {
			return UsageAction{Usage: "/join <room> [key]"}
		}

		action := JoinRoomAction{RoomID: strings.ToLower(args[0])}
		if len(args) > 1 {
			action.Key = strings.ToUpper(args[1])
		}

		return action

	case "leave":
		return LeaveRoomAction{}

	case "info":
		roomID := currentRoom
		if len(args) > 0 {
			roomID = strings.ToLower(args[0])
		}
		if roomID == "" {
			return UsageAction{Usage: "/info <room>"}
		}

		return RoomInfoAction{RoomID: roomID}

	case "pm":
		if len(args) < 2 {
			return UsageAction{Usage: "/pm <user> <message>"}
		}

		target := args[0]
		for _, ref := range users {
			if strings.EqualFold(ref.Username, target) {
				return PrivateMessageAction{
					TargetID:   ref.ConnID,
					TargetName: ref.Username,
					Body:       strings.Join(args[1:], " "),
				}
			}
		}

		return UserNotFoundAction{Name: target}

	default:
		return UnknownAction{Name: name}
	}
}
