package chat

import (
	"reflect"
	"testing"
)

func TestIsCommand(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"/help", true},
		{"  /join general", true},
		{"hello there", false},
		{"", false},
		{"not /a command", false},
	}

	for _, tc := range cases {
		if got := IsCommand(tc.text); got != tc.want {
			t.Errorf("IsCommand(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestInterpretSimpleCommands(t *testing.T) {
	cases := []struct {
		raw  string
		want Action
	}{
		{"/help", ShowHelpAction{}},
		{"/HELP", ShowHelpAction{}},
		{"/users", ListUsersAction{}},
		{"/rooms", ListRoomsAction{}},
		{"/leave", LeaveRoomAction{}},
		{"/frobnicate", UnknownAction{Name: "frobnicate"}},
	}

	for _, tc := range cases {
		got := Interpret(tc.raw, "", nil)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Interpret(%q) = %#v, want %#v", tc.raw, got, tc.want)
		}
	}
}

func TestInterpretCreate(t *testing.T) {
	cases := []struct {
		raw  string
		want Action
	}{
		{"/create", UsageAction{Usage: "/create <name> [private]"}},
		{"/create lounge", CreateRoomAction{Name: "lounge", Type: RoomPublic}},
		{"/create My Cool Room", CreateRoomAction{Name: "My Cool Room", Type: RoomPublic}},
		{"/create secret private", CreateRoomAction{Name: "secret", Type: RoomPrivate}},
		{"/create secret PRIVATE", CreateRoomAction{Name: "secret", Type: RoomPrivate}},
		// A single argument named "private" is a room name, not a type flag.
		{"/create private", CreateRoomAction{Name: "private", Type: RoomPublic}},
	}

	for _, tc := range cases {
		got := Interpret(tc.raw, "", nil)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Interpret(%q) = %#v, want %#v", tc.raw, got, tc.want)
		}
	}
}

func TestInterpretJoin(t *testing.T) {
	cases := []struct {
		raw  string
		want Action
	}{
		{"/join", UsageAction{Usage: "/join <room> [key]"}},
		{"/join General", JoinRoomAction{RoomID: "general"}},
		{"/join secret ab12cd", JoinRoomAction{RoomID: "secret", Key: "AB12CD"}},
	}

	for _, tc := range cases {
		got := Interpret(tc.raw, "", nil)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Interpret(%q) = %#v, want %#v", tc.raw, got, tc.want)
		}
	}
}

func TestInterpretInfo(t *testing.T) {
	got := Interpret("/info", "general", nil)
	if !reflect.DeepEqual(got, RoomInfoAction{RoomID: "general"}) {
		t.Fatalf("expected info to default to current room, got %#v", got)
	}

	got = Interpret("/info Random", "general", nil)
	if !reflect.DeepEqual(got, RoomInfoAction{RoomID: "random"}) {
		t.Fatalf("expected explicit room to win, got %#v", got)
	}

	got = Interpret("/info", "", nil)
	if !reflect.DeepEqual(got, UsageAction{Usage: "/info <room>"}) {
		t.Fatalf("expected usage error when unjoined with no argument, got %#v", got)
	}
}

func TestInterpretPrivateMessage(t *testing.T) {
	users := []UserRef{
		{ConnID: "c1", Username: "Alice"},
		{ConnID: "c2", Username: "bob"},
		{ConnID: "c3", Username: "alice"},
	}

	got := Interpret("/pm alice hey there", "", users)
	want := PrivateMessageAction{TargetID: "c1", TargetName: "Alice", Body: "hey there"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected first case-insensitive match, got %#v", got)
	}

	got = Interpret("/pm BOB hi", "", users)
	want = PrivateMessageAction{TargetID: "c2", TargetName: "bob", Body: "hi"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected case-insensitive resolution, got %#v", got)
	}

	got = Interpret("/pm carol hi", "", users)
	if !reflect.DeepEqual(got, UserNotFoundAction{Name: "carol"}) {
		t.Fatalf("expected UserNotFoundAction carrying the attempted name, got %#v", got)
	}

	got = Interpret("/pm carol", "", users)
	if !reflect.DeepEqual(got, UsageAction{Usage: "/pm <user> <message>"}) {
		t.Fatalf("expected usage error for missing body, got %#v", got)
	}
}
