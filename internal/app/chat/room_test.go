package chat

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"General", "general"},
		{"My Cool Room", "my-cool-room"},
		{"  spaced   out  ", "spaced-out"},
		{"Tabs\tand\nnewlines", "tabs-and-newlines"},
		{"already-slugged", "already-slugged"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.name); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
