package estadosmonitoreo

import "testing"

func TestTextColor(t *testing.T) {
	cases := []struct {
		bg   string
		want string
	}{
		{"#000000", "#ffffff"},
		{"#ffffff", "#000000"},
		{"#ff0000", "#ffffff"},
		{"#ffff00", "#000000"},
		{"1e90ff", "#ffffff"},
		{"#80", "#ffffff"},
		{"", "#ffffff"},
		{"#zzzzzz", "#ffffff"},
	}
	for _, tc := range cases {
		if got := TextColor(tc.bg); got != tc.want {
			t.Errorf("TextColor(%q) = %q, want %q", tc.bg, got, tc.want)
		}
	}
}
