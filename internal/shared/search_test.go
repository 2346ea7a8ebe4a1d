package shared

import "testing"

func TestFoldSearch(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Martínez", "martinez"},
		{"  ÁREA  ", "area"},
		{"Muñoz", "munoz"},
		{"Jean-Pièrre", "jean-pierre"},
		{"sin acentos", "sin acentos"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := FoldSearch(tc.in); got != tc.want {
			t.Errorf("FoldSearch(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
