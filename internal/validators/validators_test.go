package validators

import "testing"

func TestIsEmail(t *testing.T) {
	cases := map[string]bool{
		"ana@example.com":       true,
		"ana.lopez@salon.co.uk": true,
		"ana@localhost":         false,
		"Ana <ana@example.com>": false,
		"not-an-address":        false,
		"":                      false,
		"ana@example.":          false,
	}

	for in, want := range cases {
		if got := IsEmail(in); got != want {
			t.Errorf("IsEmail(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		cc, number string
		want       string
		ok         bool
	}{
		{"+49", "0151 2345 678", "+491512345678", true},
		{"+34", "612-345-678", "+34612345678", true},
		{"", "(030) 1234567", "+49301234567", true},
		{"+49", "+44 20 7946 0958", "+442079460958", true},
		{"+49", "12a45", "", false},
		{"+49", "", "", false},
		{"+49", "12", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizePhone(tc.cc, tc.number)
		if ok != tc.ok || got != tc.want {
			t.Errorf("NormalizePhone(%q, %q) = %q, %v; want %q, %v", tc.cc, tc.number, got, ok, tc.want, tc.ok)
		}
	}
}
