package timezone

import "testing"

func TestLocationFallsBackToDefault(t *testing.T) {
	loc := Location("Mars/Olympus_Mons")
	want := Location(DefaultTimezone)
	if loc.String() != want.String() {
		t.Fatalf("expected fallback %s, got %s", want, loc)
	}

	if got := Location("America/Mexico_City"); got.String() != "America/Mexico_City" {
		t.Fatalf("expected America/Mexico_City, got %s", got)
	}
}

func TestIsClock(t *testing.T) {
	for _, ok := range []string{"00:00", "09:30", "23:59"} {
		if !IsClock(ok) {
			t.Errorf("expected %q to be a clock", ok)
		}
	}
	for _, bad := range []string{"9:30", "24:00", "12:60", "noon", ""} {
		if IsClock(bad) {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}
