package catalog

import "testing"

func TestParseDurationMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"30 minutes", 30, true},
		{"Approx. 45 min", 45, true},
		{"18", 18, true},
		{"1 hour", 60, true},
		{"2 hours", 120, true},
		{"1 hr", 60, true},
		{"max 25 mins", 25, true},
		{"Varies", 0, false},
		{"", 0, false},
		{"untimed", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseDurationMinutes(tc.input)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	a := &Assessment{Duration: "40 minutes"}
	minutes, ok := a.DurationMinutes()
	if !ok || minutes != 40 {
		t.Fatalf("expected 40, got %d (ok=%v)", minutes, ok)
	}

	a = &Assessment{Duration: DurationVaries}
	if _, ok := a.DurationMinutes(); ok {
		t.Fatal("expected Varies to be unparseable")
	}
}
