package duration

import "testing"

func TestParse_MinutesAndSeconds(t *testing.T) {
	got, ok := Parse("PT4M13S")
	if !ok || got != 253 {
		t.Errorf("Parse(PT4M13S) = %d, %v, want 253, true", got, ok)
	}
}

func TestParse_HoursMinutesSeconds(t *testing.T) {
	got, ok := Parse("PT1H30M45S")
	if !ok || got != 5445 {
		t.Errorf("Parse(PT1H30M45S) = %d, %v, want 5445, true", got, ok)
	}
}

func TestParse_MinutesOnly(t *testing.T) {
	got, ok := Parse("PT10M")
	if !ok || got != 600 {
		t.Errorf("Parse(PT10M) = %d, %v, want 600, true", got, ok)
	}
}

func TestParse_ZeroSecondsIsUnknown(t *testing.T) {
	if _, ok := Parse("PT0S"); ok {
		t.Error("Parse(PT0S) should report unknown duration")
	}
}

func TestParse_EmptyIsUnknown(t *testing.T) {
	if _, ok := Parse(""); ok {
		t.Error("Parse(\"\") should report unknown duration")
	}
}

func TestParse_MalformedIsUnknown(t *testing.T) {
	for _, code := range []string{"4M13S", "PTxx", "P1DT2H", "PT1H2M3S4X", "1:30"} {
		if _, ok := Parse(code); ok {
			t.Errorf("Parse(%q) should report unknown duration", code)
		}
	}
}

func TestParse_HoursOnly(t *testing.T) {
	got, ok := Parse("PT2H")
	if !ok || got != 7200 {
		t.Errorf("Parse(PT2H) = %d, %v, want 7200, true", got, ok)
	}
}
