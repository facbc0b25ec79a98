package game

import "testing"

func TestLengthRange(t *testing.T) {
	tests := []struct {
		d        Difficulty
		min, max int
	}{
		{Easy, 4, 6},
		{Medium, 6, 8},
		{Hard, 8, 12},
	}

	for _, tt := range tests {
		min, max := tt.d.LengthRange()
		if min != tt.min || max != tt.max {
			t.Errorf("%s range = %d-%d, want %d-%d", tt.d, min, max, tt.min, tt.max)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, name := range []string{"easy", "medium", "hard"} {
		d, err := ParseDifficulty(name)
		if err != nil {
			t.Errorf("ParseDifficulty(%q) returned %v", name, err)
		}
		if d.String() != name {
			t.Errorf("ParseDifficulty(%q).String() = %q", name, d.String())
		}
	}

	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("ParseDifficulty accepted an unknown level")
	}
	if _, err := ParseDifficulty(""); err == nil {
		t.Error("ParseDifficulty accepted empty input")
	}
}
