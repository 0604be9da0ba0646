package activity

import (
	"encoding/json"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		count int
		want  Level
	}{
		{count: -5, want: LevelNone},
		{count: -1, want: LevelNone},
		{count: 0, want: LevelNone},
		{count: 1, want: LevelLow},
		{count: 9, want: LevelLow},
		{count: 10, want: LevelMedium},
		{count: 19, want: LevelMedium},
		{count: 20, want: LevelHigh},
		{count: 29, want: LevelHigh},
		{count: 30, want: LevelVeryHigh},
		{count: 1000, want: LevelVeryHigh},
	}

	for _, tt := range tests {
		if got := Classify(tt.count); got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.count, got, tt.want)
		}
	}
}

func TestClassify_Monotonic(t *testing.T) {
	prev := Classify(-10)
	for count := -9; count <= 100; count++ {
		level := Classify(count)
		if level < prev {
			t.Fatalf("Classify(%d) = %s is below Classify(%d) = %s", count, level, count-1, prev)
		}
		prev = level
	}
}

func TestLevel_String(t *testing.T) {
	want := []string{"none", "low", "medium", "high", "very-high"}
	for i, level := range Levels() {
		if level.String() != want[i] {
			t.Errorf("Level %d: expected %q, got %q", i, want[i], level.String())
		}
	}
	if Level(9).String() != "Level(9)" {
		t.Errorf("Unexpected name for out-of-range level: %s", Level(9))
	}
}

func TestLevel_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]Level{"2024-01-01": LevelMedium})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `{"2024-01-01":"medium"}` {
		t.Errorf("Unexpected JSON: %s", b)
	}

	var l Level
	if err := l.UnmarshalText([]byte("very-high")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if l != LevelVeryHigh {
		t.Errorf("Expected very-high, got %s", l)
	}
	if err := l.UnmarshalText([]byte("extreme")); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestContributions_CountAndLevel(t *testing.T) {
	c := Contributions{"2024-01-01": 15}

	if c.Count("2024-01-01") != 15 {
		t.Errorf("Expected 15, got %d", c.Count("2024-01-01"))
	}
	if c.Level("2024-01-01") != LevelMedium {
		t.Errorf("Expected medium, got %s", c.Level("2024-01-01"))
	}
	if c.Count("2024-01-02") != 0 {
		t.Errorf("Expected missing date to count 0")
	}

	var empty Contributions
	if empty.Level("2024-01-01") != LevelNone {
		t.Errorf("Expected nil map to classify as none")
	}
}

func TestIsDate(t *testing.T) {
	valid := []string{"2024-01-01", "2024-02-29", "1999-12-31"}
	invalid := []string{"", "2024-1-1", "2023-02-29", "2024-13-01", "2024-01-01T00:00:00Z", "yesterday"}

	for _, s := range valid {
		if !IsDate(s) {
			t.Errorf("Expected %q to be a valid date", s)
		}
	}
	for _, s := range invalid {
		if IsDate(s) {
			t.Errorf("Expected %q to be rejected", s)
		}
	}
}
