// Package activity classifies per-day contribution counts into intensity levels.
package activity

import (
	"fmt"
	"time"
)

// DateFormat is the layout of contribution map keys.
const DateFormat = "2006-01-02"

// Level is one of five intensity buckets.
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelMedium
	LevelHigh
	LevelVeryHigh
)

// NumLevels is the number of buckets, one color per bucket.
const NumLevels = 5

var levelNames = [NumLevels]string{"none", "low", "medium", "high", "very-high"}

// Levels returns all levels from least to most.
func Levels() []Level {
	return []Level{LevelNone, LevelLow, LevelMedium, LevelHigh, LevelVeryHigh}
}

// String returns the bucket name used in CSS classes and JSON.
func (l Level) String() string {
	if l < LevelNone || l > LevelVeryHigh {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(b []byte) error {
	for i, name := range levelNames {
		if name == string(b) {
			*l = Level(i)
			return nil
		}
	}
	return fmt.Errorf("unknown level %q", string(b))
}

// Classify maps a count to its bucket. Buckets are closed intervals:
// 0 none, 1-9 low, 10-19 medium, 20-29 high, 30 and above very-high.
// Negative counts are clamped to none.
func Classify(count int) Level {
	switch {
	case count <= 0:
		return LevelNone
	case count <= 9:
		return LevelLow
	case count <= 19:
		return LevelMedium
	case count <= 29:
		return LevelHigh
	default:
		return LevelVeryHigh
	}
}

// Contributions maps ISO dates to counts. Missing dates count as zero.
type Contributions map[string]int

// Count returns the count for date; a nil map yields zero.
func (c Contributions) Count(date string) int {
	return c[date]
}

// Level classifies the count for date.
func (c Contributions) Level(date string) Level {
	return Classify(c.Count(date))
}

// IsDate reports whether s is a valid YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	if len(s) != len(DateFormat) {
		return false
	}
	_, err := time.Parse(DateFormat, s)
	return err == nil
}
