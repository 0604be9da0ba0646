package activity

import (
	"fmt"
	"time"
)

// Summary aggregates contributions over a contiguous date range.
type Summary struct {
	Total         int `json:"total"`
	ActiveDays    int `json:"active_days"`
	MaxCount      int `json:"max_count"`
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// Summarize walks every day from from to to (inclusive).
//
// A streak is a run of consecutive days with a positive count. The current
// streak ends at to, or at the day before when to itself has no activity yet.
func Summarize(c Contributions, from, to string) (Summary, error) {
	start, err := time.Parse(DateFormat, from)
	if err != nil {
		return Summary{}, fmt.Errorf("invalid from date: %w", err)
	}
	end, err := time.Parse(DateFormat, to)
	if err != nil {
		return Summary{}, fmt.Errorf("invalid to date: %w", err)
	}
	if end.Before(start) {
		return Summary{}, fmt.Errorf("from %s is after to %s", from, to)
	}

	var s Summary
	run := 0
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		count := c.Count(current.Format(DateFormat))
		if count <= 0 {
			run = 0
			continue
		}
		s.Total += count
		s.ActiveDays++
		s.MaxCount = max(s.MaxCount, count)
		run++
		s.LongestStreak = max(s.LongestStreak, run)
	}

	// 当日がまだ0件でも前日までの連続記録は途切れない
	current := end
	if c.Count(current.Format(DateFormat)) <= 0 {
		current = current.AddDate(0, 0, -1)
	}
	for !current.Before(start) && c.Count(current.Format(DateFormat)) > 0 {
		s.CurrentStreak++
		current = current.AddDate(0, 0, -1)
	}

	return s, nil
}
