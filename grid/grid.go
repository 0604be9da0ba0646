// Package grid builds the fixed-shape date skeleton of a contribution graph:
// 12 month slots, each of 4 Monday-first weeks of 7 days.
package grid

import (
	"time"
)

const (
	// MonthsPerGrid is the number of month slots in a grid.
	MonthsPerGrid = 12
	// WeeksPerMonth is the number of week rows in a month slot.
	WeeksPerMonth = 4
	// DaysPerWeek is the number of days in a week.
	DaysPerWeek = 7
	// DaysPerGrid is the total number of day cells (336).
	DaysPerGrid = MonthsPerGrid * WeeksPerMonth * DaysPerWeek

	// DefaultLookbackDays puts the grid start 50 weeks before the reference date.
	DefaultLookbackDays = 50 * 7
	// MinLookbackDays and MaxLookbackDays bound the lookback so that the last
	// month slot always contains the reference date: eleven months span 334 to
	// 337 days, the Monday anchor moves back at most 6 days and a slot covers 28.
	MinLookbackDays = 340
	MaxLookbackDays = 355

	// DateFormat is the ISO-8601 calendar date layout used for every Day.Date.
	DateFormat = "2006-01-02"
)

// Day is a single cell of the grid.
type Day struct {
	DayNumber int          `json:"dayNumber"`
	Date      string       `json:"date"`
	Weekday   time.Weekday `json:"-"`
}

// Week is a Monday-first run of seven days.
type Week struct {
	WeekNumber int              `json:"weekNumber"`
	Days       [DaysPerWeek]Day `json:"days"`
}

// Month is a 28-day block labeled with the short name of the month it starts in.
type Month struct {
	MonthName string              `json:"monthName"`
	Weeks     [WeeksPerMonth]Week `json:"weeks"`
}

// Grid is the full 12 x 4 x 7 structure for one reference date.
type Grid struct {
	Today  string               `json:"today"`
	Months [MonthsPerGrid]Month `json:"months"`
}

// Options configures Build.
type Options struct {
	// LookbackDays is the distance between the reference date and the first
	// month slot. Zero means DefaultLookbackDays; other values are clamped to
	// MinLookbackDays..MaxLookbackDays.
	LookbackDays int
	// MonthName labels a month slot from its (unaligned) start date.
	// Nil means the English three-letter abbreviation.
	MonthName func(time.Time) string
}

// Build computes the grid for the calendar date of ref, taken in ref's location.
//
// The start date is ref minus LookbackDays. Month slot m starts at start plus
// m months; its weeks are anchored to the Monday on or before that date, so
// days are Monday-first without any index reordering. Consecutive month
// starts are at least 28 days apart, which keeps every date unique and in
// increasing order, at the cost of an occasional one-week gap. The reference
// date always falls in the last month slot.
func Build(ref time.Time, opts *Options) *Grid {
	lookback := DefaultLookbackDays
	monthName := englishMonthName
	if opts != nil {
		if opts.LookbackDays > 0 {
			lookback = min(max(opts.LookbackDays, MinLookbackDays), MaxLookbackDays)
		}
		if opts.MonthName != nil {
			monthName = opts.MonthName
		}
	}

	today := calendarDate(ref)
	start := today.AddDate(0, 0, -lookback)

	g := &Grid{Today: today.Format(DateFormat)}
	for m := range MonthsPerGrid {
		monthStart := start.AddDate(0, m, 0)
		anchor := weekStart(monthStart)

		month := Month{MonthName: monthName(monthStart)}
		for w := range WeeksPerMonth {
			ws := anchor.AddDate(0, 0, w*DaysPerWeek)
			week := Week{WeekNumber: w + 1}
			for d := range DaysPerWeek {
				current := ws.AddDate(0, 0, d)
				week.Days[d] = Day{
					DayNumber: current.Day(),
					Date:      current.Format(DateFormat),
					Weekday:   current.Weekday(),
				}
			}
			month.Weeks[w] = week
		}
		g.Months[m] = month
	}
	return g
}

// Days returns every day of the grid in display order.
func (g *Grid) Days() []Day {
	days := make([]Day, 0, DaysPerGrid)
	for _, m := range g.Months {
		for _, w := range m.Weeks {
			days = append(days, w.Days[:]...)
		}
	}
	return days
}

// First returns the date of the first cell.
func (g *Grid) First() string {
	return g.Months[0].Weeks[0].Days[0].Date
}

// Last returns the date of the last cell.
func (g *Grid) Last() string {
	return g.Months[MonthsPerGrid-1].Weeks[WeeksPerMonth-1].Days[DaysPerWeek-1].Date
}

// Find looks up the cell for an ISO date.
func (g *Grid) Find(date string) (Day, bool) {
	for _, m := range g.Months {
		for _, w := range m.Weeks {
			for _, d := range w.Days {
				if d.Date == date {
					return d, true
				}
			}
		}
	}
	return Day{}, false
}

// IsToday reports whether d is the reference date.
func (g *Grid) IsToday(d Day) bool {
	return d.Date == g.Today
}

// IsFuture reports whether d lies after the reference date.
// ISO dates compare correctly as strings.
func (g *Grid) IsFuture(d Day) bool {
	return d.Date > g.Today
}

// calendarDate drops the time of day and the location. Arithmetic runs in UTC
// so that AddDate never crosses a DST transition.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// weekStart returns the Monday on or before t.
func weekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	// Sunday (0) is the last ISO weekday
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

func englishMonthName(t time.Time) string {
	return t.Month().String()[:3]
}
