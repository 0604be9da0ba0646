// Package view holds the mutable state of a contribution graph widget:
// the fetched contributions, the selected day, and the widget lifecycle.
package view

import (
	"context"
	"log"
	"maps"
	"sync"

	"github.com/stsysd/kusa/activity"
)

// Source delivers the contributions map. Implementations should honor ctx.
type Source interface {
	Fetch(ctx context.Context) (activity.Contributions, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (activity.Contributions, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context) (activity.Contributions, error) {
	return f(ctx)
}

// Selection is the highlighted day shown in the tooltip.
type Selection struct {
	Contributions int    `json:"contributions"`
	Date          string `json:"date"`
}

// State owns the contributions map and the selection.
// It is safe for concurrent use.
type State struct {
	mu            sync.RWMutex
	contributions activity.Contributions
	loaded        bool
	selection     *Selection
}

// NewState returns an empty state: no data, nothing selected.
func NewState() *State {
	return &State{}
}

// FetchContributions performs one fetch from src. On failure the error is
// logged and the map stays unset, so every day counts as zero. A result that
// arrives after ctx is done is discarded.
func (s *State) FetchContributions(ctx context.Context, src Source) {
	c, err := src.Fetch(ctx)
	if err != nil {
		log.Printf("Error fetching contributions: %v", err)
		return
	}
	if err := ctx.Err(); err != nil {
		log.Printf("Discarding contributions fetched after cancellation: %v", err)
		return
	}
	s.SetContributions(c)
}

// SetContributions replaces the contributions map.
func (s *State) SetContributions(c activity.Contributions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contributions = maps.Clone(c)
	s.loaded = true
}

// Contributions returns a copy of the contributions map (nil before a
// successful fetch).
func (s *State) Contributions() activity.Contributions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.contributions)
}

// Loaded reports whether a fetch has succeeded.
func (s *State) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Count returns the count for date, zero when unknown.
func (s *State) Count(date string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contributions.Count(date)
}

// Level classifies the count for date.
func (s *State) Level(date string) activity.Level {
	return activity.Classify(s.Count(date))
}

// SelectDay highlights date, taking its count from the contributions map.
func (s *State) SelectDay(date string) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := Selection{
		Contributions: s.contributions.Count(date),
		Date:          date,
	}
	s.selection = &sel
	return sel
}

// ClearSelection removes the highlight.
func (s *State) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nil
}

// Selection returns the highlighted day, if any.
func (s *State) Selection() (Selection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selection == nil {
		return Selection{}, false
	}
	return *s.selection, true
}
