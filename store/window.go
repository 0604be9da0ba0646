package store

import (
	"context"

	"github.com/stsysd/kusa/activity"
)

// Window reads the daily totals of a fixed date range as a contributions
// source for the graph.
type Window struct {
	Store RecordStore
	From  string
	To    string
}

// Fetch implements view.Source.
func (w Window) Fetch(ctx context.Context) (activity.Contributions, error) {
	return w.Store.DailyCounts(ctx, w.From, w.To)
}
