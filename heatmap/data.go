package heatmap

import (
	"github.com/stsysd/kusa/activity"
)

// DefaultColors holds one CSS color per activity level, least to most.
var DefaultColors = []string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}

// Labeler provides the localized text of the graph.
type Labeler interface {
	Weekdays() [7]string
	TooltipLabel(date string) (string, error)
	Contributions(n int) string
	Legend() (less, more string)
}

// Options configures rendering parameters.
type Options struct {
	CellSize    int      // size of each day cell (px)
	CellPadding int      // padding between cells (px)
	Colors      []string // CSS colors for levels none..very-high
	FontSize    int      // font size for labels (px)
	FontFamily  string   // font family for labels
	Title       string   // optional headline above the graph
	Selected    string   // ISO date of the day whose tooltip is shown
	Labels      Labeler  // localized labels; nil means the default locale
}

func defaultOptions() *Options {
	return &Options{
		CellSize:    12,
		CellPadding: 2,
		FontSize:    10,
		FontFamily:  "sans-serif",
		Colors:      DefaultColors,
	}
}

// normalize fills zero fields with defaults without modifying the caller's copy.
func (o *Options) normalize(labels func() Labeler) *Options {
	def := defaultOptions()
	if o == nil {
		def.Labels = labels()
		return def
	}
	n := *o
	if n.CellSize <= 0 {
		n.CellSize = def.CellSize
	}
	if n.CellPadding < 0 {
		n.CellPadding = def.CellPadding
	}
	if n.FontSize <= 0 {
		n.FontSize = def.FontSize
	}
	if n.FontFamily == "" {
		n.FontFamily = def.FontFamily
	}
	if len(n.Colors) != activity.NumLevels {
		n.Colors = def.Colors
	}
	if n.Labels == nil {
		n.Labels = labels()
	}
	return &n
}
