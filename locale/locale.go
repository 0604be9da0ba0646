// Package locale formats the human-readable parts of the graph: month and
// weekday labels, tooltip dates and pluralized counts.
package locale

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	Russian = "ru_RU"
	English = "en_US"

	// DefaultLocale is used when no locale is configured.
	DefaultLocale = Russian
)

const dateFormat = "2006-01-02"

// tooltip layouts per language; monday swaps in the localized names
var tooltipLayouts = map[string]string{
	"ru": "Monday, 2 January 2006",
	"en": "Monday, January 2, 2006",
}

var tooltipSuffixes = map[string]string{
	"ru": " г.",
}

const defaultTooltipLayout = "Monday, 2 January 2006"

// Formatter renders labels for one locale. The zero value is not usable;
// create one with New.
type Formatter struct {
	locale  monday.Locale
	lang    string
	printer *message.Printer
}

// New returns a formatter for a locale name such as "ru_RU" or "en_US".
func New(name string) (*Formatter, error) {
	if name == "" {
		name = DefaultLocale
	}
	loc := monday.Locale(name)
	if !slices.Contains(monday.ListLocales(), loc) {
		return nil, fmt.Errorf("unsupported locale: %s", name)
	}

	lang, _, _ := strings.Cut(name, "_")
	return &Formatter{
		locale:  loc,
		lang:    lang,
		printer: message.NewPrinter(catalogTag(lang)),
	}, nil
}

// Default returns the Russian formatter.
func Default() *Formatter {
	f, err := New(DefaultLocale)
	if err != nil {
		panic(err)
	}
	return f
}

// Locale returns the locale name.
func (f *Formatter) Locale() string {
	return string(f.locale)
}

// MonthShort returns the abbreviated month name of t.
func (f *Formatter) MonthShort(t time.Time) string {
	return monday.Format(t, "Jan", f.locale)
}

// Weekdays returns short weekday names, Monday first.
func (f *Formatter) Weekdays() [7]string {
	var names [7]string
	// 2024-01-01 is a Monday
	monday0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range names {
		names[i] = monday.Format(monday0.AddDate(0, 0, i), "Mon", f.locale)
	}
	return names
}

// TooltipLabel renders an ISO date as a long weekday/day/month/year string,
// e.g. "понедельник, 1 января 2024 г.".
func (f *Formatter) TooltipLabel(date string) (string, error) {
	t, err := time.Parse(dateFormat, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}

	layout, ok := tooltipLayouts[f.lang]
	if !ok {
		layout = defaultTooltipLayout
	}
	label := monday.Format(t, layout, f.locale) + tooltipSuffixes[f.lang]
	if f.lang == "ru" {
		// weekday and month names are lowercase in Russian running text
		label = strings.ToLower(label)
	}
	return label, nil
}

// Contributions renders "n contributions" with the locale's plural rules.
func (f *Formatter) Contributions(n int) string {
	return f.printer.Sprintf(keyContributions, n)
}

// YearTotal renders the yearly total headline.
func (f *Formatter) YearTotal(n int) string {
	return f.printer.Sprintf(keyYearTotal, n)
}

// Legend returns the labels placed before and after the legend swatches.
func (f *Formatter) Legend() (less, more string) {
	return f.printer.Sprintf(keyLess), f.printer.Sprintf(keyMore)
}

func catalogTag(lang string) language.Tag {
	switch lang {
	case "ru":
		return language.Russian
	case "en":
		return language.English
	}
	// 未翻訳の言語は英語にフォールバック
	return language.English
}
