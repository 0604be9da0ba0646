package locale

import (
	"strings"
	"testing"
	"time"
)

func TestNew_UnsupportedLocale(t *testing.T) {
	if _, err := New("xx_YY"); err == nil {
		t.Error("Expected error for unsupported locale")
	}

	f, err := New("")
	if err != nil {
		t.Fatalf("New with empty name failed: %v", err)
	}
	if f.Locale() != Russian {
		t.Errorf("Expected default locale %s, got %s", Russian, f.Locale())
	}
}

func TestTooltipLabel_Russian(t *testing.T) {
	f := Default()

	label, err := f.TooltipLabel("2024-01-01")
	if err != nil {
		t.Fatalf("TooltipLabel failed: %v", err)
	}

	for _, part := range []string{"понедельник", "1", "январ", "2024 г."} {
		if !strings.Contains(label, part) {
			t.Errorf("Expected %q in label %q", part, label)
		}
	}

	// 同じ入力には常に同じ出力
	for i := 0; i < 3; i++ {
		again, _ := f.TooltipLabel("2024-01-01")
		if again != label {
			t.Errorf("Expected deterministic output, got %q and %q", label, again)
		}
	}
}

func TestTooltipLabel_English(t *testing.T) {
	f, err := New(English)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	label, err := f.TooltipLabel("2024-01-01")
	if err != nil {
		t.Fatalf("TooltipLabel failed: %v", err)
	}
	if label != "Monday, January 1, 2024" {
		t.Errorf("Unexpected label: %q", label)
	}
}

func TestTooltipLabel_InvalidDate(t *testing.T) {
	if _, err := Default().TooltipLabel("2024-13-01"); err == nil {
		t.Error("Expected error for invalid date")
	}
}

func TestWeekdays(t *testing.T) {
	en, _ := New(English)
	want := [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if got := en.Weekdays(); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}

	for i, name := range Default().Weekdays() {
		if name == "" || name == want[i] {
			t.Errorf("Expected a Russian name for weekday %d, got %q", i, name)
		}
	}
}

func TestMonthShort(t *testing.T) {
	en, _ := New(English)
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := en.MonthShort(jan); got != "Jan" {
		t.Errorf("Expected Jan, got %q", got)
	}
	if got := Default().MonthShort(jan); got == "" || got == "Jan" {
		t.Errorf("Expected a Russian month name, got %q", got)
	}
}

func TestContributions_Plural(t *testing.T) {
	ru := Default()
	tests := []struct {
		n    int
		want string
	}{
		{1, "1 вклад"},
		{2, "2 вклада"},
		{5, "5 вкладов"},
		{11, "11 вкладов"},
		{21, "21 вклад"},
		{0, "0 вкладов"},
	}
	for _, tt := range tests {
		if got := ru.Contributions(tt.n); got != tt.want {
			t.Errorf("Contributions(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}

	en, _ := New(English)
	if got := en.Contributions(1); got != "1 contribution" {
		t.Errorf("Unexpected English singular: %q", got)
	}
	if got := en.YearTotal(15); got != "15 contributions in the last year" {
		t.Errorf("Unexpected English total: %q", got)
	}
}

func TestLegend(t *testing.T) {
	less, more := Default().Legend()
	if less != "Меньше" || more != "Больше" {
		t.Errorf("Unexpected Russian legend: %q %q", less, more)
	}

	en, _ := New(English)
	less, more = en.Legend()
	if less != "Less" || more != "More" {
		t.Errorf("Unexpected English legend: %q %q", less, more)
	}
}
