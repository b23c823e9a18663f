package domain

import (
	"testing"
	"time"
)

func TestNormalizeDay(t *testing.T) {
	cases := map[string]DayOfWeek{
		"monday":     Monday,
		"  Tuesday":  Tuesday,
		"SATURDAY":   Saturday,
		"holiday":    "",
		"":           "",
		"wed":        "",
		"sunday    ": Sunday,
	}

	for input, expected := range cases {
		if got := NormalizeDay(input); got != expected {
			t.Fatalf("NormalizeDay(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestDayFromWeekday(t *testing.T) {
	if got := DayFromWeekday(time.Sunday); got != Sunday {
		t.Fatalf("expected SUNDAY, got %s", got)
	}
	if got := DayFromWeekday(time.Saturday); got != Saturday {
		t.Fatalf("expected SATURDAY, got %s", got)
	}
	if got := DayFromWeekday(time.Saturday + 2); got != Monday {
		t.Fatalf("expected wrap to MONDAY, got %s", got)
	}
}

func TestDayOfWeekLabels(t *testing.T) {
	if got := Wednesday.Title(); got != "Wednesday" {
		t.Fatalf("unexpected title: %s", got)
	}
	if got := Wednesday.WireKey(); got != "wednesday" {
		t.Fatalf("unexpected wire key: %s", got)
	}
}
