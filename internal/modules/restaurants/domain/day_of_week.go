package domain

import (
	"strings"
	"time"
)

// DayOfWeek encapsulates the allowed opening days using uppercase english names.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// weekdays is indexed by time.Weekday (0=Sunday..6=Saturday).
var weekdays = [7]DayOfWeek{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var allowedDays = map[string]DayOfWeek{
	string(Monday):    Monday,
	string(Tuesday):   Tuesday,
	string(Wednesday): Wednesday,
	string(Thursday):  Thursday,
	string(Friday):    Friday,
	string(Saturday):  Saturday,
	string(Sunday):    Sunday,
}

// DayFromWeekday maps a time.Weekday onto the schedule key for that day.
func DayFromWeekday(w time.Weekday) DayOfWeek {
	return weekdays[((int(w)%7)+7)%7]
}

// NormalizeDay accepts any casing of an english weekday name. It returns "" for anything else.
func NormalizeDay(raw string) DayOfWeek {
	return allowedDays[strings.ToUpper(strings.TrimSpace(raw))]
}

// Title returns the display name, e.g. "Wednesday".
func (d DayOfWeek) Title() string {
	s := string(d)
	if s == "" {
		return ""
	}
	return s[:1] + strings.ToLower(s[1:])
}

// WireKey returns the lowercase key used by the REST payloads.
func (d DayOfWeek) WireKey() string {
	return strings.ToLower(string(d))
}
