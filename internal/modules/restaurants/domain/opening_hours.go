package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	StatusTextOpen              = "Open"
	StatusTextClosed            = "Closed"
	StatusTextTemporarilyClosed = "Temporarily Closed"
	tomorrowLabel               = "Tomorrow"
)

var intervalPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})-(\d{1,2}):(\d{2})$`)

// WeeklySchedule maps each day to an interval string "HH:MM-HH:MM". A missing or blank entry
// means closed that day.
type WeeklySchedule map[DayOfWeek]string

// For returns the raw interval string configured for day.
func (s WeeklySchedule) For(day DayOfWeek) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s[day])
}

// Interval is a daily opening window in minutes since midnight. Close <= Open denotes a span
// that runs past midnight.
type Interval struct {
	Open  int
	Close int
}

// ParseInterval parses "HH:MM-HH:MM". Blank or malformed input yields false.
func ParseInterval(raw string) (Interval, bool) {
	match := intervalPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return Interval{}, false
	}
	openH, _ := strconv.Atoi(match[1])
	openM, _ := strconv.Atoi(match[2])
	closeH, _ := strconv.Atoi(match[3])
	closeM, _ := strconv.Atoi(match[4])
	return Interval{Open: openH*60 + openM, Close: closeH*60 + closeM}, true
}

// Overnight reports whether the window crosses midnight.
func (i Interval) Overnight() bool {
	return i.Close <= i.Open
}

// Contains reports whether minute (since midnight) falls inside the window. Open is inclusive,
// close exclusive.
func (i Interval) Contains(minute int) bool {
	if i.Overnight() {
		return minute >= i.Open || minute < i.Close
	}
	return minute >= i.Open && minute < i.Close
}

// OpensAt formats the opening time as HH:MM.
func (i Interval) OpensAt() string {
	return fmt.Sprintf("%02d:%02d", i.Open/60, i.Open%60)
}

// OpenStatus is the label shown next to a restaurant.
type OpenStatus struct {
	Text   string `json:"text"`
	IsOpen bool   `json:"isOpen"`
}

// IsOpenNow decides whether a restaurant is open at now. The manual override wins; otherwise
// today's interval is consulted and anything missing or malformed counts as closed.
func IsOpenNow(override bool, hours WeeklySchedule, now time.Time) bool {
	if !override {
		return false
	}
	interval, ok := ParseInterval(hours.For(DayFromWeekday(now.Weekday())))
	if !ok {
		return false
	}
	return interval.Contains(now.Hour()*60 + now.Minute())
}

// ResolveStatus produces the status label for a restaurant at now.
//
// When today's interval is present but malformed, resolution falls through to the forward scan
// rather than reporting today as closed.
func ResolveStatus(override bool, hours WeeklySchedule, now time.Time) OpenStatus {
	if !override {
		return OpenStatus{Text: StatusTextTemporarilyClosed}
	}
	if IsOpenNow(override, hours, now) {
		return OpenStatus{Text: StatusTextOpen, IsOpen: true}
	}

	if today, ok := ParseInterval(hours.For(DayFromWeekday(now.Weekday()))); ok {
		return OpenStatus{Text: "Opens at " + today.OpensAt()}
	}

	for offset := 1; offset <= 7; offset++ {
		day := DayFromWeekday(now.Weekday() + time.Weekday(offset))
		raw := hours.For(day)
		if raw == "" {
			continue
		}
		interval, ok := ParseInterval(raw)
		if !ok {
			continue
		}
		label := day.Title()
		if offset == 1 {
			label = tomorrowLabel
		}
		return OpenStatus{Text: fmt.Sprintf("Opens %s %s", label, interval.OpensAt())}
	}

	return OpenStatus{Text: StatusTextClosed}
}
