// internal/workers/booking/calculate-refund/pickuptime.go
package calculaterefund

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timeOfDayPattern matches "9:00 AM" style fragments inside free text.
var timeOfDayPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(AM|PM|am|pm)`)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParsePickupTime resolves the upstream pickup-time field, which arrives
// either as a timestamp or as a free-text phrase like
// "Tomorrow, 9:00 AM - 10:00 AM" or "Monday, 2:30 PM". Best-effort
// adapter over a free-text field, not a general date parser: unknown
// fragments fall back silently (9:00 AM, today) instead of failing.
func ParsePickupTime(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultPickup(now)
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	hour, minute := 9, 0
	if m := timeOfDayPattern.FindStringSubmatch(raw); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		meridiem := strings.ToUpper(m[3])
		if meridiem == "PM" && hour != 12 {
			hour += 12
		}
		if meridiem == "AM" && hour == 12 {
			hour = 0
		}
	}

	lower := strings.ToLower(raw)
	day := now
	switch {
	case strings.Contains(lower, "today"):
		// keep today
	case strings.Contains(lower, "tomorrow"):
		day = now.AddDate(0, 0, 1)
	default:
		if wd, ok := findWeekday(lower); ok {
			day = nextWeekday(now, wd)
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
}

func defaultPickup(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
}

func findWeekday(lower string) (time.Weekday, bool) {
	for name, wd := range weekdayNames {
		if strings.Contains(lower, name) {
			return wd, true
		}
	}
	return time.Sunday, false
}

// nextWeekday returns the next occurrence of wd strictly after today:
// a phrase naming today's weekday means next week, never a past slot.
func nextWeekday(now time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days)
}
