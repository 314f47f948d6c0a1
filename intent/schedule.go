package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ledger-calendar-bot/assistant/calendar"
)

// "agendar <title> [hoje|amanhã] às <hour>h"
var schedulePattern = regexp.MustCompile(`agendar\s(.+?)\s(?:(hoje|amanh[aã])\s)?(?:às|as)\s(\d{1,2})h?`)

// ParseSchedule extracts an event request from text. The event is placed on the day
// of now, or the next day when the accented "amanhã" is given, at the hour resolved
// by ResolveHour, in now's location.
func ParseSchedule(text string, now time.Time) (calendar.EventRequest, error) {
	match := schedulePattern.FindStringSubmatch(text)
	if match == nil {
		return calendar.EventRequest{}, ErrFormatMismatch
	}

	title := strings.TrimSpace(match[1])
	day := match[2]

	hour, err := strconv.Atoi(match[3])
	if err != nil {
		return calendar.EventRequest{}, fmt.Errorf("%w: %q", ErrInvalidHour, match[3])
	}
	hour = ResolveHour(hour, now.Hour())
	if hour > 23 {
		return calendar.EventRequest{}, fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}

	date := now
	if strings.Contains(day, "amanhã") {
		date = date.AddDate(0, 0, 1)
	}

	return calendar.EventRequest{
		Title:        title,
		OccursAt:     time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, now.Location()),
		DurationHint: calendar.DefaultDurationHint,
	}, nil
}

// ResolveHour maps a 12-hour style hour to the 24-hour clock. Hours 1 to 11 are read
// as afternoon when it is already past noon or the hour has already gone by today.
// Every other hour is returned as given.
func ResolveHour(hour, currentHour int) int {
	if hour >= 1 && hour <= 11 && (currentHour >= 12 || hour < currentHour) {
		return hour + 12
	}
	return hour
}
