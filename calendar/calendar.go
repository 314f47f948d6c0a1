package calendar

import (
	"context"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// Event is the calendar API's event resource; fields other than the ones the
// assistant edits are passed back to the API untouched.
type Event = gcal.Event

// DefaultDurationHint is the duration hint attached to scheduled events
const DefaultDurationHint = "1h"

// EventRequest describes an event to be created
type EventRequest struct {
	Title        string
	OccursAt     time.Time
	DurationHint string
}

// EventQuery selects existing events by title text, by time window, or both.
// Zero values leave the corresponding filter unset.
type EventQuery struct {
	Text        string
	WindowStart time.Time
	WindowEnd   time.Time
}

// Calendar is the calendar collaborator. Update and delete failures are reported
// through a nil event and false respectively, the underlying error is logged by
// the implementation.
//
//go:generate mockgen -source=calendar.go -destination=../tests/mocks/calendar.go -package=mocks
type Calendar interface {
	CreateEvent(ctx context.Context, req EventRequest) (*Event, error)
	ListEvents(ctx context.Context, query EventQuery) ([]*Event, error)
	UpdateEvent(ctx context.Context, eventID string, event *Event) *Event
	DeleteEvent(ctx context.Context, eventID string) bool
}

// StartTime returns the event start, for timed and all-day events alike
func StartTime(event *Event, loc *time.Location) (t time.Time, allDay bool, ok bool) {
	if event == nil || event.Start == nil {
		return time.Time{}, false, false
	}
	if event.Start.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, event.Start.DateTime)
		if err != nil {
			return time.Time{}, false, false
		}
		return parsed.In(loc), false, true
	}
	if event.Start.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", event.Start.Date, loc)
		if err != nil {
			return time.Time{}, false, false
		}
		return parsed, true, true
	}
	return time.Time{}, false, false
}

// ParseDuration converts a duration hint such as "1h" or "30m", falling back to one hour
func ParseDuration(hint string) time.Duration {
	d, err := time.ParseDuration(hint)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}
