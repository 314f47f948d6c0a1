package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/ledger-calendar-bot/assistant/logger"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// maxListResults caps every events lookup
const maxListResults = 10

// GoogleCalendar talks to the Google Calendar API
type GoogleCalendar struct {
	service    *gcal.Service
	calendarID string
	location   *time.Location
	logger     logger.Logger
}

// NewGoogleCalendar creates a calendar collaborator for calendarID. New events are
// written in loc.
func NewGoogleCalendar(ctx context.Context, calendarID string, loc *time.Location, log logger.Logger, opts ...option.ClientOption) (*GoogleCalendar, error) {
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %w", err)
	}
	return &GoogleCalendar{
		service:    svc,
		calendarID: calendarID,
		location:   loc,
		logger:     log,
	}, nil
}

func (g *GoogleCalendar) CreateEvent(ctx context.Context, req EventRequest) (*Event, error) {
	start := req.OccursAt.In(g.location)
	end := start.Add(ParseDuration(req.DurationHint))

	g.logger.Debug("creating event",
		"component", "calendar-service",
		"operation", "create-event",
		"calendarID", g.calendarID,
		"eventSummary", req.Title,
		"eventStart", start.Format(time.RFC3339))

	event := &gcal.Event{
		Summary: req.Title,
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: g.location.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: g.location.String(),
		},
	}

	created, err := g.service.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		g.logger.Error("failed to create event in google calendar api", err,
			"component", "calendar-service",
			"operation", "create-event",
			"calendarID", g.calendarID,
			"eventSummary", req.Title)
		return nil, fmt.Errorf("unable to create event: %w", err)
	}

	g.logger.Info("successfully created event",
		"component", "calendar-service",
		"operation", "create-event",
		"calendarID", g.calendarID,
		"eventID", created.Id,
		"eventSummary", created.Summary)

	return created, nil
}

func (g *GoogleCalendar) ListEvents(ctx context.Context, query EventQuery) ([]*Event, error) {
	g.logger.Debug("listing events",
		"component", "calendar-service",
		"operation", "list-events",
		"calendarID", g.calendarID,
		"query", query.Text,
		"timeMin", query.WindowStart,
		"timeMax", query.WindowEnd)

	call := g.service.Events.List(g.calendarID).
		MaxResults(maxListResults).
		SingleEvents(true).
		OrderBy("startTime")
	if query.Text != "" {
		call = call.Q(query.Text)
	}
	if !query.WindowStart.IsZero() {
		call = call.TimeMin(query.WindowStart.Format(time.RFC3339))
	}
	if !query.WindowEnd.IsZero() {
		call = call.TimeMax(query.WindowEnd.Format(time.RFC3339))
	}

	events, err := call.Context(ctx).Do()
	if err != nil {
		g.logger.Error("failed to retrieve events from google calendar api", err,
			"component", "calendar-service",
			"operation", "list-events",
			"calendarID", g.calendarID)
		return nil, fmt.Errorf("unable to retrieve events: %w", err)
	}

	g.logger.Info("successfully retrieved events",
		"component", "calendar-service",
		"operation", "list-events",
		"calendarID", g.calendarID,
		"eventCount", len(events.Items))

	return events.Items, nil
}

func (g *GoogleCalendar) UpdateEvent(ctx context.Context, eventID string, event *Event) *Event {
	g.logger.Debug("updating event",
		"component", "calendar-service",
		"operation", "update-event",
		"calendarID", g.calendarID,
		"eventID", eventID,
		"eventSummary", event.Summary)

	updated, err := g.service.Events.Update(g.calendarID, eventID, event).Context(ctx).Do()
	if err != nil {
		g.logger.Error("failed to update event in google calendar api", err,
			"component", "calendar-service",
			"operation", "update-event",
			"calendarID", g.calendarID,
			"eventID", eventID)
		return nil
	}

	g.logger.Info("successfully updated event",
		"component", "calendar-service",
		"operation", "update-event",
		"calendarID", g.calendarID,
		"eventID", eventID,
		"eventSummary", updated.Summary)

	return updated
}

func (g *GoogleCalendar) DeleteEvent(ctx context.Context, eventID string) bool {
	g.logger.Debug("deleting event",
		"component", "calendar-service",
		"operation", "delete-event",
		"calendarID", g.calendarID,
		"eventID", eventID)

	if err := g.service.Events.Delete(g.calendarID, eventID).Context(ctx).Do(); err != nil {
		g.logger.Error("failed to delete event from google calendar api", err,
			"component", "calendar-service",
			"operation", "delete-event",
			"calendarID", g.calendarID,
			"eventID", eventID)
		return false
	}

	g.logger.Info("successfully deleted event",
		"component", "calendar-service",
		"operation", "delete-event",
		"calendarID", g.calendarID,
		"eventID", eventID)

	return true
}
