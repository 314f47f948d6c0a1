// Package assistant dispatches classified chat messages to the ledger and the
// calendar and turns every outcome into a reply.
package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ledger-calendar-bot/assistant/calendar"
	"github.com/ledger-calendar-bot/assistant/intent"
	"github.com/ledger-calendar-bot/assistant/ledger"
	"github.com/ledger-calendar-bot/assistant/logger"
	"github.com/ledger-calendar-bot/assistant/otel"
)

// Message is an incoming chat text
type Message struct {
	ChatID int64
	Text   string
}

// Outcome labels recorded for every handled message
const (
	OutcomeOK              = "ok"
	OutcomeIgnored         = "ignored"
	OutcomeFormatMismatch  = "format_mismatch"
	OutcomeInvalidHour     = "invalid_hour"
	OutcomeNotFound        = "not_found"
	OutcomeNoData          = "no_data"
	OutcomeUpstreamFailure = "upstream_failure"
)

type handlerFunc func(ctx context.Context, text string, now time.Time, log logger.Logger) (*Reply, string)

type Assistant struct {
	ledger    ledger.Ledger
	calendar  calendar.Calendar
	logger    logger.Logger
	telemetry otel.OpenTelemetry
	loc       *time.Location
	now       func() time.Time
	handlers  map[intent.Intent]handlerFunc
}

func NewAssistant(l ledger.Ledger, c calendar.Calendar, log logger.Logger, telemetry otel.OpenTelemetry, loc *time.Location) *Assistant {
	if loc == nil {
		loc = time.UTC
	}
	if telemetry == nil {
		telemetry = &otel.OpenTelemetryImpl{}
	}

	a := &Assistant{
		ledger:    l,
		calendar:  c,
		logger:    log,
		telemetry: telemetry,
		loc:       loc,
		now:       time.Now,
	}
	a.handlers = map[intent.Intent]handlerFunc{
		intent.Finance:        a.handleFinance,
		intent.Schedule:       a.handleSchedule,
		intent.ListEvents:     a.handleListEvents,
		intent.DeleteEvent:    a.handleDeleteEvent,
		intent.RenameEvent:    a.handleRenameEvent,
		intent.MonthlySummary: a.handleMonthlySummary,
	}
	return a
}

// Handle classifies msg and runs the matching branch. A nil reply means the message
// matched no rule and must be ignored. Branch failures are reported through the
// reply text, the error is only set when ctx is already done.
func (a *Assistant) Handle(ctx context.Context, msg Message) (*Reply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := intent.Normalize(msg.Text)
	kind, ok := intent.Classify(text)
	if !ok {
		a.logger.Debug("message ignored, no rule matched", "chat_id", msg.ChatID)
		a.telemetry.RecordMessage(ctx, "none", OutcomeIgnored)
		return nil, nil
	}

	log := a.logger.With(
		"correlation_id", uuid.NewString(),
		"intent", string(kind),
		"chat_id", msg.ChatID,
	)

	handler, ok := a.handlers[kind]
	if !ok {
		log.Warn("no handler registered for intent")
		return nil, nil
	}

	reply, outcome := handler(ctx, text, a.now().In(a.loc), log)
	a.telemetry.RecordMessage(ctx, string(kind), outcome)
	log.Info("message handled", "outcome", outcome)
	return reply, nil
}

func (a *Assistant) observe(ctx context.Context, collaborator, operation string, started time.Time) {
	a.telemetry.RecordCollaboratorLatency(ctx, collaborator, operation, float64(time.Since(started).Microseconds())/1000)
}

func (a *Assistant) handleFinance(ctx context.Context, text string, now time.Time, log logger.Logger) (*Reply, string) {
	record, err := intent.ParseTransaction(text, now)
	if err != nil {
		log.Debug("transaction not recognised", "error", err.Error())
		return plain(financeFormatText), OutcomeFormatMismatch
	}

	started := time.Now()
	err = a.ledger.Append(ctx, [][]interface{}{record.Row()})
	a.observe(ctx, "ledger", "append", started)
	if err != nil {
		log.Error("failed to record transaction", err, "kind", string(record.Kind))
		return plain(financeFailureText), OutcomeUpstreamFailure
	}

	log.Debug("transaction recorded", "kind", string(record.Kind), "category", record.Category)
	return transactionRecorded(record), OutcomeOK
}

func (a *Assistant) handleSchedule(ctx context.Context, text string, now time.Time, log logger.Logger) (*Reply, string) {
	req, err := intent.ParseSchedule(text, now)
	switch {
	case errors.Is(err, intent.ErrInvalidHour):
		log.Debug("hour not recognised", "error", err.Error())
		return plain(invalidHourText), OutcomeInvalidHour
	case err != nil:
		log.Debug("schedule request not recognised", "error", err.Error())
		return plain(scheduleFormatText), OutcomeFormatMismatch
	}

	started := time.Now()
	_, err = a.calendar.CreateEvent(ctx, req)
	a.observe(ctx, "calendar", "create-event", started)
	if err != nil {
		log.Error("failed to create event", err, "title", req.Title)
		return plain(scheduleFailureText), OutcomeUpstreamFailure
	}

	return eventScheduled(req.Title, req.OccursAt), OutcomeOK
}

func (a *Assistant) handleListEvents(ctx context.Context, text string, now time.Time, log logger.Logger) (*Reply, string) {
	day := intent.ParseListDay(text, now)

	started := time.Now()
	events, err := a.calendar.ListEvents(ctx, day.Query)
	a.observe(ctx, "calendar", "list-events", started)
	if err != nil {
		log.Error("failed to list events", err, "day", day.Label)
		return plain(listFailureText), OutcomeUpstreamFailure
	}
	if len(events) == 0 {
		return noEventsFound(day.Label), OutcomeNotFound
	}

	return eventList(day.Label, events, a.loc), OutcomeOK
}

func (a *Assistant) handleDeleteEvent(ctx context.Context, text string, now time.Time, log logger.Logger) (*Reply, string) {
	title, err := intent.ParseDelete(text)
	if err != nil {
		return plain(deleteFormatText), OutcomeFormatMismatch
	}

	started := time.Now()
	events, err := a.calendar.ListEvents(ctx, calendar.EventQuery{Text: title})
	a.observe(ctx, "calendar", "list-events", started)
	if err != nil {
		log.Error("failed to look up event", err, "title", title)
		return plain(deleteFailureText), OutcomeUpstreamFailure
	}
	if len(events) == 0 {
		return deleteNotFound(title), OutcomeNotFound
	}

	target := events[0]
	started = time.Now()
	deleted := a.calendar.DeleteEvent(ctx, target.Id)
	a.observe(ctx, "calendar", "delete-event", started)
	if !deleted {
		return plain(deleteFailureText), OutcomeUpstreamFailure
	}

	log.Debug("event deleted", "event_id", target.Id, "matches", len(events))
	return eventDeleted(target.Summary), OutcomeOK
}

func (a *Assistant) handleRenameEvent(ctx context.Context, text string, now time.Time, log logger.Logger) (*Reply, string) {
	oldTitle, newTitle, err := intent.ParseRename(text)
	if err != nil {
		return plain(renameFormatText), OutcomeFormatMismatch
	}

	started := time.Now()
	events, err := a.calendar.ListEvents(ctx, calendar.EventQuery{Text: oldTitle})
	a.observe(ctx, "calendar", "list-events", started)
	if err != nil {
		log.Error("failed to look up event", err, "title", oldTitle)
		return plain(renameFailureText), OutcomeUpstreamFailure
	}
	if len(events) == 0 {
		return renameNotFound(oldTitle), OutcomeNotFound
	}

	target := events[0]
	target.Summary = newTitle

	started = time.Now()
	updated := a.calendar.UpdateEvent(ctx, target.Id, target)
	a.observe(ctx, "calendar", "update-event", started)
	if updated == nil {
		return plain(renameFailureText), OutcomeUpstreamFailure
	}

	return eventRenamed(oldTitle, newTitle), OutcomeOK
}

func (a *Assistant) handleMonthlySummary(ctx context.Context, text string, now time.Time, log logger.Logger) (*Reply, string) {
	started := time.Now()
	rows, err := a.ledger.ListRows(ctx)
	a.observe(ctx, "ledger", "list-rows", started)
	if err != nil {
		log.Error("failed to read ledger rows", err)
		return plain(summaryFailureText), OutcomeUpstreamFailure
	}
	if len(rows) == 0 {
		return plain(summaryEmptyText), OutcomeNoData
	}

	summary := ledger.Summarize(rows, now)
	log.Debug("monthly summary computed", "rows", len(rows), "counted", summary.Counted)
	return monthlySummary(summary), OutcomeOK
}
