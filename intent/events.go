package intent

import (
	"regexp"
	"strings"
	"time"

	"github.com/ledger-calendar-bot/assistant/calendar"
)

var (
	deletePattern = regexp.MustCompile(`excluir evento (.+)`)
	renamePattern = regexp.MustCompile(`mudar nome do evento (.+) para (.+)`)
)

// ListDay is the day selected by an events listing request
type ListDay struct {
	Label string
	Query calendar.EventQuery
}

// ParseListDay selects today, or tomorrow when text contains the unaccented "amanha".
// The accented "amanhã" does not match and lists today.
func ParseListDay(text string, now time.Time) ListDay {
	day := now
	label := "hoje"
	if strings.Contains(text, "amanha") {
		day = day.AddDate(0, 0, 1)
		label = "amanhã"
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
	return ListDay{
		Label: label,
		Query: calendar.EventQuery{
			WindowStart: start,
			WindowEnd:   start.AddDate(0, 0, 1).Add(-time.Nanosecond),
		},
	}
}

// ParseDelete extracts the title of the event to delete
func ParseDelete(text string) (string, error) {
	match := deletePattern.FindStringSubmatch(text)
	if match == nil {
		return "", ErrFormatMismatch
	}
	title := strings.TrimSpace(match[1])
	if title == "" {
		return "", ErrFormatMismatch
	}
	return title, nil
}

// ParseRename extracts the current and the new title of an event. The last " para "
// separates the two titles.
func ParseRename(text string) (oldTitle, newTitle string, err error) {
	match := renamePattern.FindStringSubmatch(text)
	if match == nil {
		return "", "", ErrFormatMismatch
	}
	oldTitle = strings.TrimSpace(match[1])
	newTitle = strings.TrimSpace(match[2])
	if oldTitle == "" || newTitle == "" {
		return "", "", ErrFormatMismatch
	}
	return oldTitle, newTitle, nil
}
