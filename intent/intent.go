// Package intent classifies chat messages and extracts the parameters of each
// supported request. Every function works on text already passed through Normalize.
package intent

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Intent names the branch a message is dispatched to
type Intent string

const (
	Finance        Intent = "finance"
	Schedule       Intent = "schedule"
	ListEvents     Intent = "list-events"
	DeleteEvent    Intent = "delete-event"
	RenameEvent    Intent = "rename-event"
	MonthlySummary Intent = "monthly-summary"
)

var (
	// ErrFormatMismatch is returned when a keyword matched but the phrasing did not
	ErrFormatMismatch = errors.New("message does not match the expected format")
	// ErrInvalidHour is returned when the requested hour cannot be placed on a clock
	ErrInvalidHour = errors.New("invalid hour")
)

// Rule pairs an intent with the keyword predicate that selects it
type Rule struct {
	Intent  Intent
	Matches func(text string) bool
}

var rules = []Rule{
	{Intent: Finance, Matches: containsAny("gasto", "ganhei")},
	{Intent: Schedule, Matches: containsAny("agendar")},
	{Intent: ListEvents, Matches: containsAny("eventos")},
	{Intent: DeleteEvent, Matches: containsAny("excluir evento")},
	{Intent: RenameEvent, Matches: containsAny("mudar nome do evento")},
	{Intent: MonthlySummary, Matches: containsAny("total do mes", "gastos do mes")},
}

// Rules returns the ordered rule cascade. Earlier rules win.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Classify returns the intent of the first rule matching text. The second result is
// false when no rule matches and the message should be ignored.
func Classify(text string) (Intent, bool) {
	for _, rule := range rules {
		if rule.Matches(text) {
			return rule.Intent, true
		}
	}
	return "", false
}

// Normalize lowercases a raw message
func Normalize(text string) string {
	return cases.Lower(language.BrazilianPortuguese).String(text)
}

func containsAny(keywords ...string) func(string) bool {
	return func(text string) bool {
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				return true
			}
		}
		return false
	}
}

// capitalize upper-cases the first letter of word and lower-cases the rest
func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return cases.Upper(language.BrazilianPortuguese).String(word[:size]) +
		cases.Lower(language.BrazilianPortuguese).String(word[size:])
}
