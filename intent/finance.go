package intent

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ledger-calendar-bot/assistant/ledger"
	"github.com/shopspring/decimal"
)

// "<gasto|ganhei> <integer> reais <free text>"
var transactionPattern = regexp.MustCompile(`(gasto|ganhei)\s(\d+)\sreais\s(.+)`)

// ParseTransaction extracts an expense or income from text. The first word of the
// free text becomes the category, the remaining words the description.
func ParseTransaction(text string, now time.Time) (ledger.TransactionRecord, error) {
	match := transactionPattern.FindStringSubmatch(text)
	if match == nil {
		return ledger.TransactionRecord{}, ErrFormatMismatch
	}

	amount, err := decimal.NewFromString(match[2])
	if err != nil {
		return ledger.TransactionRecord{}, fmt.Errorf("%w: amount %q", ErrFormatMismatch, match[2])
	}

	words := strings.Fields(match[3])
	if len(words) == 0 {
		return ledger.TransactionRecord{}, fmt.Errorf("%w: missing category", ErrFormatMismatch)
	}

	kind := ledger.KindIncome
	if match[1] == "gasto" {
		kind = ledger.KindExpense
	}

	return ledger.TransactionRecord{
		Timestamp:   now,
		Description: strings.Join(words[1:], " "),
		Amount:      amount,
		Kind:        kind,
		Category:    capitalize(words[0]),
	}, nil
}
