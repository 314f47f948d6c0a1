package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the stored classification of a transaction row
type Kind string

const (
	KindExpense Kind = "Despesa"
	KindIncome  Kind = "Receita"
)

// TimestampLayout is the layout of the first column of every ledger row
const TimestampLayout = "02/01/2006 15:04:05"

// TransactionRecord is one expense or income parsed from a chat message
type TransactionRecord struct {
	Timestamp   time.Time
	Description string
	Amount      decimal.Decimal
	Kind        Kind
	Category    string
}

// Row returns the record in column order: timestamp, description, amount, kind, category
func (r TransactionRecord) Row() []interface{} {
	return []interface{}{
		r.Timestamp.Format(TimestampLayout),
		r.Description,
		r.Amount.InexactFloat64(),
		string(r.Kind),
		r.Category,
	}
}

// Ledger is the append-only spreadsheet store of transaction rows.
//
//go:generate mockgen -source=ledger.go -destination=../tests/mocks/ledger.go -package=mocks
type Ledger interface {
	Append(ctx context.Context, rows [][]interface{}) error
	ListRows(ctx context.Context) ([][]string, error)
}

// MonthlySummary totals the current month's rows
type MonthlySummary struct {
	TotalExpense decimal.Decimal
	TotalIncome  decimal.Decimal
	Balance      decimal.Decimal
	Counted      int
}

// Summarize scans every row and totals the ones stamped in the same month as now.
// Rows that are too short, carry an unparseable timestamp or a non-numeric amount
// are skipped. Only the month number is compared, the year is not.
func Summarize(rows [][]string, now time.Time) MonthlySummary {
	summary := MonthlySummary{
		TotalExpense: decimal.Zero,
		TotalIncome:  decimal.Zero,
	}

	for _, row := range rows {
		if len(row) < 4 {
			continue
		}

		stamped, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(row[0]), now.Location())
		if err != nil {
			continue
		}
		if stamped.Month() != now.Month() {
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(row[2]))
		if err != nil {
			continue
		}

		switch Kind(row[3]) {
		case KindExpense:
			summary.TotalExpense = summary.TotalExpense.Add(amount)
			summary.Counted++
		case KindIncome:
			summary.TotalIncome = summary.TotalIncome.Add(amount)
			summary.Counted++
		}
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary
}
