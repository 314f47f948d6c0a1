package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionRecord_Row(t *testing.T) {
	record := TransactionRecord{
		Timestamp:   time.Date(2025, time.September, 26, 8, 5, 9, 0, time.UTC),
		Description: "de padaria",
		Amount:      decimal.NewFromInt(15),
		Kind:        KindExpense,
		Category:    "Coxinha",
	}

	assert.Equal(t, []interface{}{"26/09/2025 08:05:09", "de padaria", 15.0, "Despesa", "Coxinha"}, record.Row())
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, time.September, 26, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rows    [][]string
		expense string
		income  string
		balance string
		counted int
	}{
		{
			name:    "No rows",
			rows:    nil,
			expense: "0",
			income:  "0",
			balance: "0",
		},
		{
			name: "Only current month rows are counted",
			rows: [][]string{
				{"01/09/2025 10:00:00", "", "15", "Despesa", "Coxinha"},
				{"20/09/2025 18:30:00", "bico", "100", "Receita", "De"},
				{"31/08/2025 23:59:59", "", "40", "Despesa", "Mercado"},
			},
			expense: "15",
			income:  "100",
			balance: "85",
			counted: 2,
		},
		{
			name: "Non-numeric amount is skipped without aborting",
			rows: [][]string{
				{"02/09/2025 09:00:00", "", "abc", "Despesa", "Lanche"},
				{"03/09/2025 09:00:00", "", "12.5", "Despesa", "Lanche"},
			},
			expense: "12.5",
			income:  "0",
			balance: "-12.5",
			counted: 1,
		},
		{
			name: "Unparseable date and short rows are skipped",
			rows: [][]string{
				{"ontem", "", "10", "Despesa", "Uber"},
				{"04/09/2025 09:00:00", ""},
				{},
				{"05/09/2025 09:00:00", "", "7", "Receita", "Venda"},
			},
			expense: "0",
			income:  "7",
			balance: "7",
			counted: 1,
		},
		{
			name: "Unknown kind is ignored",
			rows: [][]string{
				{"05/09/2025 09:00:00", "", "7", "Transferencia", "Banco"},
			},
			expense: "0",
			income:  "0",
			balance: "0",
		},
		{
			name: "Same month of another year is counted",
			rows: [][]string{
				{"10/09/2024 09:00:00", "", "3", "Despesa", "Cafe"},
			},
			expense: "3",
			income:  "0",
			balance: "-3",
			counted: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Summarize(tt.rows, now)

			assert.True(t, decimal.RequireFromString(tt.expense).Equal(summary.TotalExpense), "expense %s", summary.TotalExpense)
			assert.True(t, decimal.RequireFromString(tt.income).Equal(summary.TotalIncome), "income %s", summary.TotalIncome)
			assert.True(t, decimal.RequireFromString(tt.balance).Equal(summary.Balance), "balance %s", summary.Balance)
			assert.Equal(t, tt.counted, summary.Counted)
		})
	}
}
