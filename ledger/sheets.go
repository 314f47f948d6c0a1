package ledger

import (
	"context"
	"fmt"

	"github.com/ledger-calendar-bot/assistant/logger"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	// appendRange lets the API find the first empty row after the table
	appendRange = "A1"
	// rawInput stores values as typed, without spreadsheet parsing
	rawInput = "RAW"
)

// SheetsLedger stores ledger rows in a Google Sheets spreadsheet
type SheetsLedger struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string
	logger        logger.Logger
}

// NewSheetsLedger creates a ledger backed by the given spreadsheet
func NewSheetsLedger(ctx context.Context, spreadsheetID, readRange string, log logger.Logger, opts ...option.ClientOption) (*SheetsLedger, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return &SheetsLedger{
		service:       svc,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		logger:        log,
	}, nil
}

func (s *SheetsLedger) Append(ctx context.Context, rows [][]interface{}) error {
	s.logger.Debug("appending ledger rows",
		"component", "sheets-ledger",
		"operation", "append",
		"spreadsheetID", s.spreadsheetID,
		"rowCount", len(rows))

	body := &sheets.ValueRange{Values: rows}
	resp, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, appendRange, body).
		ValueInputOption(rawInput).
		Context(ctx).
		Do()
	if err != nil {
		s.logger.Error("failed to append rows to google sheets api", err,
			"component", "sheets-ledger",
			"operation", "append",
			"spreadsheetID", s.spreadsheetID)
		return fmt.Errorf("unable to append rows: %w", err)
	}

	var updated int64
	if resp.Updates != nil {
		updated = resp.Updates.UpdatedRows
	}
	s.logger.Info("successfully appended ledger rows",
		"component", "sheets-ledger",
		"operation", "append",
		"spreadsheetID", s.spreadsheetID,
		"updatedRows", updated)

	return nil
}

func (s *SheetsLedger) ListRows(ctx context.Context) ([][]string, error) {
	s.logger.Debug("listing ledger rows",
		"component", "sheets-ledger",
		"operation", "list-rows",
		"spreadsheetID", s.spreadsheetID,
		"range", s.readRange)

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).
		Context(ctx).
		Do()
	if err != nil {
		s.logger.Error("failed to read rows from google sheets api", err,
			"component", "sheets-ledger",
			"operation", "list-rows",
			"spreadsheetID", s.spreadsheetID)
		return nil, fmt.Errorf("unable to read rows: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make([]string, len(values))
		for i, cell := range values {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}

	s.logger.Info("successfully read ledger rows",
		"component", "sheets-ledger",
		"operation", "list-rows",
		"spreadsheetID", s.spreadsheetID,
		"rowCount", len(rows))

	return rows, nil
}
