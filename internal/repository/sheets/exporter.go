package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/supermarket/internal/config"
	"github.com/mamadbah2/supermarket/internal/domain/models"
)

// SalesRange is the sheet range the ledger is mirrored into.
const SalesRange = "Sales!A:F"

// Exporter mirrors sales ledger entries into a spreadsheet for the manager.
// The spreadsheet is a copy; the ledger store stays authoritative.
type Exporter struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
	logger        *zap.Logger
}

// NewExporter builds a Google Sheets backed exporter.
func NewExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &Exporter{
		values:        service.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// ExportEntries appends one row per entry in a single request.
func (e *Exporter) ExportEntries(ctx context.Context, entries []models.SalesLedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: salesRows(entries)}
	call := e.values.Append(e.spreadsheetID, SalesRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append %d rows into range %s: %w", len(entries), SalesRange, err)
	}

	e.logger.Debug("sales rows exported", zap.String("range", SalesRange), zap.Int("rows", len(entries)))
	return nil
}

// salesRows lays entries out as timestamp, transaction, code, name, quantity, price.
func salesRows(entries []models.SalesLedgerEntry) [][]interface{} {
	rows := make([][]interface{}, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []interface{}{
			entry.Timestamp.UTC().Format(time.RFC3339),
			entry.TransactionID,
			entry.ItemCode,
			entry.ItemName,
			entry.Quantity,
			entry.UnitPrice.String(),
		})
	}
	return rows
}
