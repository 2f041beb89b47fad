package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository"
)

const dateLayout = "2006-01-02"

// Service reads the sales ledger for managers and for the daily job.
// It never takes locks and may miss a bill that is still being submitted.
type Service struct {
	ledger  repository.SalesLedger
	catalog repository.CatalogStore
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(ledger repository.SalesLedger, catalog repository.CatalogStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{ledger: ledger, catalog: catalog, logger: logger, now: time.Now}
}

// GetSalesReport returns the ledger entries in the window, the current
// catalog and the revenue per item name. Totals are computed from the
// returned entries so the two always agree.
func (s *Service) GetSalesReport(ctx context.Context, role models.Role, filter models.SalesFilter) (models.SalesReport, error) {
	if err := s.authorize(role, filter); err != nil {
		return models.SalesReport{}, err
	}

	entries, err := s.ledger.List(ctx, filter)
	if err != nil {
		return models.SalesReport{}, fmt.Errorf("load sales entries: %w", err)
	}
	items, err := s.catalog.ListAll(ctx)
	if err != nil {
		return models.SalesReport{}, fmt.Errorf("load catalog: %w", err)
	}

	return models.SalesReport{
		Filter:        filter,
		Entries:       entries,
		Items:         items,
		PerItemTotals: models.TotalsByItem(entries),
		GeneratedAt:   s.now().UTC(),
	}, nil
}

// GetItemTotals returns only the revenue per item name, aggregated by the
// ledger store without loading the entries.
func (s *Service) GetItemTotals(ctx context.Context, role models.Role, filter models.SalesFilter) (map[string]decimal.Decimal, error) {
	if err := s.authorize(role, filter); err != nil {
		return nil, err
	}
	totals, err := s.ledger.AggregateByItem(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("aggregate sales: %w", err)
	}
	return totals, nil
}

func (s *Service) authorize(role models.Role, filter models.SalesFilter) error {
	if err := role.Require("view sales reports", models.RoleManager); err != nil {
		s.logger.Warn("sales report refused", zap.String("role", string(role)))
		return err
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return &models.InvalidInputError{Field: "to", Reason: "must not be before from"}
	}
	return nil
}

// BuildDailyReport summarizes the calendar day containing day, in day's location.
func (s *Service) BuildDailyReport(ctx context.Context, day time.Time) (models.DailySalesReport, error) {
	window := models.DayWindow(day)
	entries, err := s.ledger.List(ctx, window)
	if err != nil {
		return models.DailySalesReport{}, fmt.Errorf("load sales for %s: %w", day.Format(dateLayout), err)
	}

	report := models.DailySalesReport{
		Date:          *window.From,
		Revenue:       decimal.Zero,
		EntryCount:    len(entries),
		PerItemTotals: make(map[string]decimal.Decimal),
		CreatedAt:     s.now().UTC(),
	}
	transactions := make(map[string]struct{})
	for _, entry := range entries {
		revenue := entry.Revenue()
		report.Revenue = report.Revenue.Add(revenue)
		report.UnitsSold += entry.Quantity
		report.PerItemTotals[entry.ItemName] = report.PerItemTotals[entry.ItemName].Add(revenue)
		transactions[entry.TransactionID] = struct{}{}
	}
	report.Transactions = len(transactions)

	s.logger.Debug("daily report built",
		zap.String("date", report.Date.Format(dateLayout)),
		zap.Int("entries", report.EntryCount),
		zap.String("revenue", report.Revenue.String()))
	return report, nil
}

// FormatSummary renders a daily report as a short text message.
func FormatSummary(report models.DailySalesReport) string {
	date := report.Date.Format(dateLayout)
	if report.EntryCount == 0 {
		return fmt.Sprintf("Sales summary (%s): no sales recorded.", date)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Sales summary (%s): %s revenue, %d units across %d bills.",
		date, report.Revenue.StringFixed(2), report.UnitsSold, report.Transactions)

	names := make([]string, 0, len(report.PerItemTotals))
	for name := range report.PerItemTotals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, c := report.PerItemTotals[names[i]], report.PerItemTotals[names[j]]
		if !a.Equal(c) {
			return a.GreaterThan(c)
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Fprintf(&b, "\n- %s: %s", name, report.PerItemTotals[name].StringFixed(2))
	}
	return b.String()
}

// ParseWindow builds a filter from optional from/to values. A plain date
// for to covers that whole day, so from=2025-03-01&to=2025-03-31 includes
// March 31.
func ParseWindow(from, to string, loc *time.Location) (models.SalesFilter, error) {
	start, _, err := parseBound(from, loc)
	if err != nil {
		return models.SalesFilter{}, &models.InvalidInputError{Field: "from", Reason: err.Error()}
	}
	end, dateOnly, err := parseBound(to, loc)
	if err != nil {
		return models.SalesFilter{}, &models.InvalidInputError{Field: "to", Reason: err.Error()}
	}
	if end != nil && dateOnly {
		next := end.AddDate(0, 0, 1)
		end = &next
	}
	return models.SalesFilter{From: start, To: end}, nil
}

// parseBound accepts RFC3339 timestamps or plain dates resolved to midnight
// in loc. The flag reports a plain date.
func parseBound(value string, loc *time.Location) (*time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return &ts, false, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	ts, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return nil, false, fmt.Errorf("parse %q: expected RFC3339 or %s", value, dateLayout)
	}
	return &ts, true, nil
}
