package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/service/reporting"
)

// ReportingService exposes the manager's sales view.
type ReportingService interface {
	GetSalesReport(ctx context.Context, role models.Role, filter models.SalesFilter) (models.SalesReport, error)
	GetItemTotals(ctx context.Context, role models.Role, filter models.SalesFilter) (map[string]decimal.Decimal, error)
}

// ReportingHandler serves sales reports.
type ReportingHandler struct {
	svc      ReportingService
	location *time.Location
	logger   *zap.Logger
}

// NewReportingHandler resolves plain dates in loc.
func NewReportingHandler(svc ReportingService, loc *time.Location, logger *zap.Logger) *ReportingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReportingHandler{svc: svc, location: loc, logger: logger}
}

// Sales returns ledger entries, catalog and per-item totals for ?from=&to=.
// Both bounds take RFC3339 or 2006-01-02. A plain date for to includes
// that whole day.
func (h *ReportingHandler) Sales(c *gin.Context) {
	filter, err := reporting.ParseWindow(c.Query("from"), c.Query("to"), h.location)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	report, err := h.svc.GetSalesReport(c.Request.Context(), roleFrom(c), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ItemTotals returns only the per-item revenue for the same window as Sales.
func (h *ReportingHandler) ItemTotals(c *gin.Context) {
	filter, err := reporting.ParseWindow(c.Query("from"), c.Query("to"), h.location)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	totals, err := h.svc.GetItemTotals(c.Request.Context(), roleFrom(c), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"filter": filter, "per_item_totals": totals})
}
