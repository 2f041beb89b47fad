package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/supermarket/internal/domain/models"
)

// BillingService is the transaction engine as seen by HTTP.
type BillingService interface {
	SubmitBill(ctx context.Context, role models.Role, req models.BillRequest) (*models.Bill, error)
	Receipt(ctx context.Context, role models.Role, sequenceID int64) (models.Bill, error)
}

// BillingHandler serves bill submission and receipts.
type BillingHandler struct {
	svc    BillingService
	logger *zap.Logger
}

// NewBillingHandler builds the handler for bill submission and receipts.
func NewBillingHandler(svc BillingService, logger *zap.Logger) *BillingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillingHandler{svc: svc, logger: logger}
}

// Submit commits a bill.
func (h *BillingHandler) Submit(c *gin.Context) {
	var req models.BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "invalid bill payload", err)
		return
	}

	bill, err := h.svc.SubmitBill(c.Request.Context(), roleFrom(c), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

// Receipt returns a committed bill by sequence id.
func (h *BillingHandler) Receipt(c *gin.Context) {
	seq, err := strconv.ParseInt(c.Param("seq"), 10, 64)
	if err != nil || seq <= 0 {
		badRequest(c, h.logger, "invalid bill sequence id", err)
		return
	}

	bill, err := h.svc.Receipt(c.Request.Context(), roleFrom(c), seq)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}
