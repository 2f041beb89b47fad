package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/supermarket/internal/domain/models"
)

// writeError maps domain errors onto HTTP statuses.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var persistErr *models.BillPersistenceError
	if errors.As(err, &persistErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":                   "bill was not saved; sale recorded and needs reconciliation",
			"reconciliation_required": true,
			"bill":                    persistErr.Bill,
		})
		return
	}

	var orphaned *models.LedgerCleanupError
	if errors.As(err, &orphaned) {
		logger.Error("sale rolled back with orphaned ledger entries", zap.Strings("entry_ids", orphaned.EntryIDs), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":                   "sale was not recorded; ledger needs reconciliation",
			"reconciliation_required": true,
			"orphaned_entries":        orphaned.EntryIDs,
		})
		return
	}

	var stockErr *models.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":     err.Error(),
			"item_code": stockErr.ItemCode,
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrItemNotFound), errors.Is(err, models.ErrBillNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case models.IsRetryable(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": true})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, logger *zap.Logger, msg string, err error) {
	logger.Warn(msg, zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
