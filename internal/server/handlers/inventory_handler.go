package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/supermarket/internal/domain/models"
)

// InventoryService manages catalog items.
type InventoryService interface {
	ListItems(ctx context.Context, role models.Role) ([]models.Item, error)
	GetItem(ctx context.Context, role models.Role, code int64) (models.Item, error)
	AddItem(ctx context.Context, role models.Role, input models.NewItem) (models.Item, error)
	UpdateItem(ctx context.Context, role models.Role, code int64, price decimal.Decimal, quantity int) (models.Item, error)
}

// InventoryHandler serves the catalog endpoints.
type InventoryHandler struct {
	svc    InventoryService
	logger *zap.Logger
}

// NewInventoryHandler builds the handler for catalog routes.
func NewInventoryHandler(svc InventoryService, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

type updateItemRequest struct {
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Quantity  *int             `json:"quantity"`
}

// List returns the whole catalog.
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.svc.ListItems(c.Request.Context(), roleFrom(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Get returns one item by code.
func (h *InventoryHandler) Get(c *gin.Context) {
	code, ok := h.itemCode(c)
	if !ok {
		return
	}
	item, err := h.svc.GetItem(c.Request.Context(), roleFrom(c), code)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create adds an item. Managers only.
func (h *InventoryHandler) Create(c *gin.Context) {
	var input models.NewItem
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, h.logger, "invalid item payload", err)
		return
	}
	item, err := h.svc.AddItem(c.Request.Context(), roleFrom(c), input)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update overwrites price and quantity; both fields are required.
func (h *InventoryHandler) Update(c *gin.Context) {
	code, ok := h.itemCode(c)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "invalid item payload", err)
		return
	}
	if req.UnitPrice == nil || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit_price and quantity are required"})
		return
	}
	item, err := h.svc.UpdateItem(c.Request.Context(), roleFrom(c), code, *req.UnitPrice, *req.Quantity)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) itemCode(c *gin.Context) (int64, bool) {
	code, err := strconv.ParseInt(c.Param("code"), 10, 64)
	if err != nil {
		badRequest(c, h.logger, "invalid item code", err)
		return 0, false
	}
	return code, true
}
