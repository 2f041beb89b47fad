package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/supermarket/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by New.
type Handlers struct {
	Billing   *handlers.BillingHandler
	Inventory *handlers.InventoryHandler
	Reporting *handlers.ReportingHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/", handlers.RoleMiddleware())

	api.POST("/bills", h.Billing.Submit)
	api.GET("/bills/:seq", h.Billing.Receipt)

	api.GET("/items", h.Inventory.List)
	api.GET("/items/:code", h.Inventory.Get)
	api.POST("/items", h.Inventory.Create)
	api.PUT("/items/:code", h.Inventory.Update)

	api.GET("/reports/sales", h.Reporting.Sales)
	api.GET("/reports/sales/items", h.Reporting.ItemTotals)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("role", c.GetHeader(handlers.RoleHeader)))
	}
}
