package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/supermarket/internal/config"
	"github.com/mamadbah2/supermarket/internal/events/kafka"
	"github.com/mamadbah2/supermarket/internal/repository"
	"github.com/mamadbah2/supermarket/internal/repository/memory"
	"github.com/mamadbah2/supermarket/internal/repository/mongodb"
	"github.com/mamadbah2/supermarket/internal/repository/sheets"
	"github.com/mamadbah2/supermarket/internal/scheduler"
	"github.com/mamadbah2/supermarket/internal/server/handlers"
	"github.com/mamadbah2/supermarket/internal/server/router"
	billingsvc "github.com/mamadbah2/supermarket/internal/service/billing"
	inventorysvc "github.com/mamadbah2/supermarket/internal/service/inventory"
	reportingsvc "github.com/mamadbah2/supermarket/internal/service/reporting"
	whatsappclient "github.com/mamadbah2/supermarket/pkg/clients/whatsapp"
	"github.com/mamadbah2/supermarket/pkg/logger"
)

type stores struct {
	catalog repository.CatalogStore
	ledger  repository.SalesLedger
	bills   repository.BillStore
	archive repository.ReportArchive
	close   func(context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	if cfg.Store.Backend == config.BackendMemory {
		log.Warn("using in-memory stores, data is lost on restart")
		return &stores{
			catalog: memory.NewCatalog(),
			ledger:  memory.NewLedger(),
			bills:   memory.NewBills(),
			archive: memory.NewArchive(),
			close:   func(context.Context) error { return nil },
		}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongodb.Connect(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		return nil, err
	}
	log.Info("mongodb connected", zap.String("database", cfg.MongoDB.DBName))
	return &stores{
		catalog: client.Catalog(),
		ledger:  client.Ledger(),
		bills:   client.Bills(),
		archive: client.Archive(),
		close:   client.Close,
	}, nil
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger.Named(baseLogger, "repo"))
	if err != nil {
		baseLogger.Fatal("failed to open stores", zap.Error(err))
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			baseLogger.Error("failed to close store connection", zap.Error(err))
		}
	}()

	billingOpts := []billingsvc.Option{billingsvc.WithMaxAttempts(cfg.Billing.MaxAttempts)}
	if cfg.Kafka.Enabled() {
		publisher := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger.Named(baseLogger, "events.kafka"))
		defer func() {
			if err := publisher.Close(); err != nil {
				baseLogger.Error("failed to close kafka publisher", zap.Error(err))
			}
		}()
		billingOpts = append(billingOpts, billingsvc.WithPublisher(publisher))
		baseLogger.Info("bill events enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	billingSvc := billingsvc.NewService(st.catalog, st.ledger, st.bills, logger.Named(baseLogger, "svc.billing"), billingOpts...)
	inventorySvc := inventorysvc.NewService(st.catalog, logger.Named(baseLogger, "svc.inventory"))
	reportingSvc := reportingsvc.NewService(st.ledger, st.catalog, logger.Named(baseLogger, "svc.reporting"))

	loc, err := cfg.Reporting.Location()
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.Error(err))
	}

	var schedOpts []scheduler.Option
	if cfg.Sheets.Enabled() {
		exporter, err := sheets.NewExporter(ctx, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		schedOpts = append(schedOpts, scheduler.WithExporter(exporter))
	}
	if cfg.WhatsApp.Enabled() {
		schedOpts = append(schedOpts, scheduler.WithNotifier(whatsappclient.NewClient(cfg.WhatsApp)))
	} else {
		baseLogger.Warn("whatsapp not configured, daily summaries will not be sent")
	}

	sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, reportingSvc, st.archive, st.ledger, logger.Named(baseLogger, "scheduler"), schedOpts...)
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	engine := router.New(router.Handlers{
		Billing:   handlers.NewBillingHandler(billingSvc, logger.Named(baseLogger, "handlers.billing")),
		Inventory: handlers.NewInventoryHandler(inventorySvc, logger.Named(baseLogger, "handlers.inventory")),
		Reporting: handlers.NewReportingHandler(reportingSvc, loc, logger.Named(baseLogger, "handlers.reporting")),
	}, logger.Named(baseLogger, "router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
