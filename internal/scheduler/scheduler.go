package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository"
	"github.com/mamadbah2/supermarket/internal/service/reporting"
)

// ReportBuilder produces the daily sales snapshot.
type ReportBuilder interface {
	BuildDailyReport(ctx context.Context, day time.Time) (models.DailySalesReport, error)
}

// LedgerReader lists ledger entries for export.
type LedgerReader interface {
	List(ctx context.Context, filter models.SalesFilter) ([]models.SalesLedgerEntry, error)
}

// Exporter mirrors ledger entries somewhere the manager can read them.
type Exporter interface {
	ExportEntries(ctx context.Context, entries []models.SalesLedgerEntry) error
}

// Notifier delivers a text message to the manager.
type Notifier interface {
	Notify(ctx context.Context, body string) (string, error)
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithExporter enables the ledger export step.
func WithExporter(e Exporter) Option {
	return func(s *Scheduler) { s.exporter = e }
}

// WithClock overrides time.Now for the cron job.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithNotifier enables the manager summary step.
func WithNotifier(n Notifier) Option {
	return func(s *Scheduler) { s.notifier = n }
}

// Scheduler runs the end-of-day sales job.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	location *time.Location
	reports  ReportBuilder
	archive  repository.ReportArchive
	ledger   LedgerReader
	exporter Exporter
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a scheduler firing on schedule (standard five-field
// cron) in loc.
func NewScheduler(schedule string, loc *time.Location, reports ReportBuilder, archive repository.ReportArchive, ledger LedgerReader, logger *zap.Logger, opts ...Option) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: schedule,
		location: loc,
		reports:  reports,
		archive:  archive,
		ledger:   ledger,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start registers the daily job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runDailyJob); err != nil {
		return fmt.Errorf("failed to schedule daily report %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.location.String()))
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running job.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// runDailyJob reports on the day before the firing time, so the job should
// fire shortly after midnight when that day is closed.
func (s *Scheduler) runDailyJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	closedDay := s.now().In(s.location).AddDate(0, 0, -1)
	if err := s.RunDailyReport(ctx, closedDay); err != nil {
		s.logger.Error("daily report failed", zap.Error(err))
	}
}

// RunDailyReport archives the report for day's calendar day, then exports
// and notifies when those steps are enabled. Export and notification
// failures are logged and do not undo the archive.
func (s *Scheduler) RunDailyReport(ctx context.Context, day time.Time) error {
	s.logger.Info("generating daily report", zap.String("date", day.Format("2006-01-02")))

	report, err := s.reports.BuildDailyReport(ctx, day)
	if err != nil {
		return fmt.Errorf("build daily report: %w", err)
	}
	if err := s.archive.SaveDailyReport(ctx, report); err != nil {
		return fmt.Errorf("archive daily report: %w", err)
	}

	if s.exporter != nil {
		s.export(ctx, day)
	}

	if s.notifier != nil {
		if _, err := s.notifier.Notify(ctx, reporting.FormatSummary(report)); err != nil {
			s.logger.Error("failed to send daily summary", zap.Error(err))
		} else {
			s.logger.Info("daily summary sent")
		}
	}
	return nil
}

func (s *Scheduler) export(ctx context.Context, day time.Time) {
	entries, err := s.ledger.List(ctx, models.DayWindow(day))
	if err != nil {
		s.logger.Error("failed to load entries for export", zap.Error(err))
		return
	}
	if err := s.exporter.ExportEntries(ctx, entries); err != nil {
		s.logger.Error("failed to export sales entries", zap.Int("entries", len(entries)), zap.Error(err))
		return
	}
	s.logger.Info("sales entries exported", zap.Int("entries", len(entries)))
}
