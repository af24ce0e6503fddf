// Package scheduler runs the periodic ledger jobs: closing due statements and
// generating the current month's bills.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/finance-tracker/ledger/internal/application/usecase/bill"
	"github.com/finance-tracker/ledger/internal/application/usecase/statement"
)

// Worker triggers statement closing and bill generation on a fixed interval.
type Worker struct {
	closeStatements *statement.CloseStatementsUseCase
	generateBills   *bill.GenerateAllBillsUseCase
	clock           func() time.Time
	interval        time.Duration
}

// WorkerConfig holds configuration for the scheduler worker.
type WorkerConfig struct {
	Interval time.Duration
	Clock    func() time.Time
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Interval: time.Hour,
		Clock:    time.Now,
	}
}

// NewWorker creates a new scheduler worker.
func NewWorker(closeStatements *statement.CloseStatementsUseCase, generateBills *bill.GenerateAllBillsUseCase, config WorkerConfig) *Worker {
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	return &Worker{
		closeStatements: closeStatements,
		generateBills:   generateBills,
		clock:           config.Clock,
		interval:        config.Interval,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Ledger scheduler started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run immediately on start, then on ticker
	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Ledger scheduler shutting down")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce closes every due statement and generates the bills of the current month.
// Failures are logged; the next tick retries them.
func (w *Worker) RunOnce(ctx context.Context) {
	now := w.clock()

	closed, err := w.closeStatements.Execute(ctx, statement.CloseStatementsInput{AsOf: now})
	if err != nil {
		slog.Error("Scheduled statement close failed", "error", err)
	} else if len(closed.Closed) > 0 || len(closed.FailedCards) > 0 {
		slog.Info("Scheduled statement close finished",
			"closed", len(closed.Closed),
			"failed_cards", len(closed.FailedCards),
		)
	}

	if ctx.Err() != nil {
		return
	}

	generated, err := w.generateBills.Execute(ctx, bill.GenerateAllBillsInput{Year: now.Year(), Month: int(now.Month())})
	if err != nil {
		slog.Error("Scheduled bill generation failed", "error", err)
		return
	}
	if len(generated.Created) > 0 || len(generated.FailedUsers) > 0 {
		slog.Info("Scheduled bill generation finished",
			"created", len(generated.Created),
			"failed_users", len(generated.FailedUsers),
		)
	}
}
