package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// PostgreSQL SQLSTATE codes that mean the transaction lost a race.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
)

// unitOfWork implements the adapter.UnitOfWork interface on top of GORM transactions.
type unitOfWork struct {
	db          *gorm.DB
	maxAttempts int
	backoff     time.Duration
	txOptions   []*sql.TxOptions
}

// NewRepositories builds every repository on the given connection or transaction.
func NewRepositories(db *gorm.DB) adapter.Repositories {
	return adapter.Repositories{
		Products:     NewProductRepository(db),
		Institutions: NewInstitutionRepository(db),
		Transactions: NewTransactionRepository(db),
		Statements:   NewStatementRepository(db),
		Services:     NewServiceRepository(db),
		Bills:        NewBillRepository(db),
		Rates:        NewExchangeRateRepository(db),
		Categories:   NewCategoryRepository(db),
	}
}

// NewUnitOfWork creates a unit of work that retries conflicting transactions up to
// maxAttempts times, waiting attempt*backoff between tries. PostgreSQL
// transactions run SERIALIZABLE.
func NewUnitOfWork(db *gorm.DB, maxAttempts int, backoff time.Duration) adapter.UnitOfWork {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	u := &unitOfWork{
		db:          db,
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
	if db.Dialector.Name() == "postgres" {
		u.txOptions = []*sql.TxOptions{{Isolation: sql.LevelSerializable}}
	}
	return u
}

// Repositories returns repositories bound to the plain connection.
func (u *unitOfWork) Repositories() adapter.Repositories {
	return NewRepositories(u.db)
}

// Do runs fn in a database transaction. Nothing fn wrote is visible when it returns
// an error.
func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos adapter.Repositories) error) error {
	for attempt := 1; ; attempt++ {
		err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(ctx, NewRepositories(tx))
		}, u.txOptions...)
		if err == nil {
			return nil
		}
		if !isConflict(err) {
			return err
		}
		if attempt >= u.maxAttempts {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeRetriesExhausted,
				fmt.Sprintf("operation kept conflicting after %d attempts", attempt),
				err,
			)
		}

		slog.Warn("Unit of work conflicted, retrying", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * u.backoff):
		}
	}
}

// isConflict reports whether err came from a concurrent writer.
func isConflict(err error) bool {
	if domainerror.IsRetryable(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgUniqueViolation:
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "sqlite_busy")
}
