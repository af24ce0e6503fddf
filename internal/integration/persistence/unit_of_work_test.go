package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestUnitOfWorkCommitsAndRollsBack(t *testing.T) {
	ctx := context.Background()
	uow := persistence.NewUnitOfWork(openDB(t), 3, 0)

	committed := entity.NewInstitution("Chase", []entity.ProductType{entity.ProductTypeCheckingAccount}, []string{"usd"})
	err := uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		return repos.Institutions.Create(ctx, committed)
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if _, err := uow.Repositories().Institutions.FindByID(ctx, committed.ID); err != nil {
		t.Errorf("committed institution not found: %v", err)
	}

	boom := errors.New("boom")
	discarded := entity.NewInstitution("Wells", nil, nil)
	err = uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		if err := repos.Institutions.Create(ctx, discarded); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Do error = %v, want boom", err)
	}
	if _, err := uow.Repositories().Institutions.FindByID(ctx, discarded.ID); err == nil {
		t.Error("rolled back institution is visible")
	}
}

func TestUnitOfWorkRetries(t *testing.T) {
	ctx := context.Background()
	nop := func(context.Context, adapter.Repositories) error { return nil }

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantCode  string
	}{
		{
			name:      "conflict then success",
			failures:  1,
			err:       domainerror.NewConflictError(nil),
			wantCalls: 2,
		},
		{
			name:      "conflicts exhaust the attempts",
			failures:  10,
			err:       domainerror.NewConflictError(nil),
			wantCalls: 3,
			wantCode:  string(domainerror.ErrCodeRetriesExhausted),
		},
		{
			name:      "sqlite busy is a conflict",
			failures:  2,
			err:       errors.New("database is locked (5) (SQLITE_BUSY)"),
			wantCalls: 3,
		},
		{
			name:      "policy errors are not retried",
			failures:  10,
			err:       domainerror.ErrBalanceOutOfBounds,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := persistence.NewUnitOfWork(openDB(t), 3, 0)
			calls := 0
			err := uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nop(ctx, repos)
			})

			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.failures < tt.wantCalls {
				if err != nil {
					t.Errorf("Do: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("error %v does not wrap %v", err, tt.err)
			}
			if tt.wantCode != "" && domainerror.CodeOf(err) != tt.wantCode {
				t.Errorf("code = %q, want %q", domainerror.CodeOf(err), tt.wantCode)
			}
		})
	}
}
