package transaction_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.LedgerEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...entity.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []entity.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]entity.EventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

type testEnv struct {
	uow       adapter.UnitOfWork
	engine    *ledger.Engine
	rates     *ledger.RateResolver
	publisher *recordingPublisher
	userID    uuid.UUID
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	uow := persistence.NewUnitOfWork(db, 2, time.Millisecond)
	return &testEnv{
		uow:       uow,
		engine:    ledger.NewEngine(func() time.Time { return time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC) }),
		rates:     ledger.NewRateResolver(uow.Repositories().Rates, nil, 0),
		publisher: &recordingPublisher{},
		userID:    uuid.New(),
	}
}

func (env *testEnv) product(t *testing.T, name string, productType entity.ProductType, currency string, balance int64) *entity.Product {
	t.Helper()
	product := entity.NewProduct(env.userID, name, productType, currency, decimal.NewFromInt(balance))
	err := env.uow.Do(context.Background(), func(ctx context.Context, repos adapter.Repositories) error {
		return env.engine.CreateProduct(ctx, repos, product)
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func (env *testEnv) balance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	product, err := env.uow.Repositories().Products.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("load product: %v", err)
	}
	return product.Balance
}

func TestRecordTransferUseCase(t *testing.T) {
	ctx := context.Background()
	env := setup(t)
	dollars := env.product(t, "Dollars", entity.ProductTypeSavingsAccount, "USD", 500)
	pesos := env.product(t, "Pesos", entity.ProductTypeCheckingAccount, "ARS", 0)
	transfer := transaction.NewRecordTransferUseCase(env.uow, env.engine, env.rates, env.publisher)

	input := transaction.RecordTransferInput{
		UserID:        env.userID,
		FromProductID: dollars.ID,
		ToProductID:   pesos.ID,
		Amount:        decimal.NewFromInt(20),
		Description:   "Exchange",
		Date:          time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
	}

	t.Run("fails without a stored rate", func(t *testing.T) {
		_, err := transfer.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrCurrencyMismatchUnresolvable) {
			t.Fatalf("expected unresolvable currency mismatch, got %v", err)
		}
		if len(env.publisher.types()) != 0 {
			t.Errorf("expected no events for a failed transfer")
		}
	})

	t.Run("uses the latest rate", func(t *testing.T) {
		if _, err := env.rates.SetRate(ctx, "USD", "ARS", decimal.NewFromInt(1200), time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)); err != nil {
			t.Fatalf("set rate: %v", err)
		}
		if _, err := env.rates.SetRate(ctx, "USD", "ARS", decimal.NewFromInt(1300), time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)); err != nil {
			t.Fatalf("set rate: %v", err)
		}

		output, err := transfer.Execute(ctx, input)
		if err != nil {
			t.Fatalf("transfer: %v", err)
		}
		if got := env.balance(t, pesos.ID); !got.Equal(decimal.NewFromInt(26000)) {
			t.Errorf("expected 26000 credited, got %s", got)
		}
		if got := env.balance(t, dollars.ID); !got.Equal(decimal.NewFromInt(480)) {
			t.Errorf("expected 480 left, got %s", got)
		}
		if output.Transaction.ExchangeRate == nil || !output.Transaction.ExchangeRate.Equal(decimal.NewFromInt(1300)) {
			t.Errorf("expected the March rate on the row")
		}
		if types := env.publisher.types(); len(types) != 1 || types[0] != entity.EventTransactionRecorded {
			t.Errorf("expected one recorded event, got %v", types)
		}
	})
}

func TestUpdateAndDeleteUseCases(t *testing.T) {
	ctx := context.Background()
	env := setup(t)
	wallet := env.product(t, "Wallet", entity.ProductTypeCash, "ARS", 1000)
	other := env.product(t, "Savings", entity.ProductTypeSavingsAccount, "ARS", 0)

	recorded, err := transaction.NewRecordExpenseUseCase(env.uow, env.engine, env.publisher).Execute(ctx, transaction.RecordExpenseInput{
		UserID:      env.userID,
		ProductID:   wallet.ID,
		Amount:      decimal.NewFromInt(200),
		Description: "Groceries",
		Date:        time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("record expense: %v", err)
	}
	txn := recorded.Transactions[0]
	update := transaction.NewUpdateTransactionUseCase(env.uow, env.engine, env.publisher)

	t.Run("changing the amount reposts the balance", func(t *testing.T) {
		amount := decimal.NewFromInt(350)
		if _, err := update.Execute(ctx, transaction.UpdateTransactionInput{TransactionID: txn.ID, UserID: env.userID, Amount: &amount}); err != nil {
			t.Fatalf("update: %v", err)
		}
		if got := env.balance(t, wallet.ID); !got.Equal(decimal.NewFromInt(650)) {
			t.Errorf("expected 650, got %s", got)
		}
	})

	t.Run("overdrawing through an edit is rolled back", func(t *testing.T) {
		amount := decimal.NewFromInt(5000)
		_, err := update.Execute(ctx, transaction.UpdateTransactionInput{TransactionID: txn.ID, UserID: env.userID, Amount: &amount})
		if !errors.Is(err, domainerror.ErrBalanceOutOfBounds) {
			t.Fatalf("expected balance out of bounds, got %v", err)
		}
		if got := env.balance(t, wallet.ID); !got.Equal(decimal.NewFromInt(650)) {
			t.Errorf("expected 650 after rollback, got %s", got)
		}
	})

	t.Run("moving to another product", func(t *testing.T) {
		if got := env.balance(t, other.ID); !got.IsZero() {
			t.Fatalf("unexpected starting balance %s", got)
		}
		_, err := update.Execute(ctx, transaction.UpdateTransactionInput{TransactionID: txn.ID, UserID: env.userID, ProductID: &other.ID})
		if !errors.Is(err, domainerror.ErrBalanceOutOfBounds) {
			t.Errorf("expected the empty savings account to reject the expense, got %v", err)
		}
		if got := env.balance(t, wallet.ID); !got.Equal(decimal.NewFromInt(650)) {
			t.Errorf("expected the wallet untouched, got %s", got)
		}
	})

	t.Run("delete restores the balance", func(t *testing.T) {
		output, err := transaction.NewDeleteTransactionUseCase(env.uow, env.engine, env.publisher).Execute(ctx, transaction.DeleteTransactionInput{TransactionID: txn.ID, UserID: env.userID})
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if len(output.Deleted) != 1 || output.Deleted[0] != txn.ID {
			t.Errorf("expected the expense to be deleted")
		}
		if got := env.balance(t, wallet.ID); !got.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected 1000, got %s", got)
		}
	})

	t.Run("another user cannot delete", func(t *testing.T) {
		_, err := transaction.NewDeleteTransactionUseCase(env.uow, env.engine, env.publisher).Execute(ctx, transaction.DeleteTransactionInput{TransactionID: txn.ID, UserID: uuid.New()})
		if domainerror.KindOf(err) != domainerror.KindNotFound {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

func TestListTransactionsUseCase(t *testing.T) {
	ctx := context.Background()
	env := setup(t)
	wallet := env.product(t, "Wallet", entity.ProductTypeCash, "ARS", 0)
	income := transaction.NewRecordIncomeUseCase(env.uow, env.engine, env.publisher)
	for day := 1; day <= 3; day++ {
		_, err := income.Execute(ctx, transaction.RecordIncomeInput{
			UserID:      env.userID,
			ProductID:   wallet.ID,
			Amount:      decimal.NewFromInt(100),
			Description: "Tips",
			Date:        time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("record income: %v", err)
		}
	}
	list := transaction.NewListTransactionsUseCase(env.uow)

	t.Run("pages the results", func(t *testing.T) {
		output, err := list.Execute(ctx, transaction.ListTransactionsInput{UserID: env.userID, Page: 1, Limit: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if output.Result.Total != 3 || len(output.Result.Transactions) != 2 {
			t.Errorf("expected 2 of 3 transactions, got %d of %d", len(output.Result.Transactions), output.Result.Total)
		}
	})

	t.Run("rejects an inverted date range", func(t *testing.T) {
		start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
		_, err := list.Execute(ctx, transaction.ListTransactionsInput{UserID: env.userID, StartDate: &start, EndDate: &end})
		if !errors.Is(err, domainerror.ErrInvalidTransactionDate) {
			t.Errorf("expected invalid date, got %v", err)
		}
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		bogus := entity.TransactionType("REFUND")
		_, err := list.Execute(ctx, transaction.ListTransactionsInput{UserID: env.userID, Type: &bogus})
		if !errors.Is(err, domainerror.ErrInvalidTransactionType) {
			t.Errorf("expected invalid type, got %v", err)
		}
	})
}
