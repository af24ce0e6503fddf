package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// fixture is a ledger on a private in-memory SQLite database with a movable clock.
type fixture struct {
	t      *testing.T
	ctx    context.Context
	uow    adapter.UnitOfWork
	repos  adapter.Repositories
	engine *ledger.Engine
	rates  *ledger.RateResolver
	now    time.Time
	userID uuid.UUID
	bank   *entity.Institution
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newFixture(t *testing.T, today time.Time) *fixture {
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

	f := &fixture{
		t:      t,
		ctx:    context.Background(),
		now:    today,
		userID: uuid.New(),
	}
	f.engine = ledger.NewEngine(func() time.Time { return f.now })
	f.uow = persistence.NewUnitOfWork(db, 1, 0)
	f.repos = f.uow.Repositories()
	f.rates = ledger.NewRateResolver(f.repos.Rates, nil, 0)

	f.bank = entity.NewInstitution("Banco Test", nil, nil)
	if err := f.repos.Institutions.Create(f.ctx, f.bank); err != nil {
		t.Fatalf("create institution: %v", err)
	}
	return f
}

func (f *fixture) do(fn func(ctx context.Context, repos adapter.Repositories) error) error {
	return f.uow.Do(f.ctx, fn)
}

func (f *fixture) createProduct(product *entity.Product) *entity.Product {
	f.t.Helper()
	err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
		return f.engine.CreateProduct(ctx, repos, product)
	})
	if err != nil {
		f.t.Fatalf("create product %q: %v", product.Name, err)
	}
	return product
}

func (f *fixture) account(name string, productType entity.ProductType, currency, balance string) *entity.Product {
	return f.createProduct(entity.NewProduct(f.userID, name, productType, currency, dec(balance)))
}

func (f *fixture) card(name string, closingDay, dueDay int, limit string) *entity.Product {
	product := entity.NewProduct(f.userID, name, entity.ProductTypeCreditCard, "ARS", decimal.Zero)
	product.InstitutionID = &f.bank.ID
	product.ClosingDay = &closingDay
	product.DueDay = &dueDay
	if limit != "" {
		l := dec(limit)
		product.CreditLimit = &l
	}
	return f.createProduct(product)
}

func (f *fixture) balance(productID uuid.UUID) decimal.Decimal {
	f.t.Helper()
	product, err := f.repos.Products.FindByID(f.ctx, productID)
	if err != nil {
		f.t.Fatalf("load product: %v", err)
	}
	return product.Balance
}

func (f *fixture) expectBalance(productID uuid.UUID, want string) {
	f.t.Helper()
	if got := f.balance(productID); !got.Equal(dec(want)) {
		f.t.Errorf("expected balance %s, got %s", want, got)
	}
}

func (f *fixture) income(productID uuid.UUID, amount string, date time.Time) *entity.Transaction {
	f.t.Helper()
	var txn *entity.Transaction
	err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		txn, err = f.engine.RecordIncome(ctx, repos, ledger.IncomeSpec{
			UserID:      f.userID,
			ProductID:   productID,
			Amount:      dec(amount),
			Description: "Salary",
			Date:        date,
		})
		return err
	})
	if err != nil {
		f.t.Fatalf("record income: %v", err)
	}
	return txn
}

func (f *fixture) expense(spec ledger.ExpenseSpec) ([]*entity.Transaction, error) {
	spec.UserID = f.userID
	if spec.Description == "" {
		spec.Description = "Groceries"
	}
	var rows []*entity.Transaction
	err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		rows, err = f.engine.RecordExpense(ctx, repos, spec)
		return err
	})
	return rows, err
}

func (f *fixture) mustExpense(spec ledger.ExpenseSpec) []*entity.Transaction {
	f.t.Helper()
	rows, err := f.expense(spec)
	if err != nil {
		f.t.Fatalf("record expense: %v", err)
	}
	return rows
}

func (f *fixture) deleteTransaction(id uuid.UUID) ([]*entity.Transaction, error) {
	var rows []*entity.Transaction
	err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		rows, err = f.engine.DeleteTransaction(ctx, repos, f.userID, id)
		return err
	})
	return rows, err
}

func (f *fixture) currentStatement(card *entity.Product) (*entity.Statement, []*entity.Statement) {
	f.t.Helper()
	var (
		open   *entity.Statement
		closed []*entity.Statement
	)
	err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		open, closed, err = f.engine.CurrentStatement(ctx, repos, card)
		return err
	})
	if err != nil {
		f.t.Fatalf("current statement: %v", err)
	}
	return open, closed
}
