// Package ledger holds the rules that keep balances, transactions, statements
// and bills consistent. Every Engine method that writes runs inside a unit of
// work and receives that unit's repositories.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for descriptions.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
	// MaxInstallments is the largest installment count accepted for one purchase.
	MaxInstallments = 72
)

// Engine applies ledger operations.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an Engine reading the current time from clock.
// A nil clock uses time.Now.
func NewEngine(clock func() time.Time) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{now: clock}
}

// Today returns the current calendar date.
func (e *Engine) Today() time.Time {
	return entity.DateOf(e.now())
}

// LoadProduct returns the user's product or a not-found error.
func (e *Engine) LoadProduct(ctx context.Context, repos adapter.Repositories, userID, productID uuid.UUID) (*entity.Product, error) {
	product, err := repos.Products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProductNotFound) {
			return nil, productNotFound(err)
		}
		return nil, err
	}
	if product.UserID != userID {
		return nil, productNotFound(domainerror.ErrProductNotFound)
	}
	return product, nil
}

// LoadTransaction returns the user's transaction or a not-found error.
func (e *Engine) LoadTransaction(ctx context.Context, repos adapter.Repositories, userID, transactionID uuid.UUID) (*entity.Transaction, error) {
	txn, err := repos.Transactions.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, transactionNotFound(err)
		}
		return nil, err
	}
	if txn.UserID != userID {
		return nil, transactionNotFound(domainerror.ErrTransactionNotFound)
	}
	return txn, nil
}

// LoadStatement returns the user's statement or a not-found error.
func (e *Engine) LoadStatement(ctx context.Context, repos adapter.Repositories, userID, statementID uuid.UUID) (*entity.Statement, error) {
	statement, err := repos.Statements.FindByID(ctx, statementID)
	if err != nil {
		if errors.Is(err, domainerror.ErrStatementNotFound) {
			return nil, statementNotFound(err)
		}
		return nil, err
	}
	if statement.UserID != userID {
		return nil, statementNotFound(domainerror.ErrStatementNotFound)
	}
	return statement, nil
}

// LoadCategory returns the user's category or a not-found error.
func (e *Engine) LoadCategory(ctx context.Context, repos adapter.Repositories, userID, categoryID uuid.UUID) (*entity.Category, error) {
	category, err := repos.Categories.FindByID(ctx, categoryID)
	if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, err
	}
	if err != nil || category.UserID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}
	return category, nil
}

func productNotFound(err error) error {
	return domainerror.NewProductError(domainerror.ErrCodeProductNotFound, "product not found", err)
}

func transactionNotFound(err error) error {
	return domainerror.NewTransactionError(domainerror.ErrCodeTransactionNotFound, "transaction not found", err)
}

func statementNotFound(err error) error {
	return domainerror.NewStatementError(domainerror.ErrCodeStatementNotFound, "statement not found", err)
}
