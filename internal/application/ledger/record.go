package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// IncomeSpec describes an income to record.
type IncomeSpec struct {
	UserID      uuid.UUID
	ProductID   uuid.UUID
	Amount      decimal.Decimal
	Description string
	Notes       string
	CategoryID  *uuid.UUID
	Date        time.Time
}

// ExpenseSpec describes an expense to record. Installments above 1 finance the
// purchase on a credit card.
type ExpenseSpec struct {
	UserID       uuid.UUID
	ProductID    uuid.UUID
	Amount       decimal.Decimal
	Description  string
	Notes        string
	CategoryID   *uuid.UUID
	Date         time.Time
	Installments int
}

// TransferSpec describes a transfer to record. Rate must convert the origin
// currency into the destination currency when they differ. Credited, when set,
// is the exact destination amount to use instead of converting Amount.
type TransferSpec struct {
	UserID        uuid.UUID
	FromProductID uuid.UUID
	ToProductID   uuid.UUID
	Amount        decimal.Decimal
	Credited      *decimal.Decimal
	Description   string
	Notes         string
	Date          time.Time
	Rate          *entity.ExchangeRate
}

// RecordIncome records money received into a product.
func (e *Engine) RecordIncome(ctx context.Context, repos adapter.Repositories, spec IncomeSpec) (*entity.Transaction, error) {
	if err := validateMovement(spec.Amount, spec.Description, spec.Notes, spec.Date); err != nil {
		return nil, err
	}

	product, err := e.LoadProduct(ctx, repos, spec.UserID, spec.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Type.CanReceiveIncome() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeProductTypeNotEligible,
			fmt.Sprintf("%s products cannot receive income", product.Type),
			domainerror.ErrProductTypeNotEligible,
		)
	}
	if err := e.checkCategory(ctx, repos, spec.UserID, spec.CategoryID, entity.TransactionTypeIncome); err != nil {
		return nil, err
	}

	txn := entity.NewTransaction(spec.UserID, entity.TransactionTypeIncome, spec.Amount, spec.Date, strings.TrimSpace(spec.Description), spec.CategoryID)
	txn.Notes = spec.Notes
	txn.DestinationProductID = &product.ID

	if err := e.store(ctx, repos, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// RecordExpense records money spent from a product. A credit-card expense with
// more than one installment produces one row per installment, dated monthly from
// the purchase date. The whole debt is posted at once.
func (e *Engine) RecordExpense(ctx context.Context, repos adapter.Repositories, spec ExpenseSpec) ([]*entity.Transaction, error) {
	if err := validateMovement(spec.Amount, spec.Description, spec.Notes, spec.Date); err != nil {
		return nil, err
	}
	if spec.Installments < 0 || spec.Installments > MaxInstallments {
		return nil, invalidInstallments(fmt.Sprintf("installments must be between 1 and %d", MaxInstallments))
	}

	product, err := e.LoadProduct(ctx, repos, spec.UserID, spec.ProductID)
	if err != nil {
		return nil, err
	}
	if err := e.checkCategory(ctx, repos, spec.UserID, spec.CategoryID, entity.TransactionTypeExpense); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(spec.Description)
	if spec.Installments <= 1 {
		txn := entity.NewTransaction(spec.UserID, entity.TransactionTypeExpense, spec.Amount, spec.Date, description, spec.CategoryID)
		txn.Notes = spec.Notes
		txn.OriginProductID = &product.ID
		if err := e.store(ctx, repos, txn); err != nil {
			return nil, err
		}
		return []*entity.Transaction{txn}, nil
	}

	if !product.IsCreditCard() {
		return nil, invalidInstallments("installments are only available on credit cards")
	}
	parts := entity.SplitInstallments(spec.Amount, spec.Installments, product.Currency)
	if parts[len(parts)-1].IsZero() {
		return nil, invalidInstallments("amount is too small for the number of installments")
	}

	groupID := uuid.New()
	total := spec.Installments
	rows := make([]*entity.Transaction, 0, total)
	for i, part := range parts {
		number := i + 1
		amount := part
		txn := entity.NewTransaction(
			spec.UserID,
			entity.TransactionTypeExpense,
			part,
			entity.AddMonthsClamped(spec.Date, i),
			fmt.Sprintf("%s (%d/%d)", description, number, total),
			spec.CategoryID,
		)
		txn.Notes = spec.Notes
		txn.OriginProductID = &product.ID
		txn.InstallmentGroupID = &groupID
		txn.InstallmentNumber = &number
		txn.InstallmentTotal = &total
		txn.InstallmentAmount = &amount

		if err := e.store(ctx, repos, txn); err != nil {
			return nil, err
		}
		rows = append(rows, txn)
	}
	return rows, nil
}

// RecordTransfer moves money between two of the user's products. When their
// currencies differ the destination is credited with the converted amount and the
// rate used is kept on the row.
func (e *Engine) RecordTransfer(ctx context.Context, repos adapter.Repositories, spec TransferSpec) (*entity.Transaction, error) {
	if err := validateMovement(spec.Amount, spec.Description, spec.Notes, spec.Date); err != nil {
		return nil, err
	}
	if spec.FromProductID == spec.ToProductID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeSameProductTransfer,
			"origin and destination must be different products",
			domainerror.ErrSameProductTransfer,
		)
	}

	from, err := e.LoadProduct(ctx, repos, spec.UserID, spec.FromProductID)
	if err != nil {
		return nil, err
	}
	to, err := e.LoadProduct(ctx, repos, spec.UserID, spec.ToProductID)
	if err != nil {
		return nil, err
	}

	txn := entity.NewTransaction(spec.UserID, entity.TransactionTypeTransfer, spec.Amount, spec.Date, strings.TrimSpace(spec.Description), nil)
	txn.Notes = spec.Notes
	txn.OriginProductID = &from.ID
	txn.DestinationProductID = &to.ID

	if from.Currency != to.Currency {
		if spec.Rate == nil || spec.Rate.FromCurrency != from.Currency || spec.Rate.ToCurrency != to.Currency {
			return nil, currencyMismatch(from.Currency, to.Currency)
		}
		credited := spec.Rate.Convert(spec.Amount)
		if spec.Credited != nil {
			credited = *spec.Credited
		}
		rate := spec.Rate.Rate
		txn.DestinationAmount = &credited
		txn.ExchangeRate = &rate
	}

	if err := e.store(ctx, repos, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// store writes the row and posts its effects.
func (e *Engine) store(ctx context.Context, repos adapter.Repositories, txn *entity.Transaction) error {
	if err := repos.Transactions.Create(ctx, txn); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return e.post(ctx, repos, txn)
}

func (e *Engine) checkCategory(ctx context.Context, repos adapter.Repositories, userID uuid.UUID, categoryID *uuid.UUID, t entity.TransactionType) error {
	if categoryID == nil {
		return nil
	}
	category, err := e.LoadCategory(ctx, repos, userID, *categoryID)
	if err != nil {
		return err
	}
	if !category.Accepts(t) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryTypeMismatch,
			fmt.Sprintf("%s category cannot label %s transactions", category.Type, t),
			domainerror.ErrCategoryTypeMismatch,
		)
	}
	return nil
}

func validateMovement(amount decimal.Decimal, description, notes string, date time.Time) error {
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if strings.TrimSpace(description) == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingDescription,
			"description is required",
			domainerror.ErrMissingDescription,
		)
	}
	if len(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	if len(notes) > MaxNotesLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}
	if date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return nil
}

func invalidInstallments(message string) error {
	return domainerror.NewTransactionError(domainerror.ErrCodeInvalidInstallments, message, domainerror.ErrInvalidInstallments)
}

func currencyMismatch(from, to string) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeCurrencyMismatchUnresolvable,
		fmt.Sprintf("no exchange rate from %s to %s", from, to),
		domainerror.ErrCurrencyMismatchUnresolvable,
	)
}
