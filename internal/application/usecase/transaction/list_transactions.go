package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

const (
	// DefaultPageSize is used when no limit is given.
	DefaultPageSize = 20
	// MaxPageSize caps the page size.
	MaxPageSize = 100
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID      uuid.UUID
	ProductID   *uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryIDs []uuid.UUID
	Type        *entity.TransactionType
	Search      string
	Page        int
	Limit       int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Result *entity.TransactionListResult
	Totals *entity.TransactionTotals
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	uow adapter.UnitOfWork
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(uow adapter.UnitOfWork) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		uow: uow,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Type != nil && !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			fmt.Sprintf("unknown transaction type %q", *input.Type),
			domainerror.ErrInvalidTransactionType,
		)
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"end date must not be before start date",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	// Apply pagination defaults
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	filter := entity.TransactionFilter{
		UserID:      input.UserID,
		ProductID:   input.ProductID,
		Type:        input.Type,
		CategoryIDs: input.CategoryIDs,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Search:      input.Search,
		Page:        page,
		Limit:       limit,
	}

	repos := uc.uow.Repositories()
	result, err := repos.Transactions.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	totals, err := repos.Transactions.GetTotals(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate totals: %w", err)
	}

	return &ListTransactionsOutput{
		Result: result,
		Totals: totals,
	}, nil
}
