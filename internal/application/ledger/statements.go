package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// AdjustmentSpec describes a manual statement correction.
type AdjustmentSpec struct {
	UserID      uuid.UUID
	StatementID uuid.UUID
	Kind        entity.AdjustmentKind
	Amount      decimal.Decimal
	Description string
}

// PayStatementSpec describes the settlement of a closed statement. Rate must convert
// the source currency into the card currency when they differ.
type PayStatementSpec struct {
	UserID          uuid.UUID
	StatementID     uuid.UUID
	SourceProductID uuid.UUID
	Date            time.Time
	Rate            *entity.ExchangeRate
}

// LoadCard returns the user's credit card with a billing cycle.
func (e *Engine) LoadCard(ctx context.Context, repos adapter.Repositories, userID, productID uuid.UUID) (*entity.Product, error) {
	card, err := e.LoadProduct(ctx, repos, userID, productID)
	if err != nil {
		return nil, err
	}
	if !card.HasBillingCycle() {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeNotCreditCard,
			fmt.Sprintf("product %q has no billing cycle", card.Name),
			domainerror.ErrNotCreditCard,
		)
	}
	return card, nil
}

// CurrentStatement returns the OPEN statement of the card after closing every
// period that ended before today, creating it when the card has none.
func (e *Engine) CurrentStatement(ctx context.Context, repos adapter.Repositories, card *entity.Product) (*entity.Statement, []*entity.Statement, error) {
	return e.rollForward(ctx, repos, card, e.Today())
}

// CloseDue closes every statement of the card whose closing date is before asOf.
// Cards without statements are left alone.
func (e *Engine) CloseDue(ctx context.Context, repos adapter.Repositories, card *entity.Product, asOf time.Time) ([]*entity.Statement, error) {
	if !card.HasBillingCycle() {
		return nil, nil
	}
	if _, err := repos.Statements.FindOpenByProduct(ctx, card.ID); err != nil {
		if errors.Is(err, domainerror.ErrStatementNotFound) {
			return nil, nil
		}
		return nil, err
	}
	_, closed, err := e.rollForward(ctx, repos, card, asOf)
	return closed, err
}

// rollForward returns the OPEN statement covering asOf. While the open statement's
// closing date is before asOf it is closed and the next period is opened.
func (e *Engine) rollForward(ctx context.Context, repos adapter.Repositories, card *entity.Product, asOf time.Time) (*entity.Statement, []*entity.Statement, error) {
	asOf = entity.DateOf(asOf)

	open, err := repos.Statements.FindOpenByProduct(ctx, card.ID)
	if err != nil {
		if !errors.Is(err, domainerror.ErrStatementNotFound) {
			return nil, nil, err
		}
		open, err = e.openStatement(ctx, repos, card, card.PeriodFor(asOf))
		if err != nil {
			return nil, nil, err
		}
		return open, nil, nil
	}

	var closed []*entity.Statement
	for open.ClosingDate.Before(asOf) {
		open.Status = entity.StatementStatusClosed
		open.Recompute()
		if err := repos.Statements.Update(ctx, open); err != nil {
			return nil, nil, fmt.Errorf("failed to close statement: %w", err)
		}
		closed = append(closed, open)

		slog.Info("Statement closed",
			"productID", card.ID,
			"statementID", open.ID,
			"closingDate", open.ClosingDate.Format("2006-01-02"),
			"total", open.TotalAmount.String(),
		)

		next := entity.NextPeriod(open.ClosingDate, *card.ClosingDay, *card.DueDay)
		open, err = e.openStatement(ctx, repos, card, next)
		if err != nil {
			return nil, nil, err
		}
	}
	return open, closed, nil
}

// openStatement creates the OPEN statement for period and sweeps in charges
// already recorded up to its closing date.
func (e *Engine) openStatement(ctx context.Context, repos adapter.Repositories, card *entity.Product, period entity.Period) (*entity.Statement, error) {
	statement := entity.NewStatement(card, period)
	if err := repos.Statements.Create(ctx, statement); err != nil {
		return nil, fmt.Errorf("failed to open statement: %w", err)
	}

	charges, err := repos.Transactions.FindUnattachedCharges(ctx, card.ID, period.Closing)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending charges: %w", err)
	}
	for _, txn := range charges {
		item := statement.NewItem(txn)
		if err := repos.Statements.AddItem(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to add statement item: %w", err)
		}
		statement.Items = append(statement.Items, item)
	}
	if len(charges) > 0 {
		statement.Recompute()
		if err := repos.Statements.Update(ctx, statement); err != nil {
			return nil, fmt.Errorf("failed to update statement: %w", err)
		}
	}
	return statement, nil
}

// AddAdjustment adds a manual correction to an OPEN or CLOSED statement. The card
// balance moves by the opposite of the amount, so a fee deepens the debt.
func (e *Engine) AddAdjustment(ctx context.Context, repos adapter.Repositories, spec AdjustmentSpec) (*entity.Statement, *entity.StatementAdjustment, error) {
	if !spec.Kind.IsValid() {
		return nil, nil, domainerror.NewStatementError(
			domainerror.ErrCodeInvalidAdjustmentKind,
			fmt.Sprintf("unknown adjustment kind %q", spec.Kind),
			domainerror.ErrInvalidAdjustmentKind,
		)
	}
	if spec.Amount.IsZero() {
		return nil, nil, domainerror.NewStatementError(
			domainerror.ErrCodeInvalidAdjustmentAmount,
			"adjustment amount must not be zero",
			domainerror.ErrInvalidAdjustmentAmount,
		)
	}
	if len(spec.Description) > MaxDescriptionLength {
		return nil, nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	statement, err := e.LoadStatement(ctx, repos, spec.UserID, spec.StatementID)
	if err != nil {
		return nil, nil, err
	}
	if !statement.IsMutable() {
		return nil, nil, statementPaid()
	}

	if _, err := e.ApplyBalanceDelta(ctx, repos, statement.ProductID, spec.Amount.Neg()); err != nil {
		return nil, nil, err
	}

	adjustment := &entity.StatementAdjustment{
		ID:          uuid.New(),
		StatementID: statement.ID,
		Kind:        spec.Kind,
		Amount:      spec.Amount,
		Description: strings.TrimSpace(spec.Description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := repos.Statements.AddAdjustment(ctx, adjustment); err != nil {
		return nil, nil, fmt.Errorf("failed to add adjustment: %w", err)
	}

	statement.Adjustments = append(statement.Adjustments, adjustment)
	statement.Recompute()
	if err := repos.Statements.Update(ctx, statement); err != nil {
		return nil, nil, fmt.Errorf("failed to update statement: %w", err)
	}
	return statement, adjustment, nil
}

// RemoveAdjustment removes a correction from a statement that is not PAID and
// gives its balance effect back.
func (e *Engine) RemoveAdjustment(ctx context.Context, repos adapter.Repositories, userID, statementID, adjustmentID uuid.UUID) (*entity.Statement, error) {
	statement, err := e.LoadStatement(ctx, repos, userID, statementID)
	if err != nil {
		return nil, err
	}
	if !statement.IsMutable() {
		return nil, statementPaid()
	}

	adjustment, err := repos.Statements.FindAdjustment(ctx, adjustmentID)
	if err != nil && !errors.Is(err, domainerror.ErrAdjustmentNotFound) {
		return nil, err
	}
	if err != nil || adjustment.StatementID != statement.ID {
		return nil, domainerror.NewStatementError(domainerror.ErrCodeAdjustmentNotFound, "adjustment not found", domainerror.ErrAdjustmentNotFound)
	}

	if _, err := e.ApplyBalanceDelta(ctx, repos, statement.ProductID, adjustment.Amount); err != nil {
		return nil, err
	}
	if err := repos.Statements.DeleteAdjustment(ctx, adjustment.ID); err != nil {
		return nil, fmt.Errorf("failed to delete adjustment: %w", err)
	}

	kept := statement.Adjustments[:0]
	for _, adj := range statement.Adjustments {
		if adj.ID != adjustment.ID {
			kept = append(kept, adj)
		}
	}
	statement.Adjustments = kept
	statement.Recompute()
	if err := repos.Statements.Update(ctx, statement); err != nil {
		return nil, fmt.Errorf("failed to update statement: %w", err)
	}
	return statement, nil
}

// PayStatement settles a CLOSED statement with a transfer from the source product
// to the card for the statement total. The card is credited the total exactly; a
// source in another currency is debited the total divided by the rate.
func (e *Engine) PayStatement(ctx context.Context, repos adapter.Repositories, spec PayStatementSpec) (*entity.Statement, *entity.Transaction, error) {
	statement, err := e.LoadStatement(ctx, repos, spec.UserID, spec.StatementID)
	if err != nil {
		return nil, nil, err
	}
	switch statement.Status {
	case entity.StatementStatusPaid:
		return nil, nil, statementPaid()
	case entity.StatementStatusOpen:
		return nil, nil, domainerror.NewStatementError(
			domainerror.ErrCodeStatementNotClosed,
			fmt.Sprintf("statement closes on %s", statement.ClosingDate.Format("2006-01-02")),
			domainerror.ErrStatementNotClosed,
		)
	}
	if !statement.TotalAmount.IsPositive() {
		return nil, nil, domainerror.NewStatementError(
			domainerror.ErrCodeNothingToPay,
			"statement total is not positive",
			domainerror.ErrNothingToPay,
		)
	}

	card, err := e.LoadProduct(ctx, repos, spec.UserID, statement.ProductID)
	if err != nil {
		return nil, nil, err
	}
	source, err := e.LoadProduct(ctx, repos, spec.UserID, spec.SourceProductID)
	if err != nil {
		return nil, nil, err
	}

	date := spec.Date
	if date.IsZero() {
		date = e.Today()
	}
	transfer := TransferSpec{
		UserID:        spec.UserID,
		FromProductID: source.ID,
		ToProductID:   card.ID,
		Amount:        statement.TotalAmount,
		Description:   fmt.Sprintf("%s statement %s", card.Name, statement.ClosingDate.Format("2006-01")),
		Date:          date,
	}
	if source.Currency != card.Currency {
		if spec.Rate == nil || spec.Rate.FromCurrency != source.Currency || spec.Rate.ToCurrency != card.Currency || !spec.Rate.Rate.IsPositive() {
			return nil, nil, currencyMismatch(source.Currency, card.Currency)
		}
		total := statement.TotalAmount
		transfer.Amount = entity.RoundToCurrency(total.Div(spec.Rate.Rate), source.Currency)
		transfer.Credited = &total
		transfer.Rate = spec.Rate
	}

	txn, err := e.RecordTransfer(ctx, repos, transfer)
	if err != nil {
		return nil, nil, err
	}

	paid := txn.Date
	statement.Status = entity.StatementStatusPaid
	statement.PaidDate = &paid
	statement.PaymentTransactionID = &txn.ID
	statement.UpdatedAt = time.Now().UTC()
	if err := repos.Statements.Update(ctx, statement); err != nil {
		return nil, nil, fmt.Errorf("failed to update statement: %w", err)
	}
	return statement, txn, nil
}

func statementPaid() error {
	return domainerror.NewStatementError(domainerror.ErrCodeStatementPaid, "statement is already paid", domainerror.ErrStatementPaid)
}
