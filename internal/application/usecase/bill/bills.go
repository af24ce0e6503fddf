package bill

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// BillView is a bill with its derived overdue flag.
type BillView struct {
	Bill    *entity.ServiceBill
	Overdue bool
}

func viewsOf(bills []*entity.ServiceBill, year, month int) []BillView {
	views := make([]BillView, len(bills))
	for i, b := range bills {
		views[i] = BillView{Bill: b, Overdue: b.IsOverdue(year, month)}
	}
	return views
}

// GenerateBillsInput selects the user and period to generate bills for.
type GenerateBillsInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// GenerateBillsOutput lists the bills created by the run.
type GenerateBillsOutput struct {
	Created []*entity.ServiceBill
}

// GenerateBillsUseCase creates missing bills for a period.
type GenerateBillsUseCase struct {
	uow       adapter.UnitOfWork
	engine    *ledger.Engine
	publisher adapter.EventPublisher
}

// NewGenerateBillsUseCase creates a new GenerateBillsUseCase instance.
func NewGenerateBillsUseCase(uow adapter.UnitOfWork, engine *ledger.Engine, publisher adapter.EventPublisher) *GenerateBillsUseCase {
	return &GenerateBillsUseCase{uow: uow, engine: engine, publisher: publisher}
}

// Execute generates the bills. Running it twice for a period creates nothing new.
func (uc *GenerateBillsUseCase) Execute(ctx context.Context, input GenerateBillsInput) (*GenerateBillsOutput, error) {
	output := &GenerateBillsOutput{}
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		output.Created, err = uc.engine.GenerateBills(ctx, repos, input.UserID, input.Year, input.Month)
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(output.Created) > 0 {
		period := fmt.Sprintf("%04d-%02d", input.Year, input.Month)
		events := make([]entity.LedgerEvent, len(output.Created))
		for i, b := range output.Created {
			events[i] = entity.NewLedgerEvent(entity.EventBillsGenerated, input.UserID, b.ID, map[string]string{
				"serviceID": b.ServiceID.String(),
				"period":    period,
				"amount":    b.Amount.String(),
				"currency":  b.Currency,
			})
		}
		ledger.PublishEvents(ctx, uc.publisher, events...)
		slog.Info("Bills generated", "userID", input.UserID, "period", period, "count", len(output.Created))
	}
	return output, nil
}

// ListBillsInput selects the period to list.
type ListBillsInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// ListBillsOutput holds the bills of a period.
type ListBillsOutput struct {
	Bills []BillView
}

// ListBillsUseCase lists the bills of a period.
type ListBillsUseCase struct {
	uow adapter.UnitOfWork
}

// NewListBillsUseCase creates a new ListBillsUseCase instance.
func NewListBillsUseCase(uow adapter.UnitOfWork) *ListBillsUseCase {
	return &ListBillsUseCase{uow: uow}
}

// Execute returns the bills of (year, month) ordered by due date.
func (uc *ListBillsUseCase) Execute(ctx context.Context, input ListBillsInput) (*ListBillsOutput, error) {
	if err := ledger.ValidatePeriod(input.Year, input.Month); err != nil {
		return nil, err
	}
	bills, err := uc.uow.Repositories().Bills.FindByPeriod(ctx, input.UserID, input.Year, input.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return &ListBillsOutput{Bills: viewsOf(bills, input.Year, input.Month)}, nil
}

// ListOverdueBillsUseCase lists pending bills of periods before the viewed one.
type ListOverdueBillsUseCase struct {
	uow adapter.UnitOfWork
}

// NewListOverdueBillsUseCase creates a new ListOverdueBillsUseCase instance.
func NewListOverdueBillsUseCase(uow adapter.UnitOfWork) *ListOverdueBillsUseCase {
	return &ListOverdueBillsUseCase{uow: uow}
}

// Execute returns the bills that are overdue when viewing (year, month).
func (uc *ListOverdueBillsUseCase) Execute(ctx context.Context, input ListBillsInput) (*ListBillsOutput, error) {
	if err := ledger.ValidatePeriod(input.Year, input.Month); err != nil {
		return nil, err
	}
	bills, err := uc.uow.Repositories().Bills.FindPendingBefore(ctx, input.UserID, input.Year, input.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue bills: %w", err)
	}
	return &ListBillsOutput{Bills: viewsOf(bills, input.Year, input.Month)}, nil
}

// PayBillInput represents the payment of a bill. ProductID and Amount are optional.
type PayBillInput struct {
	UserID    uuid.UUID
	BillID    uuid.UUID
	ProductID *uuid.UUID
	Amount    *decimal.Decimal
	Date      time.Time
}

// PayBillOutput holds the paid bill and its expense.
type PayBillOutput struct {
	Bill        *entity.ServiceBill
	Transaction *entity.Transaction
}

// PayBillUseCase records the expense that pays a bill.
type PayBillUseCase struct {
	uow       adapter.UnitOfWork
	engine    *ledger.Engine
	rates     *ledger.RateResolver
	publisher adapter.EventPublisher
}

// NewPayBillUseCase creates a new PayBillUseCase instance.
func NewPayBillUseCase(uow adapter.UnitOfWork, engine *ledger.Engine, rates *ledger.RateResolver, publisher adapter.EventPublisher) *PayBillUseCase {
	return &PayBillUseCase{
		uow:       uow,
		engine:    engine,
		rates:     rates,
		publisher: publisher,
	}
}

// Execute resolves the bill-to-product rate, then pays in one unit of work.
func (uc *PayBillUseCase) Execute(ctx context.Context, input PayBillInput) (*PayBillOutput, error) {
	repos := uc.uow.Repositories()
	bill, err := uc.engine.LoadBill(ctx, repos, input.UserID, input.BillID)
	if err != nil {
		return nil, err
	}
	product, err := uc.engine.PaymentProductFor(ctx, repos, bill, input.ProductID)
	if err != nil {
		return nil, err
	}
	rate, err := uc.rates.RateFor(ctx, bill.Currency, product.Currency)
	if err != nil {
		return nil, err
	}

	output := &PayBillOutput{}
	err = uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		output.Bill, output.Transaction, err = uc.engine.PayBill(ctx, repos, ledger.PayBillSpec{
			UserID:    input.UserID,
			BillID:    input.BillID,
			ProductID: &product.ID,
			Amount:    input.Amount,
			Date:      input.Date,
			Rate:      rate,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Bill paid",
		"userID", input.UserID,
		"billID", output.Bill.ID,
		"transactionID", output.Transaction.ID,
	)
	ledger.PublishEvents(ctx, uc.publisher, billPaidEvent(output.Bill, false))
	return output, nil
}

// LinkBillInput links an existing expense to a bill.
type LinkBillInput struct {
	UserID        uuid.UUID
	BillID        uuid.UUID
	TransactionID uuid.UUID
}

// LinkBillUseCase marks a bill paid by an expense recorded elsewhere.
type LinkBillUseCase struct {
	uow       adapter.UnitOfWork
	engine    *ledger.Engine
	publisher adapter.EventPublisher
}

// NewLinkBillUseCase creates a new LinkBillUseCase instance.
func NewLinkBillUseCase(uow adapter.UnitOfWork, engine *ledger.Engine, publisher adapter.EventPublisher) *LinkBillUseCase {
	return &LinkBillUseCase{uow: uow, engine: engine, publisher: publisher}
}

// Execute links the transaction.
func (uc *LinkBillUseCase) Execute(ctx context.Context, input LinkBillInput) (*entity.ServiceBill, error) {
	var bill *entity.ServiceBill
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		bill, err = uc.engine.LinkBill(ctx, repos, input.UserID, input.BillID, input.TransactionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	ledger.PublishEvents(ctx, uc.publisher, billPaidEvent(bill, true))
	return bill, nil
}

// UpdateBillInput changes a pending bill. Nil fields are kept.
type UpdateBillInput struct {
	UserID  uuid.UUID
	BillID  uuid.UUID
	Amount  *decimal.Decimal
	DueDate *time.Time
}

// UpdateBillUseCase edits the amount or due date of a pending bill.
type UpdateBillUseCase struct {
	uow    adapter.UnitOfWork
	engine *ledger.Engine
}

// NewUpdateBillUseCase creates a new UpdateBillUseCase instance.
func NewUpdateBillUseCase(uow adapter.UnitOfWork, engine *ledger.Engine) *UpdateBillUseCase {
	return &UpdateBillUseCase{uow: uow, engine: engine}
}

// Execute applies the changes.
func (uc *UpdateBillUseCase) Execute(ctx context.Context, input UpdateBillInput) (*entity.ServiceBill, error) {
	if input.Amount != nil && !input.Amount.IsPositive() {
		return nil, domainerror.NewBillError(domainerror.ErrCodeInvalidBillAmount, "amount must be positive", domainerror.ErrInvalidBillAmount)
	}

	var bill *entity.ServiceBill
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		bill, err = uc.engine.LoadBill(ctx, repos, input.UserID, input.BillID)
		if err != nil {
			return err
		}
		if bill.Status == entity.BillStatusPaid {
			return domainerror.NewBillError(domainerror.ErrCodeBillAlreadyPaid, "bill is already paid", domainerror.ErrBillAlreadyPaid)
		}
		if input.Amount != nil {
			bill.Amount = *input.Amount
		}
		if input.DueDate != nil {
			bill.DueDate = entity.DateOf(*input.DueDate)
		}
		bill.UpdatedAt = time.Now().UTC()
		if err := repos.Bills.Update(ctx, bill); err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func billPaidEvent(bill *entity.ServiceBill, linked bool) entity.LedgerEvent {
	return entity.NewLedgerEvent(entity.EventBillPaid, bill.UserID, bill.ID, map[string]string{
		"serviceID":     bill.ServiceID.String(),
		"transactionID": bill.TransactionID.String(),
		"amount":        bill.Amount.String(),
		"linked":        strconv.FormatBool(linked),
	})
}
