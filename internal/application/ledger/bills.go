package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// PayBillSpec describes the payment of a bill. ProductID defaults to the product of
// the rule in force for the bill's period and Amount to the bill amount. Rate must
// convert the bill currency into the product currency when they differ.
type PayBillSpec struct {
	UserID    uuid.UUID
	BillID    uuid.UUID
	ProductID *uuid.UUID
	Amount    *decimal.Decimal
	Date      time.Time
	Rate      *entity.ExchangeRate
}

// ValidatePeriod checks a (year, month) billing period.
func ValidatePeriod(year, month int) error {
	if month < 1 || month > 12 || year < 1900 || year > 9999 {
		return domainerror.NewBillError(
			domainerror.ErrCodeInvalidBillPeriod,
			fmt.Sprintf("invalid period %04d-%02d", year, month),
			domainerror.ErrInvalidBillPeriod,
		)
	}
	return nil
}

// LoadService returns the user's service or a not-found error.
func (e *Engine) LoadService(ctx context.Context, repos adapter.Repositories, userID, serviceID uuid.UUID) (*entity.Service, error) {
	service, err := repos.Services.FindByID(ctx, serviceID)
	if err != nil && !errors.Is(err, domainerror.ErrServiceNotFound) {
		return nil, err
	}
	if err != nil || service.UserID != userID {
		return nil, domainerror.NewBillError(domainerror.ErrCodeServiceNotFound, "service not found", domainerror.ErrServiceNotFound)
	}
	return service, nil
}

// LoadBill returns the user's bill or a not-found error.
func (e *Engine) LoadBill(ctx context.Context, repos adapter.Repositories, userID, billID uuid.UUID) (*entity.ServiceBill, error) {
	bill, err := repos.Bills.FindByID(ctx, billID)
	if err != nil && !errors.Is(err, domainerror.ErrBillNotFound) {
		return nil, err
	}
	if err != nil || bill.UserID != userID {
		return nil, domainerror.NewBillError(domainerror.ErrCodeBillNotFound, "bill not found", domainerror.ErrBillNotFound)
	}
	return bill, nil
}

// GenerateBills creates the bill of every active service of the user for
// (year, month) that has a rule in force. Existing bills are left untouched.
func (e *Engine) GenerateBills(ctx context.Context, repos adapter.Repositories, userID uuid.UUID, year, month int) ([]*entity.ServiceBill, error) {
	if err := ValidatePeriod(year, month); err != nil {
		return nil, err
	}

	services, err := repos.Services.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}

	var created []*entity.ServiceBill
	for _, service := range services {
		if !service.Active {
			continue
		}
		rules, err := repos.Services.FindRulesByService(ctx, service.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load payment rules: %w", err)
		}
		rule := entity.SelectRule(rules, year, month)
		if rule == nil {
			continue
		}

		bill := entity.NewServiceBill(service, rule, year, month)
		inserted, err := repos.Bills.CreateIfAbsent(ctx, bill)
		if err != nil {
			return nil, fmt.Errorf("failed to create bill: %w", err)
		}
		if inserted {
			created = append(created, bill)
		}
	}

	slog.Debug("Bills generated",
		"userID", userID,
		"period", fmt.Sprintf("%04d-%02d", year, month),
		"created", len(created),
	)
	return created, nil
}

// PaymentProductFor resolves the product a bill is paid from.
func (e *Engine) PaymentProductFor(ctx context.Context, repos adapter.Repositories, bill *entity.ServiceBill, productID *uuid.UUID) (*entity.Product, error) {
	if productID == nil {
		rules, err := repos.Services.FindRulesByService(ctx, bill.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to load payment rules: %w", err)
		}
		rule := entity.SelectRule(rules, bill.Year, bill.Month)
		if rule == nil || rule.DefaultProductID == nil {
			return nil, domainerror.NewBillError(
				domainerror.ErrCodeNoPaymentProduct,
				"no product given and the payment rule has no default product",
				domainerror.ErrNoPaymentProduct,
			)
		}
		productID = rule.DefaultProductID
	}
	return e.LoadProduct(ctx, repos, bill.UserID, *productID)
}

// PayBill records the expense that settles a pending bill and links it.
func (e *Engine) PayBill(ctx context.Context, repos adapter.Repositories, spec PayBillSpec) (*entity.ServiceBill, *entity.Transaction, error) {
	bill, err := e.LoadBill(ctx, repos, spec.UserID, spec.BillID)
	if err != nil {
		return nil, nil, err
	}
	if bill.Status == entity.BillStatusPaid {
		return nil, nil, billAlreadyPaid()
	}

	amount := bill.Amount
	if spec.Amount != nil {
		amount = *spec.Amount
	}
	if !amount.IsPositive() {
		return nil, nil, domainerror.NewBillError(domainerror.ErrCodeInvalidBillAmount, "amount must be positive", domainerror.ErrInvalidBillAmount)
	}

	service, err := e.LoadService(ctx, repos, spec.UserID, bill.ServiceID)
	if err != nil {
		return nil, nil, err
	}
	product, err := e.PaymentProductFor(ctx, repos, bill, spec.ProductID)
	if err != nil {
		return nil, nil, err
	}

	charged := amount
	if product.Currency != bill.Currency {
		if spec.Rate == nil || spec.Rate.FromCurrency != bill.Currency || spec.Rate.ToCurrency != product.Currency {
			return nil, nil, currencyMismatch(bill.Currency, product.Currency)
		}
		charged = spec.Rate.Convert(amount)
	}

	date := spec.Date
	if date.IsZero() {
		date = e.Today()
	}
	rows, err := e.RecordExpense(ctx, repos, ExpenseSpec{
		UserID:      spec.UserID,
		ProductID:   product.ID,
		Amount:      charged,
		Description: fmt.Sprintf("%s %04d-%02d", service.Name, bill.Year, bill.Month),
		CategoryID:  service.CategoryID,
		Date:        date,
	})
	if err != nil {
		return nil, nil, err
	}
	txn := rows[0]

	bill.Amount = amount
	bill.MarkPaid(txn.ID, txn.Date)
	if err := repos.Bills.Update(ctx, bill); err != nil {
		return nil, nil, fmt.Errorf("failed to update bill: %w", err)
	}
	return bill, txn, nil
}

// LinkBill marks a pending bill as settled by an existing expense.
func (e *Engine) LinkBill(ctx context.Context, repos adapter.Repositories, userID, billID, transactionID uuid.UUID) (*entity.ServiceBill, error) {
	bill, err := e.LoadBill(ctx, repos, userID, billID)
	if err != nil {
		return nil, err
	}
	if bill.Status == entity.BillStatusPaid {
		return nil, billAlreadyPaid()
	}

	txn, err := e.LoadTransaction(ctx, repos, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Type != entity.TransactionTypeExpense {
		return nil, billTransactionInvalid("only expenses can settle a bill")
	}
	other, err := repos.Bills.FindByTransaction(ctx, txn.ID)
	if err != nil {
		return nil, err
	}
	if other != nil {
		return nil, billTransactionInvalid("transaction already settles another bill")
	}

	bill.MarkPaid(txn.ID, txn.Date)
	if err := repos.Bills.Update(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}
	return bill, nil
}

// DeleteService removes a service with its bills and rules. Transactions that paid
// its bills are kept.
func (e *Engine) DeleteService(ctx context.Context, repos adapter.Repositories, userID, serviceID uuid.UUID) error {
	service, err := e.LoadService(ctx, repos, userID, serviceID)
	if err != nil {
		return err
	}
	if err := repos.Bills.DeleteByService(ctx, service.ID); err != nil {
		return fmt.Errorf("failed to delete bills: %w", err)
	}
	if err := repos.Services.DeleteRulesByService(ctx, service.ID); err != nil {
		return fmt.Errorf("failed to delete payment rules: %w", err)
	}
	if err := repos.Services.Delete(ctx, service.ID); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

func billAlreadyPaid() error {
	return domainerror.NewBillError(domainerror.ErrCodeBillAlreadyPaid, "bill is already paid", domainerror.ErrBillAlreadyPaid)
}

func billTransactionInvalid(message string) error {
	return domainerror.NewBillError(domainerror.ErrCodeBillTransactionInvalid, message, domainerror.ErrBillTransactionInvalid)
}
