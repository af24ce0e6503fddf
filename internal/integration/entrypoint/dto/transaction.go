package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// RecordIncomeRequest represents the request body for recording income.
type RecordIncomeRequest struct {
	ProductID   string  `json:"product_id" binding:"required,uuid"`
	Amount      string  `json:"amount" binding:"required"`
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Notes       string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
	CategoryID  *string `json:"category_id,omitempty"`
	Date        string  `json:"date,omitempty"`
}

// ToInput converts the request into use case input.
func (r RecordIncomeRequest) ToInput(userID uuid.UUID) (transaction.RecordIncomeInput, error) {
	input := transaction.RecordIncomeInput{
		UserID:      userID,
		ProductID:   uuid.MustParse(r.ProductID),
		Description: r.Description,
		Notes:       r.Notes,
	}
	var err error
	if input.Amount, err = ParseAmount(r.Amount); err != nil {
		return input, err
	}
	if input.CategoryID, err = ParseOptionalUUID(r.CategoryID); err != nil {
		return input, err
	}
	if input.Date, err = ParseDate(r.Date); err != nil {
		return input, err
	}
	return input, nil
}

// RecordExpenseRequest represents the request body for recording an expense.
// Installments greater than one finance the purchase on a credit card.
type RecordExpenseRequest struct {
	ProductID    string  `json:"product_id" binding:"required,uuid"`
	Amount       string  `json:"amount" binding:"required"`
	Description  string  `json:"description" binding:"required,min=1,max=255"`
	Notes        string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
	CategoryID   *string `json:"category_id,omitempty"`
	Date         string  `json:"date,omitempty"`
	Installments int     `json:"installments,omitempty" binding:"omitempty,min=1,max=120"`
}

// ToInput converts the request into use case input.
func (r RecordExpenseRequest) ToInput(userID uuid.UUID) (transaction.RecordExpenseInput, error) {
	input := transaction.RecordExpenseInput{
		UserID:       userID,
		ProductID:    uuid.MustParse(r.ProductID),
		Description:  r.Description,
		Notes:        r.Notes,
		Installments: r.Installments,
	}
	var err error
	if input.Amount, err = ParseAmount(r.Amount); err != nil {
		return input, err
	}
	if input.CategoryID, err = ParseOptionalUUID(r.CategoryID); err != nil {
		return input, err
	}
	if input.Date, err = ParseDate(r.Date); err != nil {
		return input, err
	}
	return input, nil
}

// RecordTransferRequest represents the request body for a transfer between products.
type RecordTransferRequest struct {
	FromProductID string `json:"from_product_id" binding:"required,uuid"`
	ToProductID   string `json:"to_product_id" binding:"required,uuid"`
	Amount        string `json:"amount" binding:"required"`
	Description   string `json:"description" binding:"required,min=1,max=255"`
	Notes         string `json:"notes,omitempty" binding:"omitempty,max=1000"`
	Date          string `json:"date,omitempty"`
}

// ToInput converts the request into use case input.
func (r RecordTransferRequest) ToInput(userID uuid.UUID) (transaction.RecordTransferInput, error) {
	input := transaction.RecordTransferInput{
		UserID:        userID,
		FromProductID: uuid.MustParse(r.FromProductID),
		ToProductID:   uuid.MustParse(r.ToProductID),
		Description:   r.Description,
		Notes:         r.Notes,
	}
	var err error
	if input.Amount, err = ParseAmount(r.Amount); err != nil {
		return input, err
	}
	if input.Date, err = ParseDate(r.Date); err != nil {
		return input, err
	}
	return input, nil
}

// CreateTransactionRequest records any kind of transaction through one endpoint.
type CreateTransactionRequest struct {
	Type          string  `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	ProductID     string  `json:"product_id,omitempty" binding:"omitempty,uuid"`
	FromProductID string  `json:"from_product_id,omitempty" binding:"omitempty,uuid"`
	ToProductID   string  `json:"to_product_id,omitempty" binding:"omitempty,uuid"`
	Amount        string  `json:"amount" binding:"required"`
	Description   string  `json:"description" binding:"required,min=1,max=255"`
	Notes         string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
	CategoryID    *string `json:"category_id,omitempty"`
	Date          string  `json:"date,omitempty"`
	Installments  int     `json:"installments,omitempty" binding:"omitempty,min=1,max=120"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Date          *string `json:"date,omitempty"`
	Description   *string `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount        *string `json:"amount,omitempty"`
	CategoryID    *string `json:"category_id,omitempty"`
	ClearCategory bool    `json:"clear_category,omitempty"`
	Notes         *string `json:"notes,omitempty" binding:"omitempty,max=1000"`
	ProductID     *string `json:"product_id,omitempty"`
}

// ToInput converts the request into use case input.
func (r UpdateTransactionRequest) ToInput(userID, transactionID uuid.UUID) (transaction.UpdateTransactionInput, error) {
	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		Description:   r.Description,
		ClearCategory: r.ClearCategory,
		Notes:         r.Notes,
	}
	var err error
	if input.Date, err = ParseOptionalDate(r.Date); err != nil {
		return input, err
	}
	if input.Amount, err = ParseOptionalAmount(r.Amount); err != nil {
		return input, err
	}
	if input.CategoryID, err = ParseOptionalUUID(r.CategoryID); err != nil {
		return input, err
	}
	if input.ProductID, err = ParseOptionalUUID(r.ProductID); err != nil {
		return input, err
	}
	return input, nil
}

// InstallmentResponse describes the position of a row in a financed purchase.
type InstallmentResponse struct {
	GroupID string `json:"group_id"`
	Number  int    `json:"number"`
	Total   int    `json:"total"`
	Amount  string `json:"amount"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                   string               `json:"id"`
	Type                 string               `json:"type"`
	Date                 string               `json:"date"`
	Description          string               `json:"description"`
	Notes                string               `json:"notes"`
	Amount               string               `json:"amount"`
	CategoryID           *string              `json:"category_id,omitempty"`
	OriginProductID      *string              `json:"origin_product_id,omitempty"`
	DestinationProductID *string              `json:"destination_product_id,omitempty"`
	DestinationAmount    *string              `json:"destination_amount,omitempty"`
	ExchangeRate         *string              `json:"exchange_rate,omitempty"`
	Installment          *InstallmentResponse `json:"installment,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	IncomeTotal   string `json:"income_total"`
	ExpenseTotal  string `json:"expense_total"`
	TransferTotal string `json:"transfer_total"`
	NetTotal      string `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
	Totals       TransactionTotalsResponse     `json:"totals"`
}

// DeleteTransactionResponse lists every row removed by a delete.
type DeleteTransactionResponse struct {
	Deleted []string `json:"deleted"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:                   txn.ID.String(),
		Type:                 string(txn.Type),
		Date:                 FormatDate(txn.Date),
		Description:          txn.Description,
		Notes:                txn.Notes,
		Amount:               txn.Amount.String(),
		CategoryID:           FormatOptionalUUID(txn.CategoryID),
		OriginProductID:      FormatOptionalUUID(txn.OriginProductID),
		DestinationProductID: FormatOptionalUUID(txn.DestinationProductID),
		DestinationAmount:    FormatOptionalDecimal(txn.DestinationAmount),
		ExchangeRate:         FormatOptionalDecimal(txn.ExchangeRate),
		CreatedAt:            txn.CreatedAt,
		UpdatedAt:            txn.UpdatedAt,
	}

	if txn.IsInstallment() {
		response.Installment = &InstallmentResponse{GroupID: txn.InstallmentGroupID.String()}
		if txn.InstallmentNumber != nil && txn.InstallmentTotal != nil {
			response.Installment.Number = *txn.InstallmentNumber
			response.Installment.Total = *txn.InstallmentTotal
		}
		if txn.InstallmentAmount != nil {
			response.Installment.Amount = txn.InstallmentAmount.String()
		}
	}
	return response
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []*entity.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		responses = append(responses, ToTransactionResponse(txn))
	}
	return responses
}

// ToTransactionListResponse converts the list output.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	result := output.Result
	totals := output.Totals
	return TransactionListResponse{
		Transactions: ToTransactionResponses(result.Transactions),
		Pagination: TransactionPaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
		Totals: TransactionTotalsResponse{
			IncomeTotal:   totals.IncomeTotal.String(),
			ExpenseTotal:  totals.ExpenseTotal.String(),
			TransferTotal: totals.TransferTotal.String(),
			NetTotal:      totals.IncomeTotal.Sub(totals.ExpenseTotal).String(),
		},
	}
}

// ToDeleteTransactionResponse converts the delete output.
func ToDeleteTransactionResponse(output *transaction.DeleteTransactionOutput) DeleteTransactionResponse {
	response := DeleteTransactionResponse{Deleted: make([]string, 0, len(output.Deleted))}
	for _, id := range output.Deleted {
		response.Deleted = append(response.Deleted, id.String())
	}
	return response
}
