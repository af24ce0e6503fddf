package dto

import (
	"time"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// AddAdjustmentRequest represents a manual statement correction. Positive amounts
// increase what is owed.
type AddAdjustmentRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=FEE INTEREST DISCOUNT DISPUTE OTHER"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description,omitempty" binding:"omitempty,max=255"`
}

// PayStatementRequest represents the settlement of a closed statement.
type PayStatementRequest struct {
	SourceProductID string `json:"source_product_id" binding:"required,uuid"`
	Date            string `json:"date,omitempty"`
}

// CloseStatementsRequest closes the periods of a card that ended before as_of.
type CloseStatementsRequest struct {
	AsOf string `json:"as_of,omitempty"`
}

// StatementItemResponse represents a statement item.
type StatementItemResponse struct {
	ID            string `json:"id"`
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
	Description   string `json:"description"`
	LateCharge    bool   `json:"late_charge"`
}

// StatementAdjustmentResponse represents a statement adjustment.
type StatementAdjustmentResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// StatementResponse represents a credit card statement.
type StatementResponse struct {
	ID                   string                        `json:"id"`
	ProductID            string                        `json:"product_id"`
	Status               string                        `json:"status"`
	PeriodStart          string                        `json:"period_start"`
	ClosingDate          string                        `json:"closing_date"`
	DueDate              string                        `json:"due_date"`
	PaidDate             *string                       `json:"paid_date,omitempty"`
	PaymentTransactionID *string                       `json:"payment_transaction_id,omitempty"`
	CalculatedAmount     string                        `json:"calculated_amount"`
	AdjustmentsAmount    string                        `json:"adjustments_amount"`
	TotalAmount          string                        `json:"total_amount"`
	Items                []StatementItemResponse       `json:"items"`
	Adjustments          []StatementAdjustmentResponse `json:"adjustments"`
	UpdatedAt            time.Time                     `json:"updated_at"`
}

// StatementListResponse represents the statement history of a card.
type StatementListResponse struct {
	Statements []StatementResponse `json:"statements"`
}

// CloseStatementsResponse lists the statements closed by a run.
type CloseStatementsResponse struct {
	Closed      []StatementResponse `json:"closed"`
	FailedCards []string            `json:"failed_cards,omitempty"`
}

// PayStatementResponse holds the paid statement and its payment.
type PayStatementResponse struct {
	Statement   StatementResponse   `json:"statement"`
	Transaction TransactionResponse `json:"transaction"`
}

// ToStatementResponse converts a domain Statement entity to a StatementResponse DTO.
func ToStatementResponse(s *entity.Statement) StatementResponse {
	response := StatementResponse{
		ID:                   s.ID.String(),
		ProductID:            s.ProductID.String(),
		Status:               string(s.Status),
		PeriodStart:          FormatDate(s.PeriodStart),
		ClosingDate:          FormatDate(s.ClosingDate),
		DueDate:              FormatDate(s.DueDate),
		PaidDate:             FormatOptionalDate(s.PaidDate),
		PaymentTransactionID: FormatOptionalUUID(s.PaymentTransactionID),
		CalculatedAmount:     s.CalculatedAmount.String(),
		AdjustmentsAmount:    s.AdjustmentsAmount.String(),
		TotalAmount:          s.TotalAmount.String(),
		Items:                make([]StatementItemResponse, 0, len(s.Items)),
		Adjustments:          make([]StatementAdjustmentResponse, 0, len(s.Adjustments)),
		UpdatedAt:            s.UpdatedAt,
	}
	for _, item := range s.Items {
		response.Items = append(response.Items, StatementItemResponse{
			ID:            item.ID.String(),
			TransactionID: item.TransactionID.String(),
			Amount:        item.Amount.String(),
			Date:          FormatDate(item.Date),
			Description:   item.Description,
			LateCharge:    item.LateCharge,
		})
	}
	for _, adj := range s.Adjustments {
		response.Adjustments = append(response.Adjustments, ToStatementAdjustmentResponse(adj))
	}
	return response
}

// ToStatementAdjustmentResponse converts an adjustment.
func ToStatementAdjustmentResponse(adj *entity.StatementAdjustment) StatementAdjustmentResponse {
	return StatementAdjustmentResponse{
		ID:          adj.ID.String(),
		Kind:        string(adj.Kind),
		Amount:      adj.Amount.String(),
		Description: adj.Description,
		CreatedAt:   adj.CreatedAt,
	}
}

// ToStatementResponses converts a slice of statements.
func ToStatementResponses(statements []*entity.Statement) []StatementResponse {
	responses := make([]StatementResponse, 0, len(statements))
	for _, s := range statements {
		responses = append(responses, ToStatementResponse(s))
	}
	return responses
}
