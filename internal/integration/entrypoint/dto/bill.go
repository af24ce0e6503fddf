package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/usecase/bill"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CreateServiceRequest represents the request body for registering a service.
type CreateServiceRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=255"`
	DefaultAmount string  `json:"default_amount" binding:"required"`
	Currency      string  `json:"currency" binding:"required"`
	CategoryID    *string `json:"category_id,omitempty"`
}

// UpdateServiceRequest represents the request body for service update.
type UpdateServiceRequest struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	DefaultAmount *string `json:"default_amount,omitempty"`
	CategoryID    *string `json:"category_id,omitempty"`
	ClearCategory bool    `json:"clear_category,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

// CreateRuleRequest represents a payment rule for a service.
type CreateRuleRequest struct {
	DueDay           int     `json:"due_day" binding:"required,min=1,max=31"`
	DefaultProductID *string `json:"default_product_id,omitempty"`
	StartYear        int     `json:"start_year" binding:"required"`
	StartMonth       int     `json:"start_month" binding:"required,min=1,max=12"`
	EndYear          *int    `json:"end_year,omitempty"`
	EndMonth         *int    `json:"end_month,omitempty" binding:"omitempty,min=1,max=12"`
}

// GenerateBillsRequest selects the period to generate bills for.
type GenerateBillsRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// PayBillRequest represents the payment of a bill. Product and amount default to
// the payment rule's product and the bill amount.
type PayBillRequest struct {
	ProductID *string `json:"product_id,omitempty"`
	Amount    *string `json:"amount,omitempty"`
	Date      string  `json:"date,omitempty"`
}

// LinkBillRequest links an existing expense to a bill.
type LinkBillRequest struct {
	TransactionID string `json:"transaction_id" binding:"required,uuid"`
}

// UpdateBillRequest changes a pending bill.
type UpdateBillRequest struct {
	Amount  *string `json:"amount,omitempty"`
	DueDate *string `json:"due_date,omitempty"`
}

// ToInput converts the request into use case input.
func (r CreateServiceRequest) ToInput(userID uuid.UUID) (bill.CreateServiceInput, error) {
	input := bill.CreateServiceInput{
		UserID:   userID,
		Name:     r.Name,
		Currency: r.Currency,
	}
	var err error
	if input.DefaultAmount, err = ParseAmount(r.DefaultAmount); err != nil {
		return input, err
	}
	if input.CategoryID, err = ParseOptionalUUID(r.CategoryID); err != nil {
		return input, err
	}
	return input, nil
}

// ToInput converts the request into use case input.
func (r UpdateServiceRequest) ToInput(userID, serviceID uuid.UUID) (bill.UpdateServiceInput, error) {
	input := bill.UpdateServiceInput{
		UserID:        userID,
		ServiceID:     serviceID,
		Name:          r.Name,
		ClearCategory: r.ClearCategory,
		Active:        r.Active,
	}
	var err error
	if input.DefaultAmount, err = ParseOptionalAmount(r.DefaultAmount); err != nil {
		return input, err
	}
	if input.CategoryID, err = ParseOptionalUUID(r.CategoryID); err != nil {
		return input, err
	}
	return input, nil
}

// ToInput converts the request into use case input.
func (r CreateRuleRequest) ToInput(userID, serviceID uuid.UUID) (bill.CreateRuleInput, error) {
	input := bill.CreateRuleInput{
		UserID:     userID,
		ServiceID:  serviceID,
		DueDay:     r.DueDay,
		StartYear:  r.StartYear,
		StartMonth: r.StartMonth,
		EndYear:    r.EndYear,
		EndMonth:   r.EndMonth,
	}
	var err error
	if input.DefaultProductID, err = ParseOptionalUUID(r.DefaultProductID); err != nil {
		return input, err
	}
	return input, nil
}

// ToInput converts the request into use case input.
func (r PayBillRequest) ToInput(userID, billID uuid.UUID) (bill.PayBillInput, error) {
	input := bill.PayBillInput{UserID: userID, BillID: billID}
	var err error
	if input.ProductID, err = ParseOptionalUUID(r.ProductID); err != nil {
		return input, err
	}
	if input.Amount, err = ParseOptionalAmount(r.Amount); err != nil {
		return input, err
	}
	if input.Date, err = ParseDate(r.Date); err != nil {
		return input, err
	}
	return input, nil
}

// ToInput converts the request into use case input.
func (r UpdateBillRequest) ToInput(userID, billID uuid.UUID) (bill.UpdateBillInput, error) {
	input := bill.UpdateBillInput{UserID: userID, BillID: billID}
	var err error
	if input.Amount, err = ParseOptionalAmount(r.Amount); err != nil {
		return input, err
	}
	if input.DueDate, err = ParseOptionalDate(r.DueDate); err != nil {
		return input, err
	}
	return input, nil
}

// PaymentRuleResponse represents a service payment rule.
type PaymentRuleResponse struct {
	ID               string  `json:"id"`
	DueDay           int     `json:"due_day"`
	DefaultProductID *string `json:"default_product_id,omitempty"`
	StartYear        int     `json:"start_year"`
	StartMonth       int     `json:"start_month"`
	EndYear          *int    `json:"end_year,omitempty"`
	EndMonth         *int    `json:"end_month,omitempty"`
}

// ServiceResponse represents a recurring service.
type ServiceResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	DefaultAmount MoneyResponse         `json:"default_amount"`
	CategoryID    *string               `json:"category_id,omitempty"`
	Active        bool                  `json:"active"`
	Rules         []PaymentRuleResponse `json:"rules,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ServiceListResponse represents the response for listing services.
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// BillResponse represents one period's bill.
type BillResponse struct {
	ID            string        `json:"id"`
	ServiceID     string        `json:"service_id"`
	Year          int           `json:"year"`
	Month         int           `json:"month"`
	DueDate       string        `json:"due_date"`
	Amount        MoneyResponse `json:"amount"`
	Status        string        `json:"status"`
	Overdue       bool          `json:"overdue"`
	PaidDate      *string       `json:"paid_date,omitempty"`
	TransactionID *string       `json:"transaction_id,omitempty"`
}

// BillListResponse represents a list of bills.
type BillListResponse struct {
	Bills []BillResponse `json:"bills"`
}

// PayBillResponse holds the paid bill and its expense.
type PayBillResponse struct {
	Bill        BillResponse        `json:"bill"`
	Transaction TransactionResponse `json:"transaction"`
}

// ToPaymentRuleResponse converts a payment rule.
func ToPaymentRuleResponse(rule *entity.ServicePaymentRule) PaymentRuleResponse {
	return PaymentRuleResponse{
		ID:               rule.ID.String(),
		DueDay:           rule.DueDay,
		DefaultProductID: FormatOptionalUUID(rule.DefaultProductID),
		StartYear:        rule.StartYear,
		StartMonth:       rule.StartMonth,
		EndYear:          rule.EndYear,
		EndMonth:         rule.EndMonth,
	}
}

// ToServiceResponse converts a service with its rules.
func ToServiceResponse(service *entity.Service, rules []*entity.ServicePaymentRule) ServiceResponse {
	response := ServiceResponse{
		ID:            service.ID.String(),
		Name:          service.Name,
		DefaultAmount: NewMoneyResponse(service.DefaultAmount, service.Currency),
		CategoryID:    FormatOptionalUUID(service.CategoryID),
		Active:        service.Active,
		CreatedAt:     service.CreatedAt,
		UpdatedAt:     service.UpdatedAt,
	}
	for _, rule := range rules {
		response.Rules = append(response.Rules, ToPaymentRuleResponse(rule))
	}
	return response
}

// ToServiceListResponse converts the list output.
func ToServiceListResponse(output *bill.ListServicesOutput) ServiceListResponse {
	response := ServiceListResponse{Services: make([]ServiceResponse, 0, len(output.Services))}
	for _, s := range output.Services {
		response.Services = append(response.Services, ToServiceResponse(s, output.Rules[s.ID]))
	}
	return response
}

// ToBillResponse converts a bill with its derived overdue flag.
func ToBillResponse(b *entity.ServiceBill, overdue bool) BillResponse {
	return BillResponse{
		ID:            b.ID.String(),
		ServiceID:     b.ServiceID.String(),
		Year:          b.Year,
		Month:         b.Month,
		DueDate:       FormatDate(b.DueDate),
		Amount:        NewMoneyResponse(b.Amount, b.Currency),
		Status:        string(b.Status),
		Overdue:       overdue,
		PaidDate:      FormatOptionalDate(b.PaidDate),
		TransactionID: FormatOptionalUUID(b.TransactionID),
	}
}

// ToBillListResponse converts bill views.
func ToBillListResponse(views []bill.BillView) BillListResponse {
	response := BillListResponse{Bills: make([]BillResponse, 0, len(views))}
	for _, v := range views {
		response.Bills = append(response.Bills, ToBillResponse(v.Bill, v.Overdue))
	}
	return response
}

// ToCreatedBillsResponse converts freshly generated bills, none of which are overdue
// in their own period.
func ToCreatedBillsResponse(bills []*entity.ServiceBill) BillListResponse {
	response := BillListResponse{Bills: make([]BillResponse, 0, len(bills))}
	for _, b := range bills {
		response.Bills = append(response.Bills, ToBillResponse(b, false))
	}
	return response
}
