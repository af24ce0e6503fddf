// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase     *transaction.ListTransactionsUseCase
	incomeUseCase   *transaction.RecordIncomeUseCase
	expenseUseCase  *transaction.RecordExpenseUseCase
	transferUseCase *transaction.RecordTransferUseCase
	updateUseCase   *transaction.UpdateTransactionUseCase
	deleteUseCase   *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	incomeUseCase *transaction.RecordIncomeUseCase,
	expenseUseCase *transaction.RecordExpenseUseCase,
	transferUseCase *transaction.RecordTransferUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:     listUseCase,
		incomeUseCase:   incomeUseCase,
		expenseUseCase:  expenseUseCase,
		transferUseCase: transferUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
		Search: ctx.Query("search"),
	}

	if productIDStr := ctx.Query("productId"); productIDStr != "" {
		id, err := uuid.Parse(productIDStr)
		if err != nil {
			badRequest(ctx, "Invalid productId format", nil)
			return
		}
		input.ProductID = &id
	}

	// Parse date filters
	if startDateStr := ctx.Query("startDate"); startDateStr != "" {
		startDate, err := time.Parse(dto.DateLayout, startDateStr)
		if err != nil {
			badRequest(ctx, "Invalid startDate format. Use YYYY-MM-DD", nil)
			return
		}
		input.StartDate = &startDate
	}
	if endDateStr := ctx.Query("endDate"); endDateStr != "" {
		endDate, err := time.Parse(dto.DateLayout, endDateStr)
		if err != nil {
			badRequest(ctx, "Invalid endDate format. Use YYYY-MM-DD", nil)
			return
		}
		input.EndDate = &endDate
	}

	if categoryIDsStr := ctx.Query("categoryIds"); categoryIDsStr != "" {
		for _, idStr := range strings.Split(categoryIDsStr, ",") {
			if id, err := uuid.Parse(strings.TrimSpace(idStr)); err == nil {
				input.CategoryIDs = append(input.CategoryIDs, id)
			}
		}
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		txnType := entity.TransactionType(strings.ToUpper(typeStr))
		input.Type = &txnType
	}

	// Parse pagination
	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			input.Page = page
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests, dispatching on the type field.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	switch entity.TransactionType(req.Type) {
	case entity.TransactionTypeIncome:
		c.recordIncome(ctx, dto.RecordIncomeRequest{
			ProductID:   req.ProductID,
			Amount:      req.Amount,
			Description: req.Description,
			Notes:       req.Notes,
			CategoryID:  req.CategoryID,
			Date:        req.Date,
		}, userID)
	case entity.TransactionTypeExpense:
		c.recordExpense(ctx, dto.RecordExpenseRequest{
			ProductID:    req.ProductID,
			Amount:       req.Amount,
			Description:  req.Description,
			Notes:        req.Notes,
			CategoryID:   req.CategoryID,
			Date:         req.Date,
			Installments: req.Installments,
		}, userID)
	default:
		c.recordTransfer(ctx, dto.RecordTransferRequest{
			FromProductID: req.FromProductID,
			ToProductID:   req.ToProductID,
			Amount:        req.Amount,
			Description:   req.Description,
			Notes:         req.Notes,
			Date:          req.Date,
		}, userID)
	}
}

// RecordIncome handles POST /transactions/income requests.
func (c *TransactionController) RecordIncome(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req dto.RecordIncomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	c.recordIncome(ctx, req, userID)
}

// RecordExpense handles POST /transactions/expense requests.
func (c *TransactionController) RecordExpense(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req dto.RecordExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	c.recordExpense(ctx, req, userID)
}

// RecordTransfer handles POST /transactions/transfer requests.
func (c *TransactionController) RecordTransfer(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req dto.RecordTransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	c.recordTransfer(ctx, req, userID)
}

func (c *TransactionController) recordIncome(ctx *gin.Context, req dto.RecordIncomeRequest, userID uuid.UUID) {
	if _, err := uuid.Parse(req.ProductID); err != nil {
		badRequest(ctx, "product_id is required", nil)
		return
	}
	input, err := req.ToInput(userID)
	if err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	output, err := c.incomeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

func (c *TransactionController) recordExpense(ctx *gin.Context, req dto.RecordExpenseRequest, userID uuid.UUID) {
	if _, err := uuid.Parse(req.ProductID); err != nil {
		badRequest(ctx, "product_id is required", nil)
		return
	}
	input, err := req.ToInput(userID)
	if err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	output, err := c.expenseUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToTransactionResponses(output.Transactions))
}

func (c *TransactionController) recordTransfer(ctx *gin.Context, req dto.RecordTransferRequest, userID uuid.UUID) {
	if _, err := uuid.Parse(req.FromProductID); err != nil {
		badRequest(ctx, "from_product_id is required", nil)
		return
	}
	if _, err := uuid.Parse(req.ToProductID); err != nil {
		badRequest(ctx, "to_product_id is required", nil)
		return
	}
	input, err := req.ToInput(userID)
	if err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	output, err := c.transferUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	input, err := req.ToInput(userID, transactionID)
	if err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests. Deleting an installment
// removes the whole purchase.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDeleteTransactionResponse(output))
}
