package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/statement"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// StatementController handles credit card statement endpoints.
type StatementController struct {
	currentUseCase          *statement.GetCurrentStatementUseCase
	listUseCase             *statement.ListStatementsUseCase
	getUseCase              *statement.GetStatementUseCase
	closeUseCase            *statement.CloseStatementsUseCase
	addAdjustmentUseCase    *statement.AddAdjustmentUseCase
	removeAdjustmentUseCase *statement.RemoveAdjustmentUseCase
	payUseCase              *statement.PayStatementUseCase
}

// NewStatementController creates a new statement controller instance.
func NewStatementController(
	currentUseCase *statement.GetCurrentStatementUseCase,
	listUseCase *statement.ListStatementsUseCase,
	getUseCase *statement.GetStatementUseCase,
	closeUseCase *statement.CloseStatementsUseCase,
	addAdjustmentUseCase *statement.AddAdjustmentUseCase,
	removeAdjustmentUseCase *statement.RemoveAdjustmentUseCase,
	payUseCase *statement.PayStatementUseCase,
) *StatementController {
	return &StatementController{
		currentUseCase:          currentUseCase,
		listUseCase:             listUseCase,
		getUseCase:              getUseCase,
		closeUseCase:            closeUseCase,
		addAdjustmentUseCase:    addAdjustmentUseCase,
		removeAdjustmentUseCase: removeAdjustmentUseCase,
		payUseCase:              payUseCase,
	}
}

// Current handles GET /products/:id/statements/current requests.
func (c *StatementController) Current(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	productID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.currentUseCase.Execute(ctx.Request.Context(), statement.GetCurrentStatementInput{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatementResponse(output.Statement))
}

// List handles GET /products/:id/statements requests.
func (c *StatementController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	productID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), statement.ListStatementsInput{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StatementListResponse{Statements: dto.ToStatementResponses(output.Statements)})
}

// Close handles POST /products/:id/statements/close requests.
func (c *StatementController) Close(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	productID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CloseStatementsRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, "Invalid request body", err)
			return
		}
	}
	asOf, err := dto.ParseDate(req.AsOf)
	if err != nil {
		badRequest(ctx, "Invalid as_of", err)
		return
	}

	output, err := c.closeUseCase.Execute(ctx.Request.Context(), statement.CloseStatementsInput{
		UserID:    userID,
		ProductID: &productID,
		AsOf:      asOf,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CloseStatementsResponse{Closed: dto.ToStatementResponses(output.Closed)})
}

// Get handles GET /statements/:id requests.
func (c *StatementController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	statementID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), statement.GetStatementInput{
		UserID:      userID,
		StatementID: statementID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatementResponse(output.Statement))
}

// AddAdjustment handles POST /statements/:id/adjustments requests.
func (c *StatementController) AddAdjustment(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	statementID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddAdjustmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		badRequest(ctx, "Invalid amount", err)
		return
	}

	output, err := c.addAdjustmentUseCase.Execute(ctx.Request.Context(), statement.AddAdjustmentInput{
		UserID:      userID,
		StatementID: statementID,
		Kind:        entity.AdjustmentKind(req.Kind),
		Amount:      amount,
		Description: req.Description,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToStatementResponse(output.Statement))
}

// RemoveAdjustment handles DELETE /statements/:id/adjustments/:adjustmentId requests.
func (c *StatementController) RemoveAdjustment(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	statementID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	adjustmentID, ok := idParam(ctx, "adjustmentId")
	if !ok {
		return
	}

	output, err := c.removeAdjustmentUseCase.Execute(ctx.Request.Context(), statement.RemoveAdjustmentInput{
		UserID:       userID,
		StatementID:  statementID,
		AdjustmentID: adjustmentID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatementResponse(output.Statement))
}

// Pay handles POST /statements/:id/pay requests.
func (c *StatementController) Pay(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	statementID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PayStatementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	sourceID, err := dto.ParseOptionalUUID(&req.SourceProductID)
	if err != nil || sourceID == nil {
		badRequest(ctx, "Invalid source_product_id", err)
		return
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		badRequest(ctx, "Invalid date", err)
		return
	}

	output, err := c.payUseCase.Execute(ctx.Request.Context(), statement.PayStatementInput{
		UserID:          userID,
		StatementID:     statementID,
		SourceProductID: *sourceID,
		Date:            date,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PayStatementResponse{
		Statement:   dto.ToStatementResponse(output.Statement),
		Transaction: dto.ToTransactionResponse(output.Transaction),
	})
}
