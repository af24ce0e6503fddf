package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/bill"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// BillController handles recurring service and bill endpoints.
type BillController struct {
	createServiceUseCase *bill.CreateServiceUseCase
	updateServiceUseCase *bill.UpdateServiceUseCase
	deleteServiceUseCase *bill.DeleteServiceUseCase
	listServicesUseCase  *bill.ListServicesUseCase
	createRuleUseCase    *bill.CreateRuleUseCase
	deleteRuleUseCase    *bill.DeleteRuleUseCase
	generateUseCase      *bill.GenerateBillsUseCase
	listUseCase          *bill.ListBillsUseCase
	overdueUseCase       *bill.ListOverdueBillsUseCase
	payUseCase           *bill.PayBillUseCase
	linkUseCase          *bill.LinkBillUseCase
	updateUseCase        *bill.UpdateBillUseCase
	clock                func() time.Time
}

// BillUseCases groups the use cases served by BillController.
type BillUseCases struct {
	CreateService *bill.CreateServiceUseCase
	UpdateService *bill.UpdateServiceUseCase
	DeleteService *bill.DeleteServiceUseCase
	ListServices  *bill.ListServicesUseCase
	CreateRule    *bill.CreateRuleUseCase
	DeleteRule    *bill.DeleteRuleUseCase
	Generate      *bill.GenerateBillsUseCase
	List          *bill.ListBillsUseCase
	Overdue       *bill.ListOverdueBillsUseCase
	Pay           *bill.PayBillUseCase
	Link          *bill.LinkBillUseCase
	Update        *bill.UpdateBillUseCase
}

// NewBillController creates a new bill controller instance. clock supplies the
// viewing period when a request names none.
func NewBillController(useCases BillUseCases, clock func() time.Time) *BillController {
	return &BillController{
		createServiceUseCase: useCases.CreateService,
		updateServiceUseCase: useCases.UpdateService,
		deleteServiceUseCase: useCases.DeleteService,
		listServicesUseCase:  useCases.ListServices,
		createRuleUseCase:    useCases.CreateRule,
		deleteRuleUseCase:    useCases.DeleteRule,
		generateUseCase:      useCases.Generate,
		listUseCase:          useCases.List,
		overdueUseCase:       useCases.Overdue,
		payUseCase:           useCases.Pay,
		linkUseCase:          useCases.Link,
		updateUseCase:        useCases.Update,
		clock:                clock,
	}
}

// ListServices handles GET /services requests.
func (c *BillController) ListServices(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.listServicesUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToServiceListResponse(output))
}

// CreateService handles POST /services requests.
func (c *BillController) CreateService(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateServiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	input, err := req.ToInput(userID)
	if err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.createServiceUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToServiceResponse(output.Service, nil))
}

// UpdateService handles PATCH /services/:id requests.
func (c *BillController) UpdateService(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	serviceID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateServiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	input, err := req.ToInput(userID, serviceID)
	if err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.updateServiceUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToServiceResponse(output.Service, nil))
}

// DeleteService handles DELETE /services/:id requests.
func (c *BillController) DeleteService(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	serviceID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	err := c.deleteServiceUseCase.Execute(ctx.Request.Context(), bill.DeleteServiceInput{
		UserID:    userID,
		ServiceID: serviceID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CreateRule handles POST /services/:id/rules requests.
func (c *BillController) CreateRule(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	serviceID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	input, err := req.ToInput(userID, serviceID)
	if err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.createRuleUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPaymentRuleResponse(output.Rule))
}

// DeleteRule handles DELETE /services/:id/rules/:ruleId requests.
func (c *BillController) DeleteRule(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	serviceID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	ruleID, ok := idParam(ctx, "ruleId")
	if !ok {
		return
	}

	err := c.deleteRuleUseCase.Execute(ctx.Request.Context(), bill.DeleteRuleInput{
		UserID:    userID,
		ServiceID: serviceID,
		RuleID:    ruleID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Generate handles POST /bills/generate requests.
func (c *BillController) Generate(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.GenerateBillsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), bill.GenerateBillsInput{
		UserID: userID,
		Year:   req.Year,
		Month:  req.Month,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCreatedBillsResponse(output.Created))
}

// List handles GET /bills?year=&month= requests. The period defaults to the
// current month and is also the viewing period for the overdue flag.
func (c *BillController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	year, month, ok := c.period(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), bill.ListBillsInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillListResponse(output.Bills))
}

// Overdue handles GET /bills/overdue?year=&month= requests.
func (c *BillController) Overdue(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	year, month, ok := c.period(ctx)
	if !ok {
		return
	}

	output, err := c.overdueUseCase.Execute(ctx.Request.Context(), bill.ListBillsInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillListResponse(output.Bills))
}

// Update handles PATCH /bills/:id requests.
func (c *BillController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	billID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	input, err := req.ToInput(userID, billID)
	if err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	now := c.clock()
	ctx.JSON(http.StatusOK, dto.ToBillResponse(updated, updated.IsOverdue(now.Year(), int(now.Month()))))
}

// Pay handles POST /bills/:id/pay requests.
func (c *BillController) Pay(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	billID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PayBillRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, "Invalid request body", err)
			return
		}
	}
	input, err := req.ToInput(userID, billID)
	if err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.payUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PayBillResponse{
		Bill:        dto.ToBillResponse(output.Bill, false),
		Transaction: dto.ToTransactionResponse(output.Transaction),
	})
}

// Link handles POST /bills/:id/link requests.
func (c *BillController) Link(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	billID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.LinkBillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	transactionID, err := dto.ParseOptionalUUID(&req.TransactionID)
	if err != nil || transactionID == nil {
		badRequest(ctx, "Invalid transaction_id", err)
		return
	}

	linked, err := c.linkUseCase.Execute(ctx.Request.Context(), bill.LinkBillInput{
		UserID:        userID,
		BillID:        billID,
		TransactionID: *transactionID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillResponse(linked, false))
}

// period reads ?year=&month=, defaulting to the current month.
func (c *BillController) period(ctx *gin.Context) (int, int, bool) {
	now := c.clock()
	year, month := now.Year(), int(now.Month())

	if s := ctx.Query("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			badRequest(ctx, "Invalid year", nil)
			return 0, 0, false
		}
		year = v
	}
	if s := ctx.Query("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			badRequest(ctx, "Invalid month", nil)
			return 0, 0, false
		}
		month = v
	}
	return year, month, true
}
