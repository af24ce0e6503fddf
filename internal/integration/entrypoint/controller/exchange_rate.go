package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/exchangerate"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// ExchangeRateController handles exchange rate endpoints.
type ExchangeRateController struct {
	setUseCase    *exchangerate.SetRateUseCase
	latestUseCase *exchangerate.GetLatestRateUseCase
	listUseCase   *exchangerate.ListRatesUseCase
}

// NewExchangeRateController creates a new exchange rate controller instance.
func NewExchangeRateController(
	setUseCase *exchangerate.SetRateUseCase,
	latestUseCase *exchangerate.GetLatestRateUseCase,
	listUseCase *exchangerate.ListRatesUseCase,
) *ExchangeRateController {
	return &ExchangeRateController{
		setUseCase:    setUseCase,
		latestUseCase: latestUseCase,
		listUseCase:   listUseCase,
	}
}

// List handles GET /exchange-rates requests.
func (c *ExchangeRateController) List(ctx *gin.Context) {
	rates, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToExchangeRateListResponse(rates))
}

// Latest handles GET /exchange-rates/latest?from=&to= requests.
func (c *ExchangeRateController) Latest(ctx *gin.Context) {
	from, to := ctx.Query("from"), ctx.Query("to")
	if from == "" || to == "" {
		badRequest(ctx, "from and to are required", nil)
		return
	}

	rate, err := c.latestUseCase.Execute(ctx.Request.Context(), from, to)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// Set handles POST /exchange-rates requests.
func (c *ExchangeRateController) Set(ctx *gin.Context) {
	var req dto.SetRateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	value, err := dto.ParseAmount(req.Rate)
	if err != nil {
		badRequest(ctx, "Invalid rate", err)
		return
	}
	var effectiveAt time.Time
	if req.EffectiveAt != "" {
		effectiveAt, err = time.Parse(time.RFC3339, req.EffectiveAt)
		if err != nil {
			badRequest(ctx, "Invalid effective_at, use RFC 3339", err)
			return
		}
	}

	rate, err := c.setUseCase.Execute(ctx.Request.Context(), exchangerate.SetRateInput{
		From:        req.From,
		To:          req.To,
		Rate:        value,
		EffectiveAt: effectiveAt,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}
