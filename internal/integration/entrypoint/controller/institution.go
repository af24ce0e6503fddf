package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/institution"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// InstitutionController lists the institutions seeded by operators.
type InstitutionController struct {
	listUseCase *institution.ListInstitutionsUseCase
}

// NewInstitutionController creates a new institution controller instance.
func NewInstitutionController(listUseCase *institution.ListInstitutionsUseCase) *InstitutionController {
	return &InstitutionController{listUseCase: listUseCase}
}

// List handles GET /institutions requests.
func (c *InstitutionController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToInstitutionListResponse(output.Institutions))
}
