package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// codeInvalidRequest is reported for bodies or parameters that fail to parse.
const codeInvalidRequest = "REQ-010001"

// statusForKind maps an error kind to an HTTP status code.
func statusForKind(kind domainerror.Kind) int {
	switch kind {
	case domainerror.KindValidation:
		return http.StatusBadRequest
	case domainerror.KindNotFound:
		return http.StatusNotFound
	case domainerror.KindPolicy:
		return http.StatusUnprocessableEntity
	case domainerror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleError renders err as an ErrorResponse. Uncoded errors are logged and
// reported without detail.
func handleError(ctx *gin.Context, err error) {
	status := statusForKind(domainerror.KindOf(err))
	message := domainerror.MessageOf(err)
	if message == "" || status == http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		if message == "" {
			message = "An internal error occurred"
		}
	}

	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  domainerror.CodeOf(err),
	})
}

func badRequest(ctx *gin.Context, message string, err error) {
	response := dto.ErrorResponse{
		Error: message,
		Code:  codeInvalidRequest,
	}
	if err != nil {
		response.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, response)
}

// currentUser returns the authenticated ledger owner or writes a 401.
func currentUser(ctx *gin.Context) (uuid.UUID, bool) {
	return middleware.RequireUser(ctx)
}

// idParam parses the named path parameter or writes a 400.
func idParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		badRequest(ctx, "Invalid "+name+" format", nil)
		return uuid.Nil, false
	}
	return id, true
}
