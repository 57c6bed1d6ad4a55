package handlers

import (
	"errors"
	"net/http"

	"cotacao_service/internal/adapter/importer"
	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/infrastructure/logging"
	"cotacao_service/internal/usecase"
	"cotacao_service/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errInvalidFile    = pkg.NewDomainErrorSimple("INVALID_FILE", "Expected an .xlsx file in the \"file\" form field", http.StatusBadRequest)
)

func mapError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainError("FORBIDDEN", "You cannot change this quotation", err, http.StatusForbidden)
	case errors.Is(err, entities.ErrConcurrentModification):
		return pkg.NewDomainError("CONCURRENT_MODIFICATION", "The quotation was changed by another request, reload and retry", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrQuotationLocked):
		return pkg.NewDomainError("QUOTATION_LOCKED", "The quotation cannot be edited in its current status", err, http.StatusConflict)
	case errors.Is(err, entities.ErrInvalidStateTransition):
		return pkg.NewDomainError("INVALID_STATE_TRANSITION", err.Error(), err, http.StatusConflict)
	case errors.Is(err, entities.ErrIncompleteOffer):
		return pkg.NewDomainError("INCOMPLETE_OFFER", err.Error(), err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrQuotationNotFound):
		return pkg.NewDomainErrorSimple("QUOTATION_NOT_FOUND", "Quotation not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSavingNotFound):
		return pkg.NewDomainErrorSimple("SAVING_NOT_FOUND", "Saving record not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainError("NOT_FOUND", err.Error(), err, http.StatusNotFound)
	case errors.Is(err, importer.ErrInvalidWorkbook):
		return pkg.NewDomainError("INVALID_FILE", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrValidation):
		return pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// writeError maps err to its AppError response. Unexpected errors are logged
// with the request path; domain refusals are left to the use case logs.
func writeError(c *gin.Context, logger *logrus.Logger, funcName string, err error) {
	appErr := mapError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logging.LogError(logger, "handlers", funcName, c.FullPath(), c.Params, err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func writeAppError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
