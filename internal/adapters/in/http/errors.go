package http

import (
	"errors"
	"net/http"

	"millflow/internal/core/domain/model/processing"
	"millflow/internal/core/domain/model/transfer"
	"millflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps a use case error to an HTTP status. Validation failures
// are 400, missing objects 404, refused capabilities 403, lost version
// checks 409, and violated workflow rules 422.
func writeError(ctx echo.Context, err error) error {
	return ctx.JSON(statusFor(err), ErrorResponse{
		Code:    statusFor(err),
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrInsufficientWeight),
		errors.Is(err, errs.ErrAlreadyResolved),
		errors.Is(err, errs.ErrAlreadyTransferred),
		errors.Is(err, errs.ErrNegativeBalance),
		errors.Is(err, errs.ErrOutOfOrder),
		errors.Is(err, errs.ErrHandoverRequired),
		errors.Is(err, errs.ErrMissingDestination),
		errors.Is(err, processing.ErrRecordIsTerminal),
		errors.Is(err, processing.ErrNotSortingStage),
		errors.Is(err, processing.ErrSortingAlreadyApproved),
		errors.Is(err, processing.ErrSortingNotApproved),
		errors.Is(err, processing.ErrSortingResultMissing),
		errors.Is(err, processing.ErrHandoverNotMandatory),
		errors.Is(err, processing.ErrHandoverAlreadyRequested),
		errors.Is(err, processing.ErrHandoverNotRequested),
		errors.Is(err, processing.ErrHandoverSelfConfirm),
		errors.Is(err, transfer.ErrSelfApproval):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
