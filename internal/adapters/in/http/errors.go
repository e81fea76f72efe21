package http

import (
	"errors"
	"net/http"

	"campusfood/internal/core/application/usecases/commands"
	"campusfood/internal/core/application/usecases/queries"
	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps domain and application errors onto the API's status
// codes. Unclassified errors become a generic 500 so internals never
// leak to clients.
func writeError(ctx echo.Context, err error) error {
	status := classify(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: message,
	})
}

func classify(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrStaleTransition),
		errors.Is(err, order.ErrAlreadyClaimed):
		return http.StatusConflict
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, commands.ErrVendorIsNotAcceptingOrders),
		errors.Is(err, commands.ErrOrderIsNotDelivered):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commands.ErrNotOrderCustomer):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, queries.ErrGetOrdersQueryScopeIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
