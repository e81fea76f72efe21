package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"campusfood/internal/core/application/usecases/commands"
	"campusfood/internal/core/application/usecases/queries"
	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "object not found",
			err:  errs.NewObjectNotFoundError("orderID", "x"),
			want: http.StatusNotFound,
		},
		{
			name: "stale transition",
			err:  fmt.Errorf("%w: expected pending", order.ErrStaleTransition),
			want: http.StatusConflict,
		},
		{
			name: "already claimed",
			err:  order.ErrAlreadyClaimed,
			want: http.StatusConflict,
		},
		{
			name: "invalid transition",
			err:  fmt.Errorf("%w: no edge from delivered", order.ErrInvalidTransition),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "vendor not accepting orders",
			err:  commands.ErrVendorIsNotAcceptingOrders,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "order not delivered yet",
			err:  commands.ErrOrderIsNotDelivered,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "not the order's customer",
			err:  commands.ErrNotOrderCustomer,
			want: http.StatusForbidden,
		},
		{
			name: "missing value",
			err:  errs.NewValueIsRequiredError("deliveryLocation"),
			want: http.StatusBadRequest,
		},
		{
			name: "invalid value",
			err:  errs.NewValueIsInvalidError("status"),
			want: http.StatusBadRequest,
		},
		{
			name: "out of range value",
			err:  errs.NewValueIsOutOfRangeError("vendorRating", 9, 1, 5),
			want: http.StatusBadRequest,
		},
		{
			name: "listing without scope",
			err:  queries.ErrGetOrdersQueryScopeIsRequired,
			want: http.StatusBadRequest,
		},
		{
			name: "unclassified error",
			err:  errors.New("connection reset"),
			want: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, classify(test.err))
		})
	}
}
