package queries_test

import (
	"testing"

	"campusfood/internal/core/application/usecases/queries"
	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAvailableDeliveriesQuery(t *testing.T) {
	query := queries.NewGetAvailableDeliveriesQuery()
	require.NoError(t, query.Validate())
}

func TestGetAvailableDeliveriesQuery_Validate_NotConstructed(t *testing.T) {
	query := queries.GetAvailableDeliveriesQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetAvailableDeliveriesQueryIsNotConstructed)
}

func TestNewGetOrdersQuery_CustomerScope(t *testing.T) {
	customerID := kernel.NewUUID()
	query, err := queries.NewGetOrdersQuery(&customerID, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, &customerID, query.CustomerID())
	assert.Nil(t, query.VendorID())
	assert.Nil(t, query.RiderID())
	assert.Empty(t, query.Statuses())
}

func TestNewGetOrdersQuery_WithStatusFilter(t *testing.T) {
	vendorID := kernel.NewUUID()
	statuses := []order.Status{order.Pending, order.Confirmed}
	query, err := queries.NewGetOrdersQuery(nil, &vendorID, nil, statuses)
	require.NoError(t, err)
	assert.Equal(t, statuses, query.Statuses())
}

func TestNewGetOrdersQuery_NoScope(t *testing.T) {
	_, err := queries.NewGetOrdersQuery(nil, nil, nil, nil)
	require.ErrorIs(t, err, queries.ErrGetOrdersQueryScopeIsRequired)
}

func TestNewGetOrdersQuery_UnknownStatus(t *testing.T) {
	customerID := kernel.NewUUID()
	_, err := queries.NewGetOrdersQuery(&customerID, nil, nil, []order.Status{"shipped"})
	require.Error(t, err)
}

func TestNewGetOrdersQuery_InvalidScopeID(t *testing.T) {
	var zero kernel.UUID
	_, err := queries.NewGetOrdersQuery(&zero, nil, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewGetOrderQuery(t *testing.T) {
	orderID := kernel.NewUUID()
	query, err := queries.NewGetOrderQuery(orderID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, orderID, query.OrderID())
}

func TestNewGetOrderQuery_InvalidOrderID(t *testing.T) {
	var zero kernel.UUID
	_, err := queries.NewGetOrderQuery(zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewGetDeliveryHistoryQuery(t *testing.T) {
	riderID := kernel.NewUUID()
	query, err := queries.NewGetDeliveryHistoryQuery(riderID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, riderID, query.RiderID())
}

func TestNewGetDeliveryHistoryQuery_InvalidRiderID(t *testing.T) {
	var zero kernel.UUID
	_, err := queries.NewGetDeliveryHistoryQuery(zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
