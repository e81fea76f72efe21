package commands_test

import (
	"testing"

	"campusfood/internal/core/application/usecases/commands"
	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	customerID := kernel.NewUUID()
	vendorID := kernel.NewUUID()
	items := testItems(t)

	cmd, err := commands.NewCreateOrderCommand(id, customerID, vendorID, items, "Moremi Hall", "call on arrival")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, customerID, cmd.CustomerID())
	assert.Equal(t, vendorID, cmd.VendorID())
	assert.Len(t, cmd.Items(), 1)
	assert.Equal(t, "Moremi Hall", cmd.DeliveryLocation())
	assert.Equal(t, "call on arrival", cmd.DeliveryNotes())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewCreateOrderCommand(invalidID, kernel.NewUUID(), kernel.NewUUID(), testItems(t), "Moremi Hall", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_EmptyItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, "Moremi Hall", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_UnconstructedItem(t *testing.T) {
	items := []order.Item{{}}
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), items, "Moremi Hall", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrItemIsNotConstructed)
}

func TestNewCreateOrderCommand_EmptyDeliveryLocation(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), testItems(t), "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
