package commands_test

import (
	"testing"
	"time"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/core/domain/model/vendor"

	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Jollof Rice", mustMoney(t, "1200"), 2)
	require.NoError(t, err)
	return []order.Item{item}
}

// orderAt restores an order in the given status. The rider reference and
// confirmation code are attached exactly when the status requires them.
func orderAt(t *testing.T, status order.Status, customerID, vendorID kernel.UUID, riderID *kernel.UUID) *order.Order {
	t.Helper()

	var code *order.ConfirmationCode
	if riderID != nil {
		c, err := order.ConfirmationCodeFromString("123456")
		require.NoError(t, err)
		code = &c
	}

	o, err := order.RestoreOrder(
		kernel.NewUUID(), customerID, vendorID, riderID, status,
		"Moremi Hall", "", testItems(t),
		mustMoney(t, "100"), mustMoney(t, "2500"), code, time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

func activeVendor(t *testing.T, ownerID kernel.UUID) *vendor.Vendor {
	t.Helper()
	v, err := vendor.NewVendor(kernel.NewUUID(), ownerID, "Mama Put", "Student Union Building")
	require.NoError(t, err)
	return v
}
