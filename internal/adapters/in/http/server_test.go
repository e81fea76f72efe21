package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	gohttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "campusfood/internal/adapters/in/http"
	"campusfood/internal/adapters/out/notifier"
	"campusfood/internal/core/application/usecases/commands"
	"campusfood/internal/core/application/usecases/queries"
	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/core/domain/model/rider"
	"campusfood/internal/core/domain/model/vendor"
	"campusfood/internal/core/ports"
	"campusfood/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory store satisfying the unit of work interfaces, so the HTTP
// layer can be exercised end to end without a database. Query routes
// need SQL and are covered by the integration suites instead.

type memStore struct {
	orders  map[string]*order.Order
	vendors map[string]*vendor.Vendor
	riders  map[string]*rider.RiderProfile
}

func newMemStore() *memStore {
	return &memStore{
		orders:  make(map[string]*order.Order),
		vendors: make(map[string]*vendor.Vendor),
		riders:  make(map[string]*rider.RiderProfile),
	}
}

type memUoW struct{ store *memStore }

func (u memUoW) Begin(context.Context) error    { return nil }
func (u memUoW) Commit(context.Context) error   { return nil }
func (u memUoW) Rollback(context.Context) error { return nil }

func (u memUoW) OrderRepository() ports.OrderRepository   { return memOrderRepo{u.store} }
func (u memUoW) VendorRepository() ports.VendorRepository { return memVendorRepo{u.store} }
func (u memUoW) RiderRepository() ports.RiderRepository   { return memRiderRepo{u.store} }

type orderUoWFactory struct{ store *memStore }

func (f orderUoWFactory) Create() commands.OrderUoW { return memUoW{f.store} }

type orderVendorUoWFactory struct{ store *memStore }

func (f orderVendorUoWFactory) Create() commands.OrderVendorUoW { return memUoW{f.store} }

type uowFactory struct{ store *memStore }

func (f uowFactory) Create() commands.UoW { return memUoW{f.store} }

type memOrderRepo struct{ store *memStore }

func (r memOrderRepo) Add(_ context.Context, aggregate *order.Order) error {
	r.store.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r memOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	found, ok := r.store.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id.String())
	}
	return found, nil
}

func (r memOrderRepo) UpdateStatus(_ context.Context, aggregate *order.Order, _ order.Status) error {
	r.store.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r memOrderRepo) Claim(_ context.Context, aggregate *order.Order) error {
	r.store.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r memOrderRepo) List(context.Context, ports.OrderFilter) ([]*order.Order, error) {
	return nil, nil
}

func (r memOrderRepo) ListPendingOlderThan(context.Context, time.Time) ([]*order.Order, error) {
	return nil, nil
}

type memVendorRepo struct{ store *memStore }

func (r memVendorRepo) Add(_ context.Context, entity *vendor.Vendor) error {
	r.store.vendors[entity.ID().String()] = entity
	return nil
}

func (r memVendorRepo) Update(_ context.Context, entity *vendor.Vendor) error {
	r.store.vendors[entity.ID().String()] = entity
	return nil
}

func (r memVendorRepo) Get(_ context.Context, id kernel.UUID) (*vendor.Vendor, error) {
	found, ok := r.store.vendors[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("vendorID", id.String())
	}
	return found, nil
}

type memRiderRepo struct{ store *memStore }

func (r memRiderRepo) Add(_ context.Context, profile *rider.RiderProfile) error {
	r.store.riders[profile.UserID().String()] = profile
	return nil
}

func (r memRiderRepo) Update(_ context.Context, profile *rider.RiderProfile) error {
	r.store.riders[profile.UserID().String()] = profile
	return nil
}

func (r memRiderRepo) Get(_ context.Context, userID kernel.UUID) (*rider.RiderProfile, error) {
	found, ok := r.store.riders[userID.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("riderID", userID.String())
	}
	return found, nil
}

type fixture struct {
	echo  *echo.Echo
	store *memStore
	feed  *notifier.ChannelNotifier
}

func setup(t *testing.T) fixture {
	t.Helper()

	store := newMemStore()
	feed := notifier.NewChannelNotifier(slog.Default())

	fee, err := kernel.NewMoneyFromString("100")
	require.NoError(t, err)

	server := httpadapter.NewServer(
		commands.NewCreateOrderCommandHandler(orderVendorUoWFactory{store}, feed, fee),
		commands.NewApplyTransitionCommandHandler(uowFactory{store}, feed),
		commands.NewClaimOrderCommandHandler(orderUoWFactory{store}, feed),
		commands.NewRateOrderCommandHandler(uowFactory{store}),
		queries.GetOrderQueryHandler{},
		queries.GetOrdersQueryHandler{},
		queries.GetAvailableDeliveriesQueryHandler{},
		queries.GetDeliveryHistoryQueryHandler{},
		feed,
	)

	e := echo.New()
	server.RegisterRoutes(e)

	return fixture{echo: e, store: store, feed: feed}
}

func (f fixture) do(method, path, body string, actorID kernel.UUID, role string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if role != "" {
		req.Header.Set("X-Actor-Id", actorID.String())
		req.Header.Set("X-Actor-Role", role)
	}

	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func (f fixture) addVendor(t *testing.T, active bool) *vendor.Vendor {
	t.Helper()
	seller, err := vendor.RestoreVendor(
		kernel.NewUUID(), kernel.NewUUID(), "Mama Put", "Block C Cafeteria", active, 0, 0)
	require.NoError(t, err)
	f.store.vendors[seller.ID().String()] = seller
	return seller
}

func (f fixture) addOrder(t *testing.T, status order.Status, vendorID kernel.UUID, riderID *kernel.UUID) *order.Order {
	t.Helper()

	price, err := kernel.NewMoneyFromString("1200")
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Jollof Rice", price, 2)
	require.NoError(t, err)
	fee, err := kernel.NewMoneyFromString("100")
	require.NoError(t, err)

	var code *order.ConfirmationCode
	if riderID != nil {
		parsed, codeErr := order.ConfirmationCodeFromString("123456")
		require.NoError(t, codeErr)
		code = &parsed
	}

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), vendorID, riderID, status,
		"Moremi Hall, Room 214", "", []order.Item{item},
		fee, price.MulQuantity(2).Add(fee), code, time.Now().UTC(),
	)
	require.NoError(t, err)

	f.store.orders[aggregate.ID().String()] = aggregate
	return aggregate
}

func createOrderBody(vendorID kernel.UUID) string {
	return `{
		"vendor_id": "` + vendorID.String() + `",
		"items": [
			{"menu_item_id": "` + kernel.NewUUID().String() + `", "name": "Jollof Rice", "unit_price": "1200", "quantity": 2}
		],
		"delivery_location": "Moremi Hall, Room 214",
		"delivery_notes": "call on arrival"
	}`
}

func TestCreateOrder_PlacesOrder(t *testing.T) {
	f := setup(t)
	seller := f.addVendor(t, true)
	customerID := kernel.NewUUID()

	rec := f.do(gohttp.MethodPost, "/api/v1/orders", createOrderBody(seller.ID()), customerID, "customer")

	require.Equal(t, gohttp.StatusCreated, rec.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	placed, ok := f.store.orders[resp.ID]
	require.True(t, ok, "order was not persisted")
	assert.Equal(t, order.Pending, placed.Status())
	assert.True(t, placed.CustomerID().IsEqual(customerID))
	assert.Equal(t, "2500.00", placed.TotalAmount().String())
}

func TestCreateOrder_RequiresCustomerRole(t *testing.T) {
	f := setup(t)
	seller := f.addVendor(t, true)

	rec := f.do(gohttp.MethodPost, "/api/v1/orders", createOrderBody(seller.ID()), kernel.NewUUID(), "rider")

	assert.Equal(t, gohttp.StatusForbidden, rec.Code)
	assert.Empty(t, f.store.orders)
}

func TestCreateOrder_MissingActorHeaders(t *testing.T) {
	f := setup(t)
	seller := f.addVendor(t, true)

	rec := f.do(gohttp.MethodPost, "/api/v1/orders", createOrderBody(seller.ID()), kernel.UUID{}, "")

	assert.Equal(t, gohttp.StatusBadRequest, rec.Code)
}

func TestCreateOrder_InactiveVendor(t *testing.T) {
	f := setup(t)
	seller := f.addVendor(t, false)

	rec := f.do(gohttp.MethodPost, "/api/v1/orders", createOrderBody(seller.ID()), kernel.NewUUID(), "customer")

	assert.Equal(t, gohttp.StatusUnprocessableEntity, rec.Code)
}

func TestCreateOrder_UnknownVendor(t *testing.T) {
	f := setup(t)

	rec := f.do(gohttp.MethodPost, "/api/v1/orders", createOrderBody(kernel.NewUUID()), kernel.NewUUID(), "customer")

	assert.Equal(t, gohttp.StatusNotFound, rec.Code)
}

func TestTransitionOrder_VendorConfirms(t *testing.T) {
	f := setup(t)
	seller := f.addVendor(t, true)
	placed := f.addOrder(t, order.Pending, seller.ID(), nil)

	rec := f.do(gohttp.MethodPost,
		"/api/v1/orders/"+placed.ID().String()+"/transition",
		`{"target": "confirmed"}`, seller.OwnerID(), "vendor")

	require.Equal(t, gohttp.StatusNoContent, rec.Code)
	assert.Equal(t, order.Confirmed, f.store.orders[placed.ID().String()].Status())
}

func TestTransitionOrder_CustomerCannotConfirm(t *testing.T) {
	f := setup(t)
	seller := f.addVendor(t, true)
	placed := f.addOrder(t, order.Pending, seller.ID(), nil)

	rec := f.do(gohttp.MethodPost,
		"/api/v1/orders/"+placed.ID().String()+"/transition",
		`{"target": "confirmed"}`, placed.CustomerID(), "customer")

	assert.Equal(t, gohttp.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, order.Pending, f.store.orders[placed.ID().String()].Status())
}

func TestTransitionOrder_AssignedTargetDispatchesToClaim(t *testing.T) {
	f := setup(t)
	seller := f.addVendor(t, true)
	ready := f.addOrder(t, order.Ready, seller.ID(), nil)
	riderID := kernel.NewUUID()

	rec := f.do(gohttp.MethodPost,
		"/api/v1/orders/"+ready.ID().String()+"/transition",
		`{"target": "assigned"}`, riderID, "rider")

	require.Equal(t, gohttp.StatusNoContent, rec.Code)

	claimed := f.store.orders[ready.ID().String()]
	assert.Equal(t, order.Assigned, claimed.Status())
	require.NotNil(t, claimed.Rider())
	assert.True(t, claimed.Rider().IsEqual(riderID))
	require.NotNil(t, claimed.ConfirmationCode())
}

func TestTransitionOrder_AssignedTargetRequiresRiderRole(t *testing.T) {
	f := setup(t)
	seller := f.addVendor(t, true)
	ready := f.addOrder(t, order.Ready, seller.ID(), nil)

	rec := f.do(gohttp.MethodPost,
		"/api/v1/orders/"+ready.ID().String()+"/transition",
		`{"target": "assigned"}`, ready.CustomerID(), "customer")

	assert.Equal(t, gohttp.StatusForbidden, rec.Code)
}

func TestClaimOrder_AlreadyAssigned(t *testing.T) {
	f := setup(t)
	seller := f.addVendor(t, true)
	winner := kernel.NewUUID()
	assigned := f.addOrder(t, order.Assigned, seller.ID(), &winner)

	rec := f.do(gohttp.MethodPost,
		"/api/v1/orders/"+assigned.ID().String()+"/claim",
		"", kernel.NewUUID(), "rider")

	assert.Equal(t, gohttp.StatusConflict, rec.Code)
	assert.True(t, f.store.orders[assigned.ID().String()].Rider().IsEqual(winner))
}

func TestRateOrder_DeliveredOrder(t *testing.T) {
	f := setup(t)
	seller := f.addVendor(t, true)
	riderID := kernel.NewUUID()
	delivered := f.addOrder(t, order.Delivered, seller.ID(), &riderID)

	rec := f.do(gohttp.MethodPost,
		"/api/v1/orders/"+delivered.ID().String()+"/rating",
		`{"vendor_rating": 5}`, delivered.CustomerID(), "customer")

	require.Equal(t, gohttp.StatusNoContent, rec.Code)
	assert.InDelta(t, 5.0, f.store.vendors[seller.ID().String()].Rating(), 0.001)
}

func TestRateOrder_RequiresCustomerRole(t *testing.T) {
	f := setup(t)
	seller := f.addVendor(t, true)
	riderID := kernel.NewUUID()
	delivered := f.addOrder(t, order.Delivered, seller.ID(), &riderID)

	rec := f.do(gohttp.MethodPost,
		"/api/v1/orders/"+delivered.ID().String()+"/rating",
		`{"vendor_rating": 5}`, riderID, "rider")

	assert.Equal(t, gohttp.StatusForbidden, rec.Code)
}

func TestStreamEvents_InvalidKind(t *testing.T) {
	f := setup(t)

	rec := f.do(gohttp.MethodGet, "/api/v1/events/stream?kind=admin&id=x", "", kernel.UUID{}, "")

	assert.Equal(t, gohttp.StatusBadRequest, rec.Code)
}

func TestStreamEvents_IDRequiredForScopedKinds(t *testing.T) {
	f := setup(t)

	rec := f.do(gohttp.MethodGet, "/api/v1/events/stream?kind=customer", "", kernel.UUID{}, "")

	assert.Equal(t, gohttp.StatusBadRequest, rec.Code)
}

func TestStreamEvents_DeliversEventsUntilDisconnect(t *testing.T) {
	f := setup(t)
	customerID := kernel.NewUUID()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(gohttp.MethodGet,
		"/api/v1/events/stream?kind=customer&id="+customerID.String(), nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.echo.ServeHTTP(rec, req)
	}()

	// allow the handler to attach before publishing
	time.Sleep(100 * time.Millisecond)
	f.feed.Publish(context.Background(), ports.OrderEvent{
		OrderID:    "o-1",
		CustomerID: customerID.String(),
		VendorID:   "v-1",
		Status:     order.Confirmed,
		OccurredAt: time.Now().UTC(),
	})
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream handler did not stop on disconnect")
	}

	body := rec.Body.String()
	assert.Contains(t, body, "event: order")
	assert.Contains(t, body, `"order_id":"o-1"`)
}
