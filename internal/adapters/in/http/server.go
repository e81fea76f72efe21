// Package http exposes the order lifecycle over a JSON API plus a
// server-sent-events stream. Authentication happens upstream; the acting
// party arrives as X-Actor-Id and X-Actor-Role headers set by the gateway.
package http

import (
	"net/http"
	"strings"

	"campusfood/internal/core/application/usecases/commands"
	"campusfood/internal/core/application/usecases/queries"
	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/order"
	"campusfood/internal/core/ports"
	"campusfood/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

const (
	headerActorID   = "X-Actor-Id"
	headerActorRole = "X-Actor-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	applyTransitionHandler  commands.ApplyTransitionCommandHandler
	claimOrderHandler       commands.ClaimOrderCommandHandler
	rateOrderHandler        commands.RateOrderCommandHandler

	// Query handlers
	getOrderHandler            queries.GetOrderQueryHandler
	getOrdersHandler           queries.GetOrdersQueryHandler
	availableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler
	deliveryHistoryHandler     queries.GetDeliveryHistoryQueryHandler

	// Change feed for the SSE stream
	subscriber ports.OrderSubscriber
}

// NewServer creates a new HTTP server with the required command and query
// handlers and the change feed subscriber backing the event stream.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	applyTransitionHandler commands.ApplyTransitionCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	rateOrderHandler commands.RateOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	availableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler,
	deliveryHistoryHandler queries.GetDeliveryHistoryQueryHandler,
	subscriber ports.OrderSubscriber,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		applyTransitionHandler:     applyTransitionHandler,
		claimOrderHandler:          claimOrderHandler,
		rateOrderHandler:           rateOrderHandler,
		getOrderHandler:            getOrderHandler,
		getOrdersHandler:           getOrdersHandler,
		availableDeliveriesHandler: availableDeliveriesHandler,
		deliveryHistoryHandler:     deliveryHistoryHandler,
		subscriber:                 subscriber,
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/orders/:orderID/transition", s.TransitionOrder)
	api.POST("/orders/:orderID/claim", s.ClaimOrder)
	api.POST("/orders/:orderID/rating", s.RateOrder)
	api.GET("/deliveries/available", s.GetAvailableDeliveries)
	api.GET("/deliveries/history", s.GetDeliveryHistory)
	api.GET("/events/stream", s.StreamEvents)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - places a new order for the
// acting customer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	if role != order.RoleCustomer {
		return ctx.JSON(http.StatusForbidden, errorResponse{
			Code:    http.StatusForbidden,
			Message: "only customers can place orders",
		})
	}

	var req createOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	vendorID, err := kernel.UUIDFromString(req.VendorID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("vendor_id", err))
	}

	items, err := parseItems(req.Items)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, actorID, vendorID, items, req.DeliveryLocation, req.DeliveryNotes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("orderID", err))
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(found))
}

// GetOrders handles GET /api/v1/orders - lists orders scoped by
// customer_id, vendor_id, or rider_id query parameters, optionally
// filtered by status.
func (s *Server) GetOrders(ctx echo.Context) error {
	customerID, err := optionalUUIDParam(ctx, "customer_id")
	if err != nil {
		return writeError(ctx, err)
	}
	vendorID, err := optionalUUIDParam(ctx, "vendor_id")
	if err != nil {
		return writeError(ctx, err)
	}
	riderID, err := optionalUUIDParam(ctx, "rider_id")
	if err != nil {
		return writeError(ctx, err)
	}

	statuses := make([]order.Status, 0)
	for _, raw := range ctx.QueryParams()["status"] {
		status, statusErr := order.StatusFromString(raw)
		if statusErr != nil {
			return writeError(ctx, statusErr)
		}
		statuses = append(statuses, status)
	}

	query, err := queries.NewGetOrdersQuery(customerID, vendorID, riderID, statuses)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, lo.Map(orders,
		func(o queries.GetOrdersQueryResponse, _ int) orderResponse {
			return toOrderResponse(o)
		}))
}

// TransitionOrder handles POST /api/v1/orders/:orderID/transition - moves
// the order to the requested status on behalf of the acting party.
// A target of "assigned" is dispatched to the claim flow so assignment
// always goes through the one-winner conditional write.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("orderID", err))
	}

	var req transitionRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return writeError(ctx, err)
	}

	if target == order.Assigned {
		if role != order.RoleRider {
			return ctx.JSON(http.StatusForbidden, errorResponse{
				Code:    http.StatusForbidden,
				Message: "only riders can claim deliveries",
			})
		}
		return s.claim(ctx, orderID, actorID)
	}

	cmd, err := commands.NewApplyTransitionCommand(orderID, target, role, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.applyTransitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClaimOrder handles POST /api/v1/orders/:orderID/claim - the acting rider
// attempts to take the order from the claimable pool.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	if role != order.RoleRider {
		return ctx.JSON(http.StatusForbidden, errorResponse{
			Code:    http.StatusForbidden,
			Message: "only riders can claim deliveries",
		})
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("orderID", err))
	}

	return s.claim(ctx, orderID, actorID)
}

func (s *Server) claim(ctx echo.Context, orderID kernel.UUID, riderID kernel.UUID) error {
	cmd, err := commands.NewClaimOrderCommand(orderID, riderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.claimOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RateOrder handles POST /api/v1/orders/:orderID/rating - the acting
// customer reviews a delivered order.
func (s *Server) RateOrder(ctx echo.Context) error {
	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	if role != order.RoleCustomer {
		return ctx.JSON(http.StatusForbidden, errorResponse{
			Code:    http.StatusForbidden,
			Message: "only customers can rate orders",
		})
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("orderID", err))
	}

	var req rateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewRateOrderCommand(orderID, actorID, req.VendorRating, req.RiderRating)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.rateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailableDeliveries handles GET /api/v1/deliveries/available -
// retrieves the claimable pool for rider dashboards.
func (s *Server) GetAvailableDeliveries(ctx echo.Context) error {
	query := queries.NewGetAvailableDeliveriesQuery()

	pool, err := s.availableDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, lo.Map(pool,
		func(d queries.GetAvailableDeliveriesQueryResponse, _ int) availableDeliveryResponse {
			return toAvailableDeliveryResponse(d)
		}))
}

// GetDeliveryHistory handles GET /api/v1/deliveries/history - the acting
// rider's completed deliveries, newest first.
func (s *Server) GetDeliveryHistory(ctx echo.Context) error {
	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	if role != order.RoleRider {
		return ctx.JSON(http.StatusForbidden, errorResponse{
			Code:    http.StatusForbidden,
			Message: "only riders have a delivery history",
		})
	}

	query, err := queries.NewGetDeliveryHistoryQuery(actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	history, err := s.deliveryHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, lo.Map(history,
		func(d queries.GetDeliveryHistoryQueryResponse, _ int) deliveryHistoryResponse {
			return toDeliveryHistoryResponse(d)
		}))
}

// actor resolves the acting party from the gateway-set identity headers.
func actor(ctx echo.Context) (kernel.UUID, order.ActorRole, error) {
	rawID := strings.TrimSpace(ctx.Request().Header.Get(headerActorID))
	if rawID == "" {
		return kernel.UUID{}, "", errs.NewValueIsRequiredError(headerActorID)
	}

	actorID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.UUID{}, "", errs.NewValueIsInvalidErrorWithCause(headerActorID, err)
	}

	role, err := order.ActorRoleFromString(
		strings.TrimSpace(ctx.Request().Header.Get(headerActorRole)))
	if err != nil {
		return kernel.UUID{}, "", err
	}

	return actorID, role, nil
}

func optionalUUIDParam(ctx echo.Context, name string) (*kernel.UUID, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &id, nil
}

func parseItems(reqItems []orderItemRequest) ([]order.Item, error) {
	items := make([]order.Item, 0, len(reqItems))
	for _, reqItem := range reqItems {
		menuItemID, err := kernel.UUIDFromString(reqItem.MenuItemID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("menu_item_id", err)
		}

		price, err := kernel.NewMoneyFromString(reqItem.UnitPrice)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(menuItemID, reqItem.Name, price, reqItem.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
