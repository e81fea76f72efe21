package http

import (
	"time"

	"campusfood/internal/core/application/usecases/queries"

	"github.com/samber/lo"
)

// Wire types for the JSON API. Monetary amounts travel as decimal strings
// with kobo precision.

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createOrderRequest struct {
	VendorID         string             `json:"vendor_id"`
	Items            []orderItemRequest `json:"items"`
	DeliveryLocation string             `json:"delivery_location"`
	DeliveryNotes    string             `json:"delivery_notes"`
}

type orderItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	UnitPrice  string `json:"unit_price"`
	Quantity   int    `json:"quantity"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

type transitionRequest struct {
	Target string `json:"target"`
}

type rateOrderRequest struct {
	VendorRating int `json:"vendor_rating"`
	RiderRating  int `json:"rider_rating"`
}

type orderItemResponse struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	UnitPrice  string `json:"unit_price"`
	Quantity   int    `json:"quantity"`
}

type orderResponse struct {
	ID               string              `json:"id"`
	CustomerID       string              `json:"customer_id"`
	VendorID         string              `json:"vendor_id"`
	RiderID          *string             `json:"rider_id,omitempty"`
	Status           string              `json:"status"`
	DeliveryLocation string              `json:"delivery_location"`
	DeliveryNotes    string              `json:"delivery_notes,omitempty"`
	DeliveryFee      string              `json:"delivery_fee"`
	TotalAmount      string              `json:"total_amount"`
	ConfirmationCode string              `json:"confirmation_code,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	Items            []orderItemResponse `json:"items"`
}

type availableDeliveryResponse struct {
	ID               string    `json:"id"`
	VendorID         string    `json:"vendor_id"`
	VendorName       string    `json:"vendor_name"`
	VendorLocation   string    `json:"vendor_location"`
	DeliveryLocation string    `json:"delivery_location"`
	DeliveryFee      string    `json:"delivery_fee"`
	TotalAmount      string    `json:"total_amount"`
	CreatedAt        time.Time `json:"created_at"`
}

type deliveryHistoryResponse struct {
	ID               string    `json:"id"`
	VendorID         string    `json:"vendor_id"`
	VendorName       string    `json:"vendor_name"`
	DeliveryLocation string    `json:"delivery_location"`
	DeliveryFee      string    `json:"delivery_fee"`
	TotalAmount      string    `json:"total_amount"`
	CreatedAt        time.Time `json:"created_at"`
}

func toOrderResponse(o queries.GetOrdersQueryResponse) orderResponse {
	resp := orderResponse{
		ID:               o.ID.String(),
		CustomerID:       o.CustomerID.String(),
		VendorID:         o.VendorID.String(),
		Status:           o.Status.String(),
		DeliveryLocation: o.DeliveryLocation,
		DeliveryNotes:    o.DeliveryNotes,
		DeliveryFee:      o.DeliveryFee.String(),
		TotalAmount:      o.TotalAmount.String(),
		ConfirmationCode: o.ConfirmationCode,
		CreatedAt:        o.CreatedAt,
		Items: lo.Map(o.Items, func(item queries.GetOrdersQueryItem, _ int) orderItemResponse {
			return orderItemResponse{
				MenuItemID: item.MenuItemID.String(),
				Name:       item.Name,
				UnitPrice:  item.UnitPrice.String(),
				Quantity:   item.Quantity,
			}
		}),
	}
	if o.RiderID != nil {
		riderID := o.RiderID.String()
		resp.RiderID = &riderID
	}
	return resp
}

func toAvailableDeliveryResponse(d queries.GetAvailableDeliveriesQueryResponse) availableDeliveryResponse {
	return availableDeliveryResponse{
		ID:               d.ID.String(),
		VendorID:         d.VendorID.String(),
		VendorName:       d.VendorName,
		VendorLocation:   d.VendorLocation,
		DeliveryLocation: d.DeliveryLocation,
		DeliveryFee:      d.DeliveryFee.String(),
		TotalAmount:      d.TotalAmount.String(),
		CreatedAt:        d.CreatedAt,
	}
}

func toDeliveryHistoryResponse(d queries.GetDeliveryHistoryQueryResponse) deliveryHistoryResponse {
	return deliveryHistoryResponse{
		ID:               d.ID.String(),
		VendorID:         d.VendorID.String(),
		VendorName:       d.VendorName,
		DeliveryLocation: d.DeliveryLocation,
		DeliveryFee:      d.DeliveryFee.String(),
		TotalAmount:      d.TotalAmount.String(),
		CreatedAt:        d.CreatedAt,
	}
}
