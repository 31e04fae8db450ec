package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrimart/agri-storefront/internal/domain"
)

// PlaceOrderRequest payload for checkout.
type PlaceOrderRequest struct {
	TotalAmount     decimal.Decimal        `json:"total_amount"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	Notes           *string                `json:"notes"`
}

// TransitionRequest payload for POST /admin/orders/:id/status.
type TransitionRequest struct {
	Status          string  `json:"status"`
	TrackingNumber  *string `json:"tracking_number"`
	ExpectedVersion *int    `json:"expected_version"`
}

// OrderResponse is the order view shared by customer and admin endpoints.
type OrderResponse struct {
	ID              string                 `json:"id"`
	AccountID       string                 `json:"account_id"`
	Status          domain.OrderStatus     `json:"status"`
	TotalAmount     decimal.Decimal        `json:"total_amount"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	TrackingNumber  *string                `json:"tracking_number"`
	Notes           *string                `json:"notes"`
	Version         int                    `json:"version"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// NotificationResponse reports the customer message that followed a transition.
type NotificationResponse struct {
	Delivered bool   `json:"delivered"`
	Attempts  int    `json:"attempts"`
	Warning   string `json:"warning,omitempty"`
}

// TransitionResponse is returned by a committed transition.
type TransitionResponse struct {
	Order        OrderResponse        `json:"order"`
	Notification NotificationResponse `json:"notification"`
}

// OrderHistoryResponse is one audit entry.
type OrderHistoryResponse struct {
	ID             string             `json:"id"`
	ChangedBy      string             `json:"changed_by"`
	OldStatus      domain.OrderStatus `json:"old_status"`
	NewStatus      domain.OrderStatus `json:"new_status"`
	TrackingNumber *string            `json:"tracking_number"`
	CreatedAt      time.Time          `json:"created_at"`
}

// NotificationRecordResponse is the stored delivery state of one message.
type NotificationRecordResponse struct {
	ID        string                   `json:"id"`
	Status    domain.OrderStatus       `json:"status"`
	State     domain.NotificationState `json:"state"`
	Attempts  int                      `json:"attempts"`
	LastError *string                  `json:"last_error"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// OrderDetailResponse is the admin view of one order.
type OrderDetailResponse struct {
	OrderResponse
	Deliverable   bool                         `json:"deliverable"`
	History       []OrderHistoryResponse       `json:"history"`
	Notifications []NotificationRecordResponse `json:"notifications"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID,
		AccountID:       order.AccountID,
		Status:          order.Status,
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		TrackingNumber:  order.TrackingNumber,
		Notes:           order.Notes,
		Version:         order.Version,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
