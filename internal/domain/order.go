package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates fulfillment states.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPacked     OrderStatus = "packed"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// FulfillmentPath is the happy path in order. Cancelled is not part of it.
var FulfillmentPath = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusPacked,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// ParseOrderStatus maps a status token onto the status set.
func ParseOrderStatus(token string) (OrderStatus, bool) {
	status := OrderStatus(token)
	if status == OrderStatusCancelled {
		return status, true
	}
	for _, s := range FulfillmentPath {
		if s == status {
			return s, true
		}
	}
	return "", false
}

// Terminal reports whether no transition may leave the status.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Rank is the position on the fulfillment path, or -1 for cancelled and unknown tokens.
func (s OrderStatus) Rank() int {
	for i, candidate := range FulfillmentPath {
		if candidate == s {
			return i
		}
	}
	return -1
}

// ShippingAddress is the snapshot taken when the order is placed. Every field is optional.
type ShippingAddress struct {
	FullName    *string `json:"full_name,omitempty"`
	AddressLine *string `json:"address_line,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	PostalCode  *string `json:"postal_code,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}

// Deliverable reports whether every field needed for delivery is present.
func (a ShippingAddress) Deliverable() bool {
	for _, field := range []*string{a.FullName, a.AddressLine, a.City, a.State, a.PostalCode, a.Phone} {
		if field == nil || *field == "" {
			return false
		}
	}
	return true
}

// Order is a purchase and its fulfillment state.
type Order struct {
	ID              string
	AccountID       string
	Status          OrderStatus
	TotalAmount     decimal.Decimal
	ShippingAddress ShippingAddress
	TrackingNumber  *string
	Notes           *string
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
