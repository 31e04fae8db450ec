// Package notify delivers order status messages to customers. Dispatchers own
// their retry policy; callers see a single result per Notify call.
package notify

import (
	"context"
	"time"

	"github.com/agrimart/agri-storefront/internal/domain"
)

// Message is the outbound payload for a status change.
type Message struct {
	OrderID        string             `json:"order_id"`
	NewStatus      domain.OrderStatus `json:"new_status"`
	TrackingNumber *string            `json:"tracking_number,omitempty"`
}

// Ack describes a delivery attempt sequence. Attempts is set on failure too.
type Ack struct {
	Attempts    int
	DeliveredAt time.Time
}

// Dispatcher sends a status message to the customer of an order.
type Dispatcher interface {
	Notify(ctx context.Context, msg Message) (Ack, error)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, msg Message) (Ack, error)

// Notify calls f.
func (f DispatcherFunc) Notify(ctx context.Context, msg Message) (Ack, error) {
	return f(ctx, msg)
}
