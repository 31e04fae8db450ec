package domain

import "time"

// OrderHistory is an immutable audit entry for one committed transition.
type OrderHistory struct {
	ID             string
	OrderID        string
	ChangedBy      string
	OldStatus      OrderStatus
	NewStatus      OrderStatus
	TrackingNumber *string
	CreatedAt      time.Time
}
