package domain

import "time"

// NotificationState tracks delivery of a status message to the customer.
type NotificationState string

const (
	NotificationPending NotificationState = "pending"
	NotificationSent    NotificationState = "sent"
	NotificationFailed  NotificationState = "failed"
)

// NotificationRecord keeps the outcome of a post-commit notification so that
// undelivered messages stay visible and can be re-sent.
type NotificationRecord struct {
	ID             string
	OrderID        string
	Status         OrderStatus
	TrackingNumber *string
	State          NotificationState
	Attempts       int
	LastError      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
