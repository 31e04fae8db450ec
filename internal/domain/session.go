package domain

import "time"

// Session binds one Account to one client context. The bearer token carries its ID.
type Session struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
