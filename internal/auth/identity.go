package auth

import "github.com/agrimart/agri-storefront/internal/domain"

// Identity is the current caller as seen by every component: the bound account,
// its session, and whether the session is still being resolved.
type Identity struct {
	Account   *domain.Account
	SessionID string
	Loading   bool
}

// Anonymous returns an identity with no bound account.
func Anonymous() Identity {
	return Identity{}
}

// Resolving returns an identity whose session is not known yet.
func Resolving() Identity {
	return Identity{Loading: true}
}

// Authenticated returns the identity for an account bound to a session.
func Authenticated(account *domain.Account, sessionID string) Identity {
	return Identity{Account: account, SessionID: sessionID}
}

// IsAuthenticated reports whether an account is bound.
func (i Identity) IsAuthenticated() bool {
	return !i.Loading && i.Account != nil
}

// AccountID returns the bound account ID or an empty string.
func (i Identity) AccountID() string {
	if i.Account == nil {
		return ""
	}
	return i.Account.ID
}
