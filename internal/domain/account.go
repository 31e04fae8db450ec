package domain

import "time"

// Role gates the authorization tiers.
type Role string

const (
	RoleCustomer      Role = "customer"
	RoleAdministrator Role = "administrator"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdministrator
}

// Account is a registered storefront identity.
type Account struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// IsAdministrator reports whether the account holds the administrator role.
func (a *Account) IsAdministrator() bool {
	return a != nil && a.Role == RoleAdministrator
}
