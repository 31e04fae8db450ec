package auth

import (
	"fmt"

	apperrors "github.com/agrimart/agri-storefront/pkg/util/errorutil"
)

// Navigation routes used as fallbacks for denied requests.
const (
	RouteHome  = "/"
	RouteLogin = "/login"
	RouteAdmin = "/admin"
)

// Tier is the access level an action requires.
type Tier int

const (
	TierPublic Tier = iota
	TierAuthenticated
	TierAdministrator
)

func (t Tier) String() string {
	switch t {
	case TierPublic:
		return "public"
	case TierAuthenticated:
		return "authenticated"
	case TierAdministrator:
		return "administrator"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Fallback is where a denied caller is sent.
func (t Tier) Fallback() string {
	if t == TierAdministrator {
		return RouteHome
	}
	return RouteLogin
}

// Outcome of an authorization decision. Pending is neither a grant nor a denial.
type Outcome int

const (
	Allow Outcome = iota
	Deny
	Pending
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case Pending:
		return "pending"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Decision is the result of Authorize.
type Decision struct {
	Outcome  Outcome
	Reason   string
	Redirect string
}

// Allowed reports whether the action may proceed.
func (d Decision) Allowed() bool {
	return d.Outcome == Allow
}

// Err converts the decision into the error a service returns to its caller.
func (d Decision) Err() error {
	switch d.Outcome {
	case Allow:
		return nil
	case Pending:
		return apperrors.NewSessionPending()
	default:
		return apperrors.NewForbidden(d.Reason)
	}
}

// Authorize decides whether identity may perform an action that requires tier.
func Authorize(tier Tier, identity Identity) Decision {
	if tier == TierPublic {
		return Decision{Outcome: Allow}
	}
	if identity.Loading {
		return Decision{Outcome: Pending, Reason: "session loading"}
	}
	if identity.Account == nil {
		return Decision{Outcome: Deny, Reason: "authentication required", Redirect: tier.Fallback()}
	}
	switch tier {
	case TierAuthenticated:
		return Decision{Outcome: Allow}
	case TierAdministrator:
		if identity.Account.IsAdministrator() {
			return Decision{Outcome: Allow}
		}
		return Decision{Outcome: Deny, Reason: "administrator role required", Redirect: tier.Fallback()}
	}
	return Decision{Outcome: Deny, Reason: "unknown tier", Redirect: RouteHome}
}

// Require is Authorize for service callers: nil when allowed, otherwise a
// Forbidden or SessionPending error.
func Require(tier Tier, identity Identity) error {
	return Authorize(tier, identity).Err()
}
