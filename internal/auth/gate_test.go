package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrimart/agri-storefront/internal/domain"
	apperrors "github.com/agrimart/agri-storefront/pkg/util/errorutil"
)

func customer() *domain.Account {
	return &domain.Account{ID: "c-1", Email: "asha@x.com", Role: domain.RoleCustomer}
}

func administrator() *domain.Account {
	return &domain.Account{ID: "a-1", Email: "admin@x.com", Role: domain.RoleAdministrator}
}

func TestAuthorizePublicAlwaysAllows(t *testing.T) {
	for _, identity := range []Identity{Anonymous(), Resolving(), Authenticated(customer(), "s")} {
		assert.Equal(t, Allow, Authorize(TierPublic, identity).Outcome)
	}
}

func TestAuthorizePendingIffLoading(t *testing.T) {
	identities := []Identity{
		Anonymous(),
		Resolving(),
		Authenticated(customer(), "s1"),
		Authenticated(administrator(), "s2"),
		{Account: administrator(), Loading: true},
	}
	for _, tier := range []Tier{TierAuthenticated, TierAdministrator} {
		for _, identity := range identities {
			decision := Authorize(tier, identity)
			assert.Equal(t, identity.Loading, decision.Outcome == Pending, "tier %s loading=%v", tier, identity.Loading)
			if identity.Loading {
				assert.Empty(t, decision.Redirect)
			}
		}
	}
}

func TestAuthorizeAuthenticated(t *testing.T) {
	denied := Authorize(TierAuthenticated, Anonymous())
	assert.Equal(t, Deny, denied.Outcome)
	assert.Equal(t, RouteLogin, denied.Redirect)

	assert.True(t, Authorize(TierAuthenticated, Authenticated(customer(), "s")).Allowed())
}

func TestAuthorizeAdministrator(t *testing.T) {
	t.Run("administrator allowed on both tiers", func(t *testing.T) {
		identity := Authenticated(administrator(), "s")
		assert.Equal(t, Allow, Authorize(TierAdministrator, identity).Outcome)
		assert.Equal(t, Allow, Authorize(TierAuthenticated, identity).Outcome)
	})

	t.Run("customer denied and sent home", func(t *testing.T) {
		decision := Authorize(TierAdministrator, Authenticated(customer(), "s"))
		assert.Equal(t, Deny, decision.Outcome)
		assert.Equal(t, RouteHome, decision.Redirect)
	})

	t.Run("anonymous sent home", func(t *testing.T) {
		decision := Authorize(TierAdministrator, Anonymous())
		assert.Equal(t, Deny, decision.Outcome)
		assert.Equal(t, RouteHome, decision.Redirect)
	})
}

func TestRequireErrors(t *testing.T) {
	assert.NoError(t, Require(TierAdministrator, Authenticated(administrator(), "s")))
	assert.True(t, apperrors.HasCode(Require(TierAdministrator, Authenticated(customer(), "s")), apperrors.CodeForbidden))
	assert.True(t, apperrors.HasCode(Require(TierAuthenticated, Resolving()), apperrors.CodeSessionPending))
}
