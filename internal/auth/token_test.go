package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrimart/agri-storefront/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	now := time.Now()
	session := &domain.Session{
		ID:        "sess-1",
		AccountID: "acc-1",
		Role:      domain.RoleAdministrator,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	token, err := tm.GenerateToken(session)
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID())
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, domain.RoleAdministrator, claims.Role)
}

func TestParseTokenRejectsForeignAndExpired(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("other", time.Hour)
	now := time.Now()

	token, err := other.GenerateToken(&domain.Session{ID: "s", AccountID: "a", CreatedAt: now, ExpiresAt: now.Add(time.Hour)})
	require.NoError(t, err)
	_, err = tm.ParseToken(token)
	assert.Error(t, err)

	expired, err := tm.GenerateToken(&domain.Session{ID: "s", AccountID: "a", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)})
	require.NoError(t, err)
	_, err = tm.ParseToken(expired)
	assert.Error(t, err)
}
