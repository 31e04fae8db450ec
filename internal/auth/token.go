package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/agrimart/agri-storefront/internal/domain"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Claims describes JWT payload. The session ID doubles as the token ID so that
// deleting the session revokes the token.
type Claims struct {
	AccountID string      `json:"account_id"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// SessionID returns the session the token is bound to.
func (c *Claims) SessionID() string {
	return c.ID
}

// GenerateToken builds and signs a JWT for the session.
func (tm *TokenManager) GenerateToken(session *domain.Session) (string, error) {
	claims := &Claims{
		AccountID: session.AccountID,
		Role:      session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   session.AccountID,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// ParseToken validates and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
