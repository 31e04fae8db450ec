package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agrimart/agri-storefront/internal/auth"
	"github.com/agrimart/agri-storefront/internal/config"
	"github.com/agrimart/agri-storefront/internal/domain"
	"github.com/agrimart/agri-storefront/internal/repository"
	apperrors "github.com/agrimart/agri-storefront/pkg/util/errorutil"
)

// SessionResult is returned by sign-up and sign-in.
type SessionResult struct {
	Account   *domain.Account
	Token     string
	ExpiresAt time.Time
	Redirect  string
}

// SessionService coordinates registration, login and session resolution.
type SessionService struct {
	accounts   repository.AccountRepository
	sessions   repository.SessionRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	minPwdLen  int
	now        func() time.Time
}

// SessionDependencies encapsulates repo requirements for the session service.
type SessionDependencies struct {
	AccountRepo repository.AccountRepository
	SessionRepo repository.SessionRepository
}

// NewSessionService builds the service.
func NewSessionService(cfg config.Config, deps SessionDependencies) *SessionService {
	return &SessionService{
		accounts:   deps.AccountRepo,
		sessions:   deps.SessionRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
		minPwdLen:  cfg.Auth.MinPasswordLength,
		now:        time.Now,
	}
}

// SignUp registers a customer account and opens a session for it. Every
// account created here has the customer role.
func (s *SessionService) SignUp(ctx context.Context, email, password, displayName string) (*SessionResult, error) {
	email, err := auth.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(password, s.minPwdLen); err != nil {
		return nil, err
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = email[:strings.Index(email, "@")]
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewAuthError(apperrors.CodeEmailInUse, "email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewPersistenceError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account := &domain.Account{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewAuthError(apperrors.CodeEmailInUse, "email already registered")
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	return s.open(ctx, account)
}

// SignIn authenticates an existing account.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*SessionResult, error) {
	email, err := auth.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, apperrors.NewAuthError(apperrors.CodeInvalidCredentials, "invalid credentials")
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewAuthError(apperrors.CodeInvalidCredentials, "invalid credentials")
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, apperrors.NewAuthError(apperrors.CodeInvalidCredentials, "invalid credentials")
	}
	return s.open(ctx, account)
}

// SignOut deletes the session. The token bound to it stops resolving immediately.
func (s *SessionService) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.NewUnauthorized("no active session")
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

// Resolve turns a bearer token into the caller's identity. Tokens that fail
// verification, or whose session is gone, resolve to anonymous. A session store
// that cannot answer leaves the identity loading.
func (s *SessionService) Resolve(ctx context.Context, token string) auth.Identity {
	if token == "" {
		return auth.Anonymous()
	}
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return auth.Anonymous()
	}

	session, err := s.sessions.Get(ctx, claims.SessionID())
	if errors.Is(err, repository.ErrNotFound) {
		return auth.Anonymous()
	}
	if err != nil {
		return auth.Resolving()
	}
	if session.Expired(s.now()) || session.AccountID != claims.AccountID {
		return auth.Anonymous()
	}

	// the role is read from the account so out-of-band grants apply on the next request
	account, err := s.accounts.GetByID(ctx, session.AccountID)
	if errors.Is(err, repository.ErrNotFound) {
		return auth.Anonymous()
	}
	if err != nil {
		return auth.Resolving()
	}
	return auth.Authenticated(account, session.ID)
}

// TokenManager exposes the underlying token manager.
func (s *SessionService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *SessionService) open(ctx context.Context, account *domain.Account) (*SessionResult, error) {
	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		Role:      account.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenMgr.TTL()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	token, err := s.tokenMgr.GenerateToken(session)
	if err != nil {
		_ = s.sessions.Delete(context.WithoutCancel(ctx), session.ID)
		return nil, apperrors.NewInternalError(err)
	}
	return &SessionResult{
		Account:   account,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Redirect:  auth.RouteHome,
	}, nil
}
