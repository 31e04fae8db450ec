package handlers

import (
	"context"

	"github.com/agrimart/agri-storefront/internal/auth"
	"github.com/agrimart/agri-storefront/internal/domain"
	"github.com/agrimart/agri-storefront/internal/service"
)

// Sessions is the part of service.SessionService the handlers use.
type Sessions interface {
	SignUp(ctx context.Context, email, password, displayName string) (*service.SessionResult, error)
	SignIn(ctx context.Context, email, password string) (*service.SessionResult, error)
	SignOut(ctx context.Context, sessionID string) error
}

// Orders is the part of service.OrderService the handlers use.
type Orders interface {
	PlaceOrder(ctx context.Context, identity auth.Identity, input service.PlaceOrderInput) (*domain.Order, error)
	ListMine(ctx context.Context, identity auth.Identity, filter service.OrderListFilter) ([]domain.Order, error)
	GetMine(ctx context.Context, identity auth.Identity, orderID string) (*domain.Order, error)
	ListAll(ctx context.Context, identity auth.Identity, filter service.OrderListFilter) ([]domain.Order, error)
	Timeline(ctx context.Context, identity auth.Identity, orderID string) (*service.OrderTimeline, error)
}

// Workflow is the part of service.OrderWorkflow the handlers use.
type Workflow interface {
	Transition(ctx context.Context, identity auth.Identity, input service.TransitionInput) (*service.TransitionResult, error)
	RetryNotification(ctx context.Context, identity auth.Identity, orderID string) (*service.NotificationOutcome, error)
}

// Catalog is the part of service.CatalogService the handlers use.
type Catalog interface {
	Create(ctx context.Context, identity auth.Identity, input service.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, identity auth.Identity, id string, patch service.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, identity auth.Identity, id string) error
	Get(ctx context.Context, identity auth.Identity, id string) (*domain.Product, error)
	ListAll(ctx context.Context, identity auth.Identity, filter service.ProductListFilter) ([]domain.Product, error)
	ListActive(ctx context.Context, filter service.ProductListFilter) ([]domain.Product, error)
}
