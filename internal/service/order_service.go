package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/agrimart/agri-storefront/internal/auth"
	"github.com/agrimart/agri-storefront/internal/domain"
	"github.com/agrimart/agri-storefront/internal/repository"
	apperrors "github.com/agrimart/agri-storefront/pkg/util/errorutil"
)

// OrderService serves order placement and order reads.
type OrderService struct {
	orders        repository.OrderRepository
	history       repository.OrderHistoryRepository
	notifications repository.NotificationRepository
}

// OrderDependencies bundles repositories for the order service.
type OrderDependencies struct {
	OrderRepo        repository.OrderRepository
	HistoryRepo      repository.OrderHistoryRepository
	NotificationRepo repository.NotificationRepository
}

// PlaceOrderInput describes a checkout.
type PlaceOrderInput struct {
	TotalAmount     decimal.Decimal
	ShippingAddress domain.ShippingAddress
	Notes           *string
}

// OrderListFilter describes listing filters.
type OrderListFilter struct {
	Statuses []domain.OrderStatus
	Limit    int
	Offset   int
}

// OrderTimeline is the audit view of one order.
type OrderTimeline struct {
	Order         *domain.Order
	History       []domain.OrderHistory
	Notifications []domain.NotificationRecord
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:        deps.OrderRepo,
		history:       deps.HistoryRepo,
		notifications: deps.NotificationRepo,
	}
}

// PlaceOrder creates a pending order owned by the caller.
func (s *OrderService) PlaceOrder(ctx context.Context, identity auth.Identity, input PlaceOrderInput) (*domain.Order, error) {
	if err := auth.Require(auth.TierAuthenticated, identity); err != nil {
		return nil, err
	}
	if !input.TotalAmount.IsPositive() {
		return nil, apperrors.NewValidationError("total amount must be positive",
			map[string]any{"total_amount": input.TotalAmount.String()})
	}

	order := &domain.Order{
		AccountID:       identity.AccountID(),
		Status:          domain.OrderStatusPending,
		TotalAmount:     input.TotalAmount,
		ShippingAddress: input.ShippingAddress,
		Notes:           input.Notes,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, storeError("order", err)
	}
	return order, nil
}

// ListMine returns the caller's own orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, identity auth.Identity, filter OrderListFilter) ([]domain.Order, error) {
	if err := auth.Require(auth.TierAuthenticated, identity); err != nil {
		return nil, err
	}
	accountID := identity.AccountID()
	orders, err := s.orders.ListWithFilter(ctx, repository.OrderFilter{
		AccountID: &accountID,
		Statuses:  filter.Statuses,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	})
	if err != nil {
		return nil, storeError("order", err)
	}
	return orders, nil
}

// GetMine returns one of the caller's orders. Orders of other accounts are reported as missing.
func (s *OrderService) GetMine(ctx context.Context, identity auth.Identity, orderID string) (*domain.Order, error) {
	if err := auth.Require(auth.TierAuthenticated, identity); err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, storeError("order", err)
	}
	if order.AccountID != identity.AccountID() {
		return nil, apperrors.NewNotFound("order", nil)
	}
	return order, nil
}

// ListAll returns every order.
func (s *OrderService) ListAll(ctx context.Context, identity auth.Identity, filter OrderListFilter) ([]domain.Order, error) {
	if err := auth.Require(auth.TierAdministrator, identity); err != nil {
		return nil, err
	}
	orders, err := s.orders.ListWithFilter(ctx, repository.OrderFilter{
		Statuses: filter.Statuses,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	})
	if err != nil {
		return nil, storeError("order", err)
	}
	return orders, nil
}

// Get returns any order.
func (s *OrderService) Get(ctx context.Context, identity auth.Identity, orderID string) (*domain.Order, error) {
	if err := auth.Require(auth.TierAdministrator, identity); err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, storeError("order", err)
	}
	return order, nil
}

// Timeline returns an order with its transition history and notification records.
func (s *OrderService) Timeline(ctx context.Context, identity auth.Identity, orderID string) (*OrderTimeline, error) {
	order, err := s.Get(ctx, identity, orderID)
	if err != nil {
		return nil, err
	}
	history, err := s.history.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, storeError("order history", err)
	}
	records, err := s.notifications.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, storeError("notification", err)
	}
	return &OrderTimeline{Order: order, History: history, Notifications: records}, nil
}
