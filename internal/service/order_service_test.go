package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrimart/agri-storefront/internal/auth"
	"github.com/agrimart/agri-storefront/internal/config"
	"github.com/agrimart/agri-storefront/internal/domain"
	apperrors "github.com/agrimart/agri-storefront/pkg/util/errorutil"
)

func newOrderFixture() (*OrderService, *fakeOrderRepo) {
	orders := newFakeOrderRepo()
	svc := NewOrderService(OrderDependencies{
		OrderRepo:        orders,
		HistoryRepo:      &fakeHistoryRepo{},
		NotificationRepo: newFakeNotificationRepo(),
	})
	return svc, orders
}

func TestPlaceOrder(t *testing.T) {
	svc, _ := newOrderFixture()
	ctx := context.Background()

	order, err := svc.PlaceOrder(ctx, customerIdentity("cust-1"), PlaceOrderInput{
		TotalAmount:     decimal.RequireFromString("42.50"),
		ShippingAddress: domain.ShippingAddress{City: strPtr("Nakuru")},
		Notes:           strPtr("leave at gate"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "cust-1", order.AccountID)
	assert.Equal(t, 1, order.Version)
	assert.Nil(t, order.TrackingNumber)

	_, err = svc.PlaceOrder(ctx, customerIdentity("cust-1"), PlaceOrderInput{TotalAmount: decimal.Zero})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	_, err = svc.PlaceOrder(ctx, customerIdentity("cust-1"), PlaceOrderInput{TotalAmount: decimal.NewFromInt(-3)})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestPlaceOrderNeedsAccount(t *testing.T) {
	svc, orders := newOrderFixture()

	_, err := svc.PlaceOrder(context.Background(), auth.Anonymous(), PlaceOrderInput{TotalAmount: decimal.NewFromInt(1)})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	_, err = svc.PlaceOrder(context.Background(), auth.Resolving(), PlaceOrderInput{TotalAmount: decimal.NewFromInt(1)})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeSessionPending))
	assert.Zero(t, orders.callCount())
}

func TestCustomersSeeOnlyTheirOrders(t *testing.T) {
	svc, _ := newOrderFixture()
	ctx := context.Background()

	mine, err := svc.PlaceOrder(ctx, customerIdentity("cust-1"), PlaceOrderInput{TotalAmount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	theirs, err := svc.PlaceOrder(ctx, customerIdentity("cust-2"), PlaceOrderInput{TotalAmount: decimal.NewFromInt(20)})
	require.NoError(t, err)

	list, err := svc.ListMine(ctx, customerIdentity("cust-1"), OrderListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	_, err = svc.GetMine(ctx, customerIdentity("cust-1"), theirs.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	got, err := svc.GetMine(ctx, customerIdentity("cust-1"), mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)
}

func TestAdminOrderReads(t *testing.T) {
	svc, orders := newOrderFixture()
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, customerIdentity("cust-1"), PlaceOrderInput{TotalAmount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	second, err := svc.PlaceOrder(ctx, customerIdentity("cust-2"), PlaceOrderInput{TotalAmount: decimal.NewFromInt(20)})
	require.NoError(t, err)

	before := orders.callCount()
	_, err = svc.ListAll(ctx, customerIdentity("cust-1"), OrderListFilter{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	assert.Equal(t, before, orders.callCount())

	all, err := svc.ListAll(ctx, adminIdentity(), OrderListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	got, err := svc.Get(ctx, adminIdentity(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, "cust-2", got.AccountID)
}

func TestTimelineIncludesHistoryAndNotifications(t *testing.T) {
	orders := newFakeOrderRepo(pendingOrder("7"))
	history := &fakeHistoryRepo{}
	notifications := newFakeNotificationRepo()
	workflow := NewOrderWorkflow(config.Config{}, WorkflowDependencies{
		OrderRepo:        orders,
		HistoryRepo:      history,
		NotificationRepo: notifications,
		Dispatcher:       &fakeDispatcher{},
	})
	svc := NewOrderService(OrderDependencies{OrderRepo: orders, HistoryRepo: history, NotificationRepo: notifications})
	ctx := context.Background()

	_, err := workflow.Transition(ctx, adminIdentity(), TransitionInput{OrderID: "7", Status: "confirmed"})
	require.NoError(t, err)

	timeline, err := svc.Timeline(ctx, adminIdentity(), "7")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, timeline.Order.Status)
	assert.Len(t, timeline.History, 1)
	assert.Len(t, timeline.Notifications, 1)

	_, err = svc.Timeline(ctx, customerIdentity("cust-1"), "7")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
}
