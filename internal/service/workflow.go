package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/agrimart/agri-storefront/internal/auth"
	"github.com/agrimart/agri-storefront/internal/config"
	"github.com/agrimart/agri-storefront/internal/domain"
	"github.com/agrimart/agri-storefront/internal/notify"
	"github.com/agrimart/agri-storefront/internal/observability"
	"github.com/agrimart/agri-storefront/internal/repository"
	apperrors "github.com/agrimart/agri-storefront/pkg/util/errorutil"
)

// NotificationWarning is reported when an order was updated but its customer message was not delivered.
const NotificationWarning = "order updated, message not delivered"

// TransitionInput is an administrator's request to move an order to a new status.
type TransitionInput struct {
	OrderID string
	Status  string
	// TrackingNumber nil or blank leaves the stored value untouched.
	TrackingNumber  *string
	ExpectedVersion *int
}

// NotificationOutcome reports the customer message that followed a committed change.
type NotificationOutcome struct {
	Delivered bool
	Attempts  int
	Warning   string
	Err       error
}

// TransitionResult is the committed order plus the notification outcome.
type TransitionResult struct {
	Order        *domain.Order
	Notification NotificationOutcome
}

// OrderWorkflow applies status transitions and notifies customers.
type OrderWorkflow struct {
	orders        repository.OrderRepository
	history       repository.OrderHistoryRepository
	notifications repository.NotificationRepository
	dispatcher    notify.Dispatcher
	metrics       *observability.Metrics
	logger        *zap.Logger

	policy        config.TransitionPolicy
	writeTimeout  time.Duration
	notifyTimeout time.Duration
}

// WorkflowDependencies bundles collaborators for the workflow.
type WorkflowDependencies struct {
	OrderRepo        repository.OrderRepository
	HistoryRepo      repository.OrderHistoryRepository
	NotificationRepo repository.NotificationRepository
	Dispatcher       notify.Dispatcher
	Metrics          *observability.Metrics
	Logger           *zap.Logger
}

// NewOrderWorkflow constructs the workflow.
func NewOrderWorkflow(cfg config.Config, deps WorkflowDependencies) *OrderWorkflow {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	writeTimeout := cfg.App.RequestTimeout()
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	policy := cfg.Workflow.Policy
	if policy == "" {
		policy = config.PolicyLinear
	}
	return &OrderWorkflow{
		orders:        deps.OrderRepo,
		history:       deps.HistoryRepo,
		notifications: deps.NotificationRepo,
		dispatcher:    deps.Dispatcher,
		metrics:       deps.Metrics,
		logger:        logger,
		policy:        policy,
		writeTimeout:  writeTimeout,
		notifyTimeout: cfg.Workflow.NotifyTimeout(),
	}
}

// TransitionAllowed reports whether policy permits moving an order from one status to another.
// Terminal statuses are final under every policy.
func TransitionAllowed(policy config.TransitionPolicy, from, to domain.OrderStatus) bool {
	if from.Terminal() || from.Rank() < 0 {
		return false
	}
	if policy == config.PolicyPermissive {
		return true
	}
	if to == domain.OrderStatusCancelled || to == from {
		return true
	}
	return to.Rank() > from.Rank()
}

// Transition moves an order to input.Status. The status write commits before the
// customer is notified, and a failed notification never undoes it: the result
// then carries a warning and the error is nil.
func (w *OrderWorkflow) Transition(ctx context.Context, identity auth.Identity, input TransitionInput) (*TransitionResult, error) {
	if err := auth.Require(auth.TierAdministrator, identity); err != nil {
		w.metrics.Inc(observability.MetricTransitionRejected)
		return nil, err
	}

	token := strings.TrimSpace(input.Status)
	target, ok := domain.ParseOrderStatus(token)
	if !ok {
		w.metrics.Inc(observability.MetricTransitionRejected)
		return nil, apperrors.NewInvalidStatus(token)
	}

	order, err := w.orders.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, storeError("order", err)
	}
	if !TransitionAllowed(w.policy, order.Status, target) {
		w.metrics.Inc(observability.MetricTransitionRejected)
		return nil, apperrors.NewInvalidTransition(string(order.Status), string(target))
	}
	if input.ExpectedVersion != nil && *input.ExpectedVersion != order.Version {
		w.metrics.Inc(observability.MetricTransitionConflict)
		return nil, apperrors.NewConflict("order was modified concurrently",
			map[string]any{"expected_version": *input.ExpectedVersion, "current_version": order.Version})
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.writeTimeout)
	updated, err := w.orders.ApplyStatusPatch(writeCtx, repository.StatusPatch{
		OrderID:         order.ID,
		ExpectedVersion: order.Version,
		Status:          target,
		TrackingNumber:  trackingPatch(input.TrackingNumber),
	})
	cancel()
	if err != nil {
		mapped := storeError("order", err)
		if apperrors.HasCode(mapped, apperrors.CodeConflict) {
			w.metrics.Inc(observability.MetricTransitionConflict)
		}
		w.logger.Warn("order transition not committed",
			zap.String("order_id", order.ID),
			zap.String("to", string(target)),
			zap.Error(err))
		return nil, mapped
	}
	w.metrics.Inc(observability.MetricTransitionCommitted)

	w.appendHistory(ctx, identity, order.Status, updated)

	record := &domain.NotificationRecord{
		OrderID:        updated.ID,
		Status:         updated.Status,
		TrackingNumber: updated.TrackingNumber,
		State:          domain.NotificationPending,
	}
	return &TransitionResult{Order: updated, Notification: w.deliver(ctx, record)}, nil
}

// RetryNotification re-sends the newest undelivered message for an order when
// it still describes the order's current status. The order itself is not touched.
func (w *OrderWorkflow) RetryNotification(ctx context.Context, identity auth.Identity, orderID string) (*NotificationOutcome, error) {
	if err := auth.Require(auth.TierAdministrator, identity); err != nil {
		return nil, err
	}
	record, err := w.notifications.LatestUndelivered(ctx, orderID)
	if err != nil {
		return nil, storeError("undelivered notification", err)
	}
	order, err := w.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, storeError("order", err)
	}
	// a message for a status the order has already left must not reach the customer
	if record.Status != order.Status {
		return nil, apperrors.NewConflict("notification is outdated", map[string]any{
			"notification_status": string(record.Status),
			"order_status":        string(order.Status),
		})
	}
	outcome := w.deliver(ctx, record)
	return &outcome, nil
}

// deliver invokes the dispatcher exactly once and records the outcome. A
// record without an ID is created first.
func (w *OrderWorkflow) deliver(ctx context.Context, record *domain.NotificationRecord) NotificationOutcome {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.notifyTimeout)
	defer cancel()

	tracked := true
	if record.ID == "" {
		if err := w.notifications.Create(ctx, record); err != nil {
			tracked = false
			w.metrics.Inc(observability.MetricNotificationRecordFailed)
			w.logger.Warn("notification record not stored", zap.String("order_id", record.OrderID), zap.Error(err))
		}
	}

	ack, err := w.dispatcher.Notify(ctx, notify.Message{
		OrderID:        record.OrderID,
		NewStatus:      record.Status,
		TrackingNumber: record.TrackingNumber,
	})
	if err != nil && !apperrors.HasCode(err, apperrors.CodeNotification) {
		err = apperrors.NewNotificationError(err)
	}

	record.Attempts += ack.Attempts
	if err != nil {
		msg := err.Error()
		record.State = domain.NotificationFailed
		record.LastError = &msg
	} else {
		record.State = domain.NotificationSent
		record.LastError = nil
	}
	if tracked {
		if uerr := w.notifications.Update(ctx, record); uerr != nil {
			w.metrics.Inc(observability.MetricNotificationRecordFailed)
			w.logger.Warn("notification record not updated", zap.String("order_id", record.OrderID), zap.Error(uerr))
		}
	}

	if err != nil {
		w.metrics.Inc(observability.MetricNotificationFailed)
		return NotificationOutcome{Attempts: ack.Attempts, Warning: NotificationWarning, Err: err}
	}
	w.metrics.Inc(observability.MetricNotificationSent)
	return NotificationOutcome{Delivered: true, Attempts: ack.Attempts}
}

func (w *OrderWorkflow) appendHistory(ctx context.Context, identity auth.Identity, from domain.OrderStatus, order *domain.Order) {
	entry := &domain.OrderHistory{
		OrderID:        order.ID,
		ChangedBy:      identity.AccountID(),
		OldStatus:      from,
		NewStatus:      order.Status,
		TrackingNumber: order.TrackingNumber,
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.writeTimeout)
	defer cancel()
	if err := w.history.Create(ctx, entry); err != nil {
		w.logger.Warn("order history not recorded", zap.String("order_id", order.ID), zap.Error(err))
	}
}

func trackingPatch(tracking *string) *string {
	if tracking == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*tracking)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
