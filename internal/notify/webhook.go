package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/agrimart/agri-storefront/pkg/util/errorutil"
)

// WebhookDispatcher POSTs the message as JSON. Any 2xx status is a delivery.
type WebhookDispatcher struct {
	url     string
	timeout time.Duration
	policy  RetryPolicy
	logger  *zap.Logger
}

// NewWebhookDispatcher builds a dispatcher for url.
func NewWebhookDispatcher(url string, timeout time.Duration, policy RetryPolicy, logger *zap.Logger) *WebhookDispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookDispatcher{url: url, timeout: timeout, policy: policy, logger: logger}
}

// Notify delivers msg, retrying transient failures per the dispatcher's policy.
func (d *WebhookDispatcher) Notify(ctx context.Context, msg Message) (Ack, error) {
	attempts, err := retry(ctx, d.policy, func(ctx context.Context) error {
		return d.post(ctx, msg)
	})
	ack := Ack{Attempts: attempts}
	if err != nil {
		d.logger.Warn("notification not delivered",
			zap.String("order_id", msg.OrderID),
			zap.String("status", string(msg.NewStatus)),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return ack, apperrors.NewNotificationError(err)
	}
	ack.DeliveredAt = time.Now().UTC()
	d.logger.Debug("notification delivered",
		zap.String("order_id", msg.OrderID),
		zap.String("status", string(msg.NewStatus)),
		zap.Int("attempts", attempts))
	return ack, nil
}

func (d *WebhookDispatcher) post(ctx context.Context, msg Message) error {
	timeout := d.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return context.DeadlineExceeded
	}

	agent := fiber.Post(d.url)
	agent.JSON(msg)
	agent.Timeout(timeout)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return err
	}

	status, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		return fmt.Errorf("webhook responded %d", status)
	}
	return nil
}
