package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LogDispatcher only logs the message. It is used when no delivery channel is configured.
type LogDispatcher struct {
	logger *zap.Logger
}

// NewLogDispatcher constructs the dispatcher.
func NewLogDispatcher(logger *zap.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// Notify logs msg and always succeeds.
func (d *LogDispatcher) Notify(_ context.Context, msg Message) (Ack, error) {
	fields := []zap.Field{
		zap.String("order_id", msg.OrderID),
		zap.String("status", string(msg.NewStatus)),
	}
	if msg.TrackingNumber != nil {
		fields = append(fields, zap.String("tracking_number", *msg.TrackingNumber))
	}
	d.logger.Info("order status notification", fields...)
	return Ack{Attempts: 1, DeliveredAt: time.Now().UTC()}, nil
}
