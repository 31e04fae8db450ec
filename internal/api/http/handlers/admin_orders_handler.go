package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrimart/agri-storefront/internal/api/dto"
	"github.com/agrimart/agri-storefront/internal/auth"
	"github.com/agrimart/agri-storefront/internal/service"
)

// AdminOrdersHandler serves order management for administrators.
type AdminOrdersHandler struct {
	orders   Orders
	workflow Workflow
}

// NewAdminOrdersHandler constructs handler.
func NewAdminOrdersHandler(orders Orders, workflow Workflow) *AdminOrdersHandler {
	return &AdminOrdersHandler{orders: orders, workflow: workflow}
}

// ListOrders GET /admin/orders.
func (h *AdminOrdersHandler) ListOrders(c *fiber.Ctx) error {
	filter, err := orderListFilter(c)
	if err != nil {
		return err
	}
	orders, err := h.orders.ListAll(c.UserContext(), auth.IdentityFromContext(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponses(orders)})
}

// GetOrder GET /admin/orders/:id.
func (h *AdminOrdersHandler) GetOrder(c *fiber.Ctx) error {
	timeline, err := h.orders.Timeline(c.UserContext(), auth.IdentityFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderDetail(timeline)})
}

// UpdateStatus POST /admin/orders/:id/status.
// A failed customer notification does not fail the request; it is reported in the notification block.
func (h *AdminOrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	result, err := h.workflow.Transition(c.UserContext(), auth.IdentityFromContext(c), service.TransitionInput{
		OrderID:         c.Params("id"),
		Status:          req.Status,
		TrackingNumber:  req.TrackingNumber,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TransitionResponse{
		Order:        dto.NewOrderResponse(result.Order),
		Notification: notificationResponse(result.Notification),
	}})
}

// RetryNotification POST /admin/orders/:id/notifications/retry.
func (h *AdminOrdersHandler) RetryNotification(c *fiber.Ctx) error {
	outcome, err := h.workflow.RetryNotification(c.UserContext(), auth.IdentityFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": notificationResponse(*outcome)})
}

func notificationResponse(outcome service.NotificationOutcome) dto.NotificationResponse {
	return dto.NotificationResponse{
		Delivered: outcome.Delivered,
		Attempts:  outcome.Attempts,
		Warning:   outcome.Warning,
	}
}

func orderDetail(timeline *service.OrderTimeline) dto.OrderDetailResponse {
	history := make([]dto.OrderHistoryResponse, 0, len(timeline.History))
	for _, entry := range timeline.History {
		history = append(history, dto.OrderHistoryResponse{
			ID:             entry.ID,
			ChangedBy:      entry.ChangedBy,
			OldStatus:      entry.OldStatus,
			NewStatus:      entry.NewStatus,
			TrackingNumber: entry.TrackingNumber,
			CreatedAt:      entry.CreatedAt,
		})
	}
	records := make([]dto.NotificationRecordResponse, 0, len(timeline.Notifications))
	for _, record := range timeline.Notifications {
		records = append(records, dto.NotificationRecordResponse{
			ID:        record.ID,
			Status:    record.Status,
			State:     record.State,
			Attempts:  record.Attempts,
			LastError: record.LastError,
			UpdatedAt: record.UpdatedAt,
		})
	}
	return dto.OrderDetailResponse{
		OrderResponse: dto.NewOrderResponse(timeline.Order),
		Deliverable:   timeline.Order.ShippingAddress.Deliverable(),
		History:       history,
		Notifications: records,
	}
}
