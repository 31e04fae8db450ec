package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agrimart/agri-storefront/internal/api/dto"
	"github.com/agrimart/agri-storefront/internal/auth"
	"github.com/agrimart/agri-storefront/internal/domain"
	"github.com/agrimart/agri-storefront/internal/service"
)

// OrdersHandler serves the customer order endpoints.
type OrdersHandler struct {
	orders Orders
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders Orders) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// PlaceOrder POST /orders.
func (h *OrdersHandler) PlaceOrder(c *fiber.Ctx) error {
	var req dto.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	order, err := h.orders.PlaceOrder(c.UserContext(), auth.IdentityFromContext(c), service.PlaceOrderInput{
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// ListOrders GET /orders.
func (h *OrdersHandler) ListOrders(c *fiber.Ctx) error {
	filter, err := orderListFilter(c)
	if err != nil {
		return err
	}
	orders, err := h.orders.ListMine(c.UserContext(), auth.IdentityFromContext(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponses(orders)})
}

// GetOrder GET /orders/:id.
func (h *OrdersHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.orders.GetMine(c.UserContext(), auth.IdentityFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

func orderListFilter(c *fiber.Ctx) (service.OrderListFilter, error) {
	statuses, err := parseStatuses(c)
	if err != nil {
		return service.OrderListFilter{}, err
	}
	limit, offset := parsePage(c)
	return service.OrderListFilter{Statuses: statuses, Limit: limit, Offset: offset}, nil
}

func orderResponses(orders []domain.Order) []dto.OrderResponse {
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, dto.NewOrderResponse(&orders[i]))
	}
	return items
}
