package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/agrimart/agri-storefront/internal/domain"
	apperrors "github.com/agrimart/agri-storefront/pkg/util/errorutil"
)

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

// parsePage reads page and page_size into limit and offset.
func parsePage(c *fiber.Ctx) (int, int) {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	return pageSize, (page - 1) * pageSize
}

// parseStatuses reads a comma separated status list.
func parseStatuses(c *fiber.Ctx) ([]domain.OrderStatus, error) {
	raw := c.Query("status")
	if raw == "" {
		return nil, nil
	}
	var statuses []domain.OrderStatus
	for _, part := range strings.Split(raw, ",") {
		token := strings.TrimSpace(part)
		status, ok := domain.ParseOrderStatus(token)
		if !ok {
			return nil, apperrors.NewInvalidStatus(token)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func parseCategory(c *fiber.Ctx) *domain.ProductCategory {
	raw := strings.TrimSpace(c.Query("category"))
	if raw == "" {
		return nil
	}
	category := domain.ProductCategory(raw)
	return &category
}

func invalidPayload() error {
	return apperrors.NewValidationError("invalid payload", nil)
}
