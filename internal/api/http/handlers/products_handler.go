package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agrimart/agri-storefront/internal/api/dto"
	"github.com/agrimart/agri-storefront/internal/auth"
	"github.com/agrimart/agri-storefront/internal/domain"
	"github.com/agrimart/agri-storefront/internal/service"
)

// ProductsHandler serves the storefront listing and catalog administration.
type ProductsHandler struct {
	catalog Catalog
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalog Catalog) *ProductsHandler {
	return &ProductsHandler{catalog: catalog}
}

// ListActive GET /products.
func (h *ProductsHandler) ListActive(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	products, err := h.catalog.ListActive(c.UserContext(), service.ProductListFilter{
		Category: parseCategory(c),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponses(products)})
}

// ListAll GET /admin/products.
func (h *ProductsHandler) ListAll(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	products, err := h.catalog.ListAll(c.UserContext(), auth.IdentityFromContext(c), service.ProductListFilter{
		Category: parseCategory(c),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponses(products)})
}

// Create POST /admin/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	product, err := h.catalog.Create(c.UserContext(), auth.IdentityFromContext(c), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
		Unit:        req.Unit,
		IsActive:    active,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Get GET /admin/products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.catalog.Get(c.UserContext(), auth.IdentityFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Update PATCH /admin/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	product, err := h.catalog.Update(c.UserContext(), auth.IdentityFromContext(c), c.Params("id"), service.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
		Unit:        req.Unit,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(product)})
}

// Delete DELETE /admin/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.Delete(c.UserContext(), auth.IdentityFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func productResponses(products []domain.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, dto.NewProductResponse(&products[i]))
	}
	return items
}
