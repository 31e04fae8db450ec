package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrimart/agri-storefront/internal/api/http/handlers"
	"github.com/agrimart/agri-storefront/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Sessions       *handlers.SessionHandler
	Orders         *handlers.OrdersHandler
	AdminOrders    *handlers.AdminOrdersHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("", cfg.AuthMiddleware.Handle)

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Sessions.SignUp)
	authGroup.Post("/signin", cfg.Sessions.SignIn)
	authGroup.Get("/me", cfg.Sessions.Me)
	authGroup.Post("/signout", auth.RequireTier(auth.TierAuthenticated), cfg.Sessions.SignOut)

	api.Get("/products", auth.RequireTier(auth.TierPublic), cfg.Products.ListActive)

	orders := api.Group("/orders", auth.RequireTier(auth.TierAuthenticated))
	orders.Post("", cfg.Orders.PlaceOrder)
	orders.Get("", cfg.Orders.ListOrders)
	orders.Get("/:id", cfg.Orders.GetOrder)

	admin := api.Group("/admin", auth.RequireTier(auth.TierAdministrator))
	admin.Get("/orders", cfg.AdminOrders.ListOrders)
	admin.Get("/orders/:id", cfg.AdminOrders.GetOrder)
	admin.Post("/orders/:id/status", cfg.AdminOrders.UpdateStatus)
	admin.Post("/orders/:id/notifications/retry", cfg.AdminOrders.RetryNotification)

	admin.Get("/products", cfg.Products.ListAll)
	admin.Post("/products", cfg.Products.Create)
	admin.Get("/products/:id", cfg.Products.Get)
	admin.Patch("/products/:id", cfg.Products.Update)
	admin.Delete("/products/:id", cfg.Products.Delete)
}
