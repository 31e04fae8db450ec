package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agrimart/agri-storefront/internal/api/dto"
	"github.com/agrimart/agri-storefront/internal/auth"
	"github.com/agrimart/agri-storefront/internal/service"
)

// SessionHandler exposes sign-up, sign-in and sign-out.
type SessionHandler struct {
	sessions Sessions
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions Sessions) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// SignUp handles POST /auth/signup.
func (h *SessionHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	result, err := h.sessions.SignUp(c.UserContext(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sessionResponse(result)})
}

// SignIn handles POST /auth/signin.
func (h *SessionHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	result, err := h.sessions.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(result)})
}

// SignOut handles POST /auth/signout.
func (h *SessionHandler) SignOut(c *fiber.Ctx) error {
	identity := auth.IdentityFromContext(c)
	if err := h.sessions.SignOut(c.UserContext(), identity.SessionID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"redirect": auth.RouteHome}})
}

// Me handles GET /auth/me.
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	identity := auth.IdentityFromContext(c)
	resp := dto.IdentityResponse{
		Authenticated: identity.IsAuthenticated(),
		Loading:       identity.Loading,
	}
	if identity.Account != nil {
		account := dto.NewAccountResponse(identity.Account)
		resp.Account = &account
	}
	return c.JSON(fiber.Map{"data": resp})
}

func sessionResponse(result *service.SessionResult) dto.SessionResponse {
	return dto.SessionResponse{
		Account:  dto.NewAccountResponse(result.Account),
		Auth:     dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
		Redirect: result.Redirect,
	}
}
