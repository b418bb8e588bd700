package auth

import (
	"errors"

	authsvc "minevest-backend/internal/application/auth"
	"minevest-backend/internal/middleware"
	"minevest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *authsvc.Service
}

// POST /auth/register/
func (h *Handlers) Register(c *fiber.Ctx) error {
	var body authsvc.RegisterInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Please provide both an email address and a password.", fiber.StatusBadRequest)
	}
	investor, err := h.Service.Register(c.Context(), body)
	if err != nil {
		return h.respondError(c, err)
	}
	return response.Created(c, investor)
}

// POST /auth/login/ — returns {token, investor}.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Please provide both an email address and a password.", fiber.StatusBadRequest)
	}
	token, investor, err := h.Service.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		return h.respondError(c, err)
	}
	return response.JSON(c, fiber.Map{"token": token, "investor": investor})
}

// GET /auth/me/ — returns the bearer's claims.
func (h *Handlers) Me(c *fiber.Ctx) error {
	claims := middleware.GetInvestor(c)
	if claims == nil {
		return response.Unauthorized(c, "Authentication credentials were not provided.")
	}
	return response.JSON(c, claims)
}

// DELETE /auth/logout/ — revokes the bearer token.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	token := middleware.GetAuthToken(c)
	if err := h.Service.RevokeToken(c.Context(), token); err != nil {
		return h.respondError(c, err)
	}
	return response.JSON(c, fiber.Map{"message": "You have been logged out."})
}

func (h *Handlers) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, authsvc.ErrEmailPasswordRequired),
		errors.Is(err, authsvc.ErrInvalidEmail),
		errors.Is(err, authsvc.ErrWeakPassword),
		errors.Is(err, authsvc.ErrInvalidFullName):
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		return response.Error(c, err.Error(), fiber.StatusUnauthorized)
	case errors.Is(err, authsvc.ErrEmailTaken):
		return response.Error(c, err.Error(), fiber.StatusConflict)
	case errors.Is(err, authsvc.ErrNotAuthenticated):
		return response.Unauthorized(c, err.Error())
	default:
		log.Error().Str("trace_id", middleware.GetTraceID(c)).Err(err).Msg("auth operation failed")
		return response.Error(c, "Something went wrong on our end. Please try again later.", fiber.StatusInternalServerError)
	}
}
