package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/api/internal/domain/entities"
	"github.com/taskdeck/api/internal/infrastructure/logger"
	"github.com/taskdeck/api/internal/ports"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService ports.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request format")
	}

	resp, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"success": false,
				"message": "Validation failed",
				"errors": map[string][]string{
					"email": {"The email has already been taken."},
				},
			})
		}
		return respondServiceError(c, h.logger, err, "Registration failed")
	}

	return respond(c, http.StatusCreated, echo.Map{
		"message":    "Registration successful",
		"user":       resp.User,
		"token":      resp.Token,
		"token_type": resp.TokenType,
		"expires_in": resp.ExpiresIn,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request format")
	}

	resp, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCredentials) {
			return respondError(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return respondServiceError(c, h.logger, err, "Login failed")
	}

	return respond(c, http.StatusOK, echo.Map{
		"user":       resp.User,
		"token":      resp.Token,
		"token_type": resp.TokenType,
		"expires_in": resp.ExpiresIn,
	})
}
