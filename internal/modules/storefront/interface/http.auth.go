package transport

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authdomain "deliveryClient/internal/modules/auth/domain"
)

func (h *Handler) login(c echo.Context) error {
	var credentials authdomain.Credentials
	if err := c.Bind(&credentials); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	credentials.Email = strings.TrimSpace(credentials.Email)
	if credentials.Email == "" || credentials.Password == "" {
		return h.badRequest(c, "email and password are required")
	}
	result, err := h.storefront.Accounts.Login(c.Request().Context(), credentials)
	if err != nil {
		return h.fail(c, "login", err)
	}
	return h.loginResponse(c, result)
}

func (h *Handler) register(c echo.Context) error {
	var registration authdomain.Registration
	if err := c.Bind(&registration); err != nil {
		return h.badRequest(c, "invalid request body")
	}
	registration.Email = strings.TrimSpace(registration.Email)
	if registration.Email == "" || registration.Password == "" {
		return h.badRequest(c, "email and password are required")
	}
	result, err := h.storefront.Accounts.Register(c.Request().Context(), registration)
	if err != nil {
		return h.fail(c, "register", err)
	}
	return h.loginResponse(c, result)
}

// loginResponse answers 202 for accounts that still await approval.
func (h *Handler) loginResponse(c echo.Context, result authdomain.LoginResult) error {
	if result.Pending {
		return c.JSON(http.StatusAccepted, result)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) logout(c echo.Context) error {
	if err := h.storefront.Accounts.Logout(c.Request().Context()); err != nil {
		return h.fail(c, "logout", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) currentUser(c echo.Context) error {
	user, err := h.storefront.Accounts.CurrentUser(c.Request().Context())
	if err != nil {
		return h.fail(c, "current user", err)
	}
	return c.JSON(http.StatusOK, user)
}
