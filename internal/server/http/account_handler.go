// Package httpserver exposes the feedhub HTTP API over echo.
package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amatveev/feedhub/internal/auth"
	"github.com/amatveev/feedhub/internal/service"
)

// AccountHandler serves signup, login and status endpoints.
type AccountHandler struct {
	accounts service.AccountService
}

// NewAccountHandler constructs the handler.
func NewAccountHandler(accounts service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Signup handles PUT /auth/signup.
func (h *AccountHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	id, err := h.accounts.Signup(c.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User created!",
		"userId":  id.String(),
	})
}

// Login handles POST /auth/login.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	tok, userID, _, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":  tok,
		"userId": userID.String(),
	})
}

// GetStatus handles GET /auth/status.
func (h *AccountHandler) GetStatus(c echo.Context) error {
	res := auth.ResultFromCtx(c.Request().Context())
	status, err := h.accounts.GetStatus(c.Request().Context(), res)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": status})
}

// UpdateStatus handles PATCH /auth/status.
func (h *AccountHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	res := auth.ResultFromCtx(c.Request().Context())
	if err := h.accounts.UpdateStatus(c.Request().Context(), res, req.Status); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated."})
}
