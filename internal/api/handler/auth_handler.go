package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookshelf/storefront/internal/api/metrics"
	"github.com/bookshelf/storefront/internal/core/domain"
	"github.com/bookshelf/storefront/internal/core/ports"
)

// AuthHandler exposes the gateway's session: login, registration, logout
// and the current snapshot.
type AuthHandler struct {
	session ports.SessionService
}

func NewAuthHandler(session ports.SessionService) *AuthHandler {
	return &AuthHandler{session: session}
}

// Register creates a new user account. It does not log the user in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	user, err := h.session.Register(c.Request().Context(), domain.Profile{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// Login authenticates against the backend and stores the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	res, err := h.session.Login(c.Request().Context(), domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	user := res.User
	user.Role = user.Role.Normalize()
	return c.JSON(http.StatusOK, loginResponse{User: user})
}

// Logout clears the session. Logging out twice is not an error.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.session.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports who is logged in. The token itself never leaves the gateway.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.session.Current()))
}

