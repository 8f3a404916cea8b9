package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookshelf/storefront/internal/core/domain"
	"github.com/bookshelf/storefront/internal/core/ports"
)

// AccountHandler serves the profile and the admin user directory.
type AccountHandler struct {
	account ports.AccountService
}

func NewAccountHandler(account ports.AccountService) *AccountHandler {
	return &AccountHandler{account: account}
}

// Profile handles GET /api/profile.
//
// @Summary      My profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.User
// @Router       /api/profile [get]
func (h *AccountHandler) Profile(c echo.Context) error {
	user, err := h.account.Profile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /api/profile.
//
// @Summary      Update my profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      422   {object}  errorResponse
// @Router       /api/profile [put]
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.account.UpdateProfile(c.Request().Context(), toProfileUpdate(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteProfile handles DELETE /api/profile and ends the session.
//
// @Summary      Delete my account
// @Tags         profile
// @Success      204
// @Router       /api/profile [delete]
func (h *AccountHandler) DeleteProfile(c echo.Context) error {
	if err := h.account.DeleteProfile(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /api/admin/users [get]
func (h *AccountHandler) ListUsers(c echo.Context) error {
	users, err := h.account.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/admin/users/:id.
//
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Router       /api/admin/users/{id} [get]
func (h *AccountHandler) GetUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.account.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/users/:id.
//
// @Summary      Delete a user
// @Tags         admin
// @Param        id  path  int  true  "User id"
// @Success      204
// @Router       /api/admin/users/{id} [delete]
func (h *AccountHandler) DeleteUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.account.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangeRole handles PUT /api/admin/users/:id/role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "User id"
// @Param        body  body      roleRequest  true  "New role"
// @Success      200   {object}  domain.User
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/users/{id}/role [put]
func (h *AccountHandler) ChangeRole(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req roleRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.account.ChangeRole(c.Request().Context(), id, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UserBills handles GET /api/admin/users/:id/bills.
//
// @Summary      A user's bills
// @Tags         admin
// @Produce      json
// @Param        id   path     int  true  "User id"
// @Success      200  {array}  domain.Bill
// @Router       /api/admin/users/{id}/bills [get]
func (h *AccountHandler) UserBills(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	bills, err := h.account.UserBills(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bills)
}

// UserBooks handles GET /api/admin/users/:id/books.
//
// @Summary      A user's books
// @Tags         admin
// @Produce      json
// @Param        id   path     int  true  "User id"
// @Success      200  {array}  domain.Book
// @Router       /api/admin/users/{id}/books [get]
func (h *AccountHandler) UserBooks(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	books, err := h.account.UserBooks(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}
