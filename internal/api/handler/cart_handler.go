package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookshelf/storefront/internal/api/metrics"
	"github.com/bookshelf/storefront/internal/core/domain"
	"github.com/bookshelf/storefront/internal/core/ports"
	"github.com/bookshelf/storefront/internal/core/service"
)

// CartFront adds catalog-checked lines to the cart and renders it.
type CartFront interface {
	AddPurchase(ctx context.Context, bookID int64, quantity int) (*domain.Book, error)
	AddLoan(ctx context.Context, bookID int64) (*domain.Book, error)
	View(now time.Time) service.CartView
}

// CartHandler serves the gateway's single cart.
type CartHandler struct {
	front CartFront
	cart  ports.CartService
	now   func() time.Time
}

func NewCartHandler(front CartFront, cart ports.CartService) *CartHandler {
	return &CartHandler{front: front, cart: cart, now: time.Now}
}

// Get renders the cart with its total and loan due dates.
//
// @Summary      Show the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  service.CartView
// @Failure      401  {object}  errorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.front.View(h.now()))
}

// AddPurchase appends a purchase line.
//
// @Summary      Add a purchase to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      purchaseRequest  true  "Book and quantity"
// @Success      201   {object}  service.CartView
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/cart/purchases [post]
func (h *CartHandler) AddPurchase(c echo.Context) error {
	var req purchaseRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if _, err := h.front.AddPurchase(c.Request().Context(), req.BookID, req.Quantity); err != nil {
		return err
	}
	metrics.CartLinesTotal.WithLabelValues(string(domain.KindPurchases), "add").Inc()
	return c.JSON(http.StatusCreated, h.front.View(h.now()))
}

// AddLoan appends a loan line.
//
// @Summary      Add a loan to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      loanRequest  true  "Book"
// @Success      201   {object}  service.CartView
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/cart/loans [post]
func (h *CartHandler) AddLoan(c echo.Context) error {
	var req loanRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if _, err := h.front.AddLoan(c.Request().Context(), req.BookID); err != nil {
		return err
	}
	metrics.CartLinesTotal.WithLabelValues(string(domain.KindLoans), "add").Inc()
	return c.JSON(http.StatusCreated, h.front.View(h.now()))
}

// Remove drops every line of one book from one kind.
//
// @Summary      Remove a book from the cart
// @Tags         cart
// @Produce      json
// @Param        kind     path      string  true  "purchases or loans"
// @Param        book_id  path      int     true  "Book id"
// @Success      200      {object}  service.CartView
// @Failure      409      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /api/cart/{kind}/{book_id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	id, err := paramID(c, "book_id")
	if err != nil {
		return err
	}
	kind := domain.CartKind(c.Param("kind"))
	if err := h.cart.Remove(kind, id); err != nil {
		return err
	}
	metrics.CartLinesTotal.WithLabelValues(string(kind), "remove").Inc()
	return c.JSON(http.StatusOK, h.front.View(h.now()))
}

// Clear empties the cart.
//
// @Summary      Empty the cart
// @Tags         cart
// @Success      204
// @Failure      409  {object}  errorResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.cart.Clear(); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
