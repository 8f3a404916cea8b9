package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookshelf/storefront/internal/api/metrics"
	"github.com/bookshelf/storefront/internal/core/domain"
	"github.com/bookshelf/storefront/internal/core/ports"
)

// CheckoutHandler submits the cart.
type CheckoutHandler struct {
	checkout ports.CheckoutService
}

func NewCheckoutHandler(checkout ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Submit turns the cart into a bill. The cart is emptied only on success.
//
// @Summary      Check out
// @Tags         checkout
// @Produce      json
// @Success      201  {object}  checkoutResult
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Submit(c echo.Context) error {
	bill, err := h.checkout.Checkout(c.Request().Context())
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues(checkoutFailure(err)).Inc()
		return err
	}
	metrics.CheckoutsTotal.WithLabelValues(string(domain.CheckoutCompleted)).Inc()
	metrics.CheckoutAmount.Observe(bill.Total)

	return c.JSON(http.StatusCreated, checkoutResult{Bill: bill, Total: domain.FormatAmount(bill.Total)})
}

// Status reports whether a checkout is in flight and how the last one ended.
//
// @Summary      Checkout state
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  checkoutResponse
// @Router       /api/checkout [get]
func (h *CheckoutHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, checkoutResponse{
		State: h.checkout.State(),
		Last:  h.checkout.LastOutcome(),
	})
}

func checkoutFailure(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrCheckoutInProgress):
		return "rejected"
	default:
		return string(domain.CheckoutFailed)
	}
}
