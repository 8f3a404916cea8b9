package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookshelf/storefront/internal/core/ports"
)

// BillHandler lists bills.
type BillHandler struct {
	billing ports.BillingService
}

func NewBillHandler(billing ports.BillingService) *BillHandler {
	return &BillHandler{billing: billing}
}

// Mine handles GET /api/bills.
//
// @Summary      My bills
// @Tags         bills
// @Produce      json
// @Success      200  {array}   domain.Bill
// @Failure      401  {object}  errorResponse
// @Router       /api/bills [get]
func (h *BillHandler) Mine(c echo.Context) error {
	bills, err := h.billing.MyBills(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bills)
}

// Get handles GET /api/bills/:id.
//
// @Summary      Get a bill
// @Tags         bills
// @Produce      json
// @Param        id   path      int  true  "Bill id"
// @Success      200  {object}  domain.Bill
// @Failure      404  {object}  errorResponse
// @Router       /api/bills/{id} [get]
func (h *BillHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	bill, err := h.billing.GetBill(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bill)
}

// All handles GET /api/admin/bills.
//
// @Summary      All bills
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.Bill
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/bills [get]
func (h *BillHandler) All(c echo.Context) error {
	bills, err := h.billing.AllBills(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bills)
}
