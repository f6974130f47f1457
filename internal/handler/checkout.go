package handler

import (
	"net/http"

	"digital-storefront/internal/dto"
	"digital-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// Purchase creates a payment intent on every view of the purchase page.
func (h *CheckoutHandler) Purchase(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.checkoutService.CreatePaymentIntent(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) PurchaseSuccess(c echo.Context) error {
	ctx := c.Request().Context()

	paymentIntentID := c.QueryParam("payment_intent")
	if paymentIntentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing payment_intent")
	}

	result, err := h.checkoutService.PurchaseSuccess(ctx, paymentIntentID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) OrderExists(c echo.Context) error {
	ctx := c.Request().Context()

	exists, err := h.checkoutService.OrderExistsForBuyer(ctx, c.QueryParam("email"), c.QueryParam("productId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OrderExistsResponse{Exists: exists})
}
