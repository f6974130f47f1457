package handler

import (
	"io"
	"net/http"

	"digital-storefront/internal/dto"
	"digital-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

const stripeSignatureHeader = "Stripe-Signature"

type WebhookHandler struct {
	webhookService service.WebhookService
}

func NewWebhookHandler(webhookService service.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
	}
}

// StripeWebhook answers 2xx only when the event was fulfilled, ignored or already
// handled; anything else is left for Stripe to redeliver.
func (h *WebhookHandler) StripeWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}

	result, err := h.webhookService.HandleWebhook(ctx, c.Request().Header.Get(stripeSignatureHeader), body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.WebhookResponse{
		Received: true,
		Status:   string(result),
	})
}
