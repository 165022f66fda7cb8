package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/compressyourphoto/phototools/internal/api/respond"
	billingsvc "github.com/compressyourphoto/phototools/internal/service/billing"
)

// service defines the interface for billing operations.
type service interface {
	CreateCheckoutSession(ctx context.Context, req billingsvc.CheckoutRequest) (string, error)
	HandleEvent(ctx context.Context, event stripe.Event) error
}

// Handler provides HTTP handlers for the billing endpoints. It depends
// on a service interface to perform the business logic.
type Handler struct {
	service       service
	webhookSecret string
}

// NewHandler creates a new Handler with the given service. The webhook
// secret may be empty, in which case incoming events are trusted
// without signature verification.
func NewHandler(s service, webhookSecret string) *Handler {
	return &Handler{service: s, webhookSecret: webhookSecret}
}

// CreateCheckoutSession handles POST /api/create-checkout-session. It
// validates the request against the price allow-list and responds with
// the hosted checkout page URL.
func (h *Handler) CreateCheckoutSession(c *ginext.Context) {
	var req billingsvc.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Logger.Err(err).Msg("failed to parse checkout request")
		respond.Fail(c, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	url, err := h.service.CreateCheckoutSession(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, billingsvc.ErrMissingFields) || errors.Is(err, billingsvc.ErrInvalidPriceID) {
			respond.Fail(c, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Err(err).Msg("checkout session error")
		respond.Fail(c, http.StatusInternalServerError, err)
		return
	}

	respond.OK(c, map[string]string{"url": url})
}

// Webhook handles POST /api/webhook. The payload signature is verified
// when a webhook secret is configured; otherwise the raw event is
// trusted as-is.
func (h *Handler) Webhook(c *ginext.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respond.Fail(c, http.StatusBadRequest, fmt.Errorf("failed to read payload"))
		return
	}

	var event stripe.Event

	sig := c.GetHeader("Stripe-Signature")
	if h.webhookSecret != "" && sig != "" {
		event, err = webhook.ConstructEvent(payload, sig, h.webhookSecret)
		if err != nil {
			zlog.Logger.Err(err).Msg("webhook signature verification failed")
			respond.Fail(c, http.StatusBadRequest, fmt.Errorf("webhook signature verification failed"))
			return
		}
	} else if err := json.Unmarshal(payload, &event); err != nil {
		respond.Fail(c, http.StatusBadRequest, fmt.Errorf("invalid event payload"))
		return
	}

	if err := h.service.HandleEvent(c.Request.Context(), event); err != nil {
		zlog.Logger.Err(err).Str("event_type", string(event.Type)).Msg("webhook processing error")
		respond.Fail(c, http.StatusInternalServerError, err)
		return
	}

	respond.OK(c, map[string]bool{"received": true})
}
