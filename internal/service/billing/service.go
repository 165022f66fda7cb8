package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/compressyourphoto/phototools/internal/config"
	"github.com/compressyourphoto/phototools/internal/repository/profile"
)

var (
	// ErrMissingFields means a required checkout field was absent.
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidPriceID means the requested price is not on the
	// allow-list; the payment provider must never be called for it.
	ErrInvalidPriceID = errors.New("invalid price ID")
)

// checkoutCreator defines the interface for creating hosted checkout
// sessions with the payment provider.
type checkoutCreator interface {
	CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// profileRepo defines the interface for persisting subscription state.
type profileRepo interface {
	UpsertPro(ctx context.Context, userID, subscriptionType string) error
	Downgrade(ctx context.Context, userID string) error
}

// Service provides business logic for the subscription paywall: session
// creation with price allow-listing, and webhook event handling that
// records subscription state.
type Service struct {
	checkout checkoutCreator
	profiles profileRepo
	cfg      config.Stripe
	strategy retry.Strategy
}

// NewService creates a new Service.
func NewService(c checkoutCreator, p profileRepo, cfg config.Stripe, s retry.Strategy) *Service {
	return &Service{checkout: c, profiles: p, cfg: cfg, strategy: s}
}

// CheckoutRequest is the client's checkout-session request body.
type CheckoutRequest struct {
	PriceID    string `json:"priceId"`
	Mode       string `json:"mode"`
	UserID     string `json:"userId"`
	UserEmail  string `json:"userEmail"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

// priceAllowed reports whether the price is one of the two configured
// sellable prices.
func (s *Service) priceAllowed(priceID string) bool {
	return priceID == s.cfg.MonthlyPriceID || priceID == s.cfg.LifetimePriceID
}

// subscriptionType maps a price onto the stored subscription type.
func (s *Service) subscriptionType(priceID string) string {
	if priceID == s.cfg.LifetimePriceID {
		return profile.SubscriptionLifetime
	}
	return profile.SubscriptionMonthly
}

// CreateCheckoutSession validates the request and creates a hosted
// checkout session, returning its URL. Validation failures surface as
// ErrMissingFields or ErrInvalidPriceID before the provider is
// contacted.
func (s *Service) CreateCheckoutSession(_ context.Context, req CheckoutRequest) (string, error) {
	if req.PriceID == "" || req.Mode == "" || req.UserID == "" {
		return "", ErrMissingFields
	}

	if !s.priceAllowed(req.PriceID) {
		zlog.Logger.Error().Str("price_id", req.PriceID).Msg("invalid price id attempted")
		return "", ErrInvalidPriceID
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(req.Mode),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Metadata = map[string]string{
		"userId":  req.UserID,
		"priceId": req.PriceID,
	}

	if req.UserEmail != "" {
		params.CustomerEmail = stripe.String(req.UserEmail)
	}

	if req.Mode == string(stripe.CheckoutSessionModeSubscription) {
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"userId": req.UserID},
		}
	}

	session, err := s.checkout.CreateCheckoutSession(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	return session.URL, nil
}

// HandleEvent dispatches a verified webhook event. Events with missing
// or invalid metadata are logged and acknowledged rather than retried;
// only persistence failures propagate.
func (s *Service) HandleEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return fmt.Errorf("failed to unmarshal checkout session: %w", err)
		}
		return s.handleCheckoutCompleted(ctx, session)

	case stripe.EventTypeCustomerSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("failed to unmarshal subscription: %w", err)
		}
		return s.handleSubscriptionDeleted(ctx, sub)

	default:
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, session stripe.CheckoutSession) error {
	userID := session.Metadata["userId"]
	priceID := session.Metadata["priceId"]

	if userID == "" {
		zlog.Logger.Error().Msg("missing userId in session metadata")
		return nil
	}

	if !s.priceAllowed(priceID) {
		zlog.Logger.Error().Str("price_id", priceID).Msg("invalid or missing priceId in session metadata")
		return nil
	}

	subType := s.subscriptionType(priceID)

	err := retry.Do(func() error {
		return s.profiles.UpsertPro(ctx, userID, subType)
	}, s.strategy)
	if err != nil {
		return fmt.Errorf("failed to upgrade profile: %w", err)
	}

	zlog.Logger.Info().Str("user_id", userID).Str("subscription_type", subType).Msg("user upgraded to pro")

	return nil
}

func (s *Service) handleSubscriptionDeleted(ctx context.Context, sub stripe.Subscription) error {
	userID := sub.Metadata["userId"]
	if userID == "" {
		zlog.Logger.Error().Msg("missing userId in subscription metadata")
		return nil
	}

	err := retry.Do(func() error {
		err := s.profiles.Downgrade(ctx, userID)
		if errors.Is(err, profile.ErrProfileNotFound) {
			zlog.Logger.Warn().Str("user_id", userID).Msg("profile not found on downgrade")
			return nil
		}
		return err
	}, s.strategy)
	if err != nil {
		return fmt.Errorf("failed to downgrade profile: %w", err)
	}

	zlog.Logger.Info().Str("user_id", userID).Msg("subscription cancelled")

	return nil
}
