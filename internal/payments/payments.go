// Package payments wraps the hosted payment provider's SDK behind a
// small client so that business logic can be exercised without network
// access.
package payments

import (
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Client creates hosted checkout sessions through the Stripe API.
type Client struct {
	api *client.API
}

// NewClient initializes a Stripe API client with the given secret key.
func NewClient(secretKey string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &Client{api: api}
}

// CreateCheckoutSession creates a hosted checkout session and returns it.
func (c *Client) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return c.api.CheckoutSessions.New(params)
}
