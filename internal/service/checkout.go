package service

import (
	"context"
	"fmt"

	"hiper-shop-api/internal/client"
	"hiper-shop-api/internal/config"
	"hiper-shop-api/internal/dto"
	"hiper-shop-api/internal/model"
	"hiper-shop-api/internal/repository"
)

// Countries the shop ships to. Checkout rejects addresses outside this
// list at the processor's hosted page.
var shippingCountries = []string{
	"US", "CA", "GB", "AU", "DE", "FR", "NL", "BE", "AT",
	"CH", "ES", "IT", "IE", "SE", "NO", "DK", "FI", "NZ",
}

// Exactly two fixed tiers; there is no dynamic shipping rating.
var shippingOptions = []client.ShippingOption{
	{DisplayName: "Standard Shipping", Currency: checkoutCurrency, Amount: 0, MinDays: 5, MaxDays: 10},
	{DisplayName: "Express Shipping", Currency: checkoutCurrency, Amount: 1500, MinDays: 2, MaxDays: 4},
}

type CheckoutService interface {
	CreateCheckoutSession(ctx context.Context, cart []model.CartItem, customerEmail, origin, userID string) (*dto.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, body []byte, sigHeader string) error
	GetOrderStatus(ctx context.Context, sessionID string) (*dto.OrderView, error)
	ListOrders(ctx context.Context, userID, email string) ([]model.Order, error)
}

type checkoutServiceImpl struct {
	stripeClient  client.StripeClient
	orderRepo     repository.OrderRepository
	analyticsRepo repository.AnalyticsRepository

	defaultOrigin         string
	webhookSecret         string
	allowUnsignedWebhooks bool
}

func NewCheckoutService(
	stripeClient client.StripeClient,
	orderRepo repository.OrderRepository,
	analyticsRepo repository.AnalyticsRepository,
	cfg *config.Config,
) CheckoutService {
	return &checkoutServiceImpl{
		stripeClient:          stripeClient,
		orderRepo:             orderRepo,
		analyticsRepo:         analyticsRepo,
		defaultOrigin:         cfg.DefaultOrigin,
		webhookSecret:         cfg.Stripe.WebhookSecret,
		allowUnsignedWebhooks: cfg.Stripe.AllowUnsignedWebhooks,
	}
}

func (s *checkoutServiceImpl) CreateCheckoutSession(ctx context.Context, cart []model.CartItem, customerEmail, origin, userID string) (*dto.CheckoutResponse, error) {
	lineItems, err := BuildLineItems(cart)
	if err != nil {
		return nil, err
	}

	// Credential check comes before any outbound call.
	if !s.stripeClient.Configured() {
		return nil, fmt.Errorf("%w: stripe secret key is not set", ErrConfiguration)
	}

	snapshot, err := BuildCartSnapshot(cart)
	if err != nil {
		return nil, err
	}

	if origin == "" {
		origin = s.defaultOrigin
	}

	metadata := map[string]string{
		"cart": snapshot,
	}
	if userID != "" {
		metadata["user_id"] = userID
	}

	session, err := s.stripeClient.CreateCheckoutSession(ctx, &client.CheckoutSessionParams{
		LineItems:        lineItems,
		SuccessURL:       origin + "?checkout=success&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:        origin + "?checkout=cancel",
		CustomerEmail:    customerEmail,
		AllowedCountries: shippingCountries,
		ShippingOptions:  shippingOptions,
		Metadata:         metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create checkout session: %v", ErrUpstream, err)
	}

	return &dto.CheckoutResponse{
		URL:       session.URL,
		SessionID: session.ID,
	}, nil
}
