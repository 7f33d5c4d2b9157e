package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hiper-shop-api/internal/config"
	"hiper-shop-api/internal/model"
)

var ErrSessionNotFound = errors.New("checkout session not found")

type StripeClient interface {
	// Configured reports whether a secret key is present. Callers must
	// check before issuing requests so a missing credential fails fast.
	Configured() bool
	CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*model.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error)
}

type stripeClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	secretKey  string
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	return &stripeClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: stripeCfg.BaseApiURL,
		secretKey:  stripeCfg.SecretKey,
	}
}

type LineItem struct {
	Name        string
	Description string
	Images      []string
	Currency    string
	UnitAmount  int64
	Quantity    int64
}

type ShippingOption struct {
	DisplayName string
	Currency    string
	Amount      int64
	MinDays     int
	MaxDays     int
}

type CheckoutSessionParams struct {
	LineItems        []LineItem
	SuccessURL       string
	CancelURL        string
	CustomerEmail    string
	AllowedCountries []string
	ShippingOptions  []ShippingOption
	Metadata         map[string]string
}

func (c *stripeClientImpl) Configured() bool {
	return c.secretKey != ""
}

// Encode flattens the params into Stripe's bracketed form encoding.
func (p *CheckoutSessionParams) Encode() url.Values {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)
	if p.CustomerEmail != "" {
		form.Set("customer_email", p.CustomerEmail)
	}

	for i, item := range p.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", item.Currency)
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		form.Set(prefix+"[price_data][product_data][description]", item.Description)
		for j, image := range item.Images {
			form.Set(fmt.Sprintf("%s[price_data][product_data][images][%d]", prefix, j), image)
		}
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.FormatInt(item.Quantity, 10))
	}

	for i, country := range p.AllowedCountries {
		form.Set(fmt.Sprintf("shipping_address_collection[allowed_countries][%d]", i), country)
	}

	for i, opt := range p.ShippingOptions {
		prefix := fmt.Sprintf("shipping_options[%d][shipping_rate_data]", i)
		form.Set(prefix+"[type]", "fixed_amount")
		form.Set(prefix+"[fixed_amount][amount]", strconv.FormatInt(opt.Amount, 10))
		form.Set(prefix+"[fixed_amount][currency]", opt.Currency)
		form.Set(prefix+"[display_name]", opt.DisplayName)
		form.Set(prefix+"[delivery_estimate][minimum][unit]", "business_day")
		form.Set(prefix+"[delivery_estimate][minimum][value]", strconv.Itoa(opt.MinDays))
		form.Set(prefix+"[delivery_estimate][maximum][unit]", "business_day")
		form.Set(prefix+"[delivery_estimate][maximum][value]", strconv.Itoa(opt.MaxDays))
	}

	for key, value := range p.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	return form
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*model.CheckoutSession, error) {
	form := params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/checkout/sessions",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp)
	}

	var session model.CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode stripe response: %w", err)
	}

	return &session, nil
}

func (c *stripeClientImpl) GetCheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	query := url.Values{}
	query.Add("expand[]", "line_items")
	query.Add("expand[]", "payment_intent")

	reqURL := fmt.Sprintf("%s/v1/checkout/sessions/%s?%s",
		c.baseApiURL, url.PathEscape(sessionID), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrSessionNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp)
	}

	var session model.CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode stripe response: %w", err)
	}

	return &session, nil
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("stripe error %d: %s", resp.StatusCode, apiErr.Error.Message)
	}

	return fmt.Errorf("stripe error %d: %s", resp.StatusCode, string(body))
}
