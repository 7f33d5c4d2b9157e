package model

import "encoding/json"

// StripeEvent is the envelope Stripe posts to the webhook endpoint. The
// payload stays raw until the event type is known.
type StripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Raw json.RawMessage `json:"object"`
	} `json:"data"`
}

const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventPaymentIntentFailed      = "payment_intent.payment_failed"
)

// CheckoutSession mirrors the fields of Stripe's checkout session object
// this service reads, from both webhook payloads and retrieve responses.
type CheckoutSession struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	AmountTotal     int64             `json:"amount_total"`
	Currency        string            `json:"currency"`
	PaymentStatus   string            `json:"payment_status"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerDetails *CustomerDetails  `json:"customer_details"`
	PaymentIntent   PaymentIntentRef  `json:"payment_intent"`
	ShippingDetails *ShippingDetails  `json:"shipping_details"`
	ShippingCost    *ShippingCost     `json:"shipping_cost"`
	Metadata        map[string]string `json:"metadata"`
}

type CustomerDetails struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type ShippingDetails struct {
	Name    string        `json:"name"`
	Address StripeAddress `json:"address"`
}

type StripeAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type ShippingCost struct {
	AmountTotal int64 `json:"amount_total"`
}

// PaymentIntent is the slice of Stripe's payment intent object used by the
// payment-failure path.
type PaymentIntent struct {
	ID string `json:"id"`
}

// PaymentIntentRef is a payment intent reference that Stripe serializes
// either as a bare id string or, when expanded, as the full object.
type PaymentIntentRef struct {
	ID string
}

func (r *PaymentIntentRef) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		r.ID = ""
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var obj PaymentIntent
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.ID = obj.ID
	return nil
}

func (r PaymentIntentRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// CustomerEmailOrDetails prefers the checkout-collected email over the one
// supplied at session creation.
func (s *CheckoutSession) CustomerEmailOrDetails() string {
	if s.CustomerDetails != nil && s.CustomerDetails.Email != "" {
		return s.CustomerDetails.Email
	}
	return s.CustomerEmail
}
