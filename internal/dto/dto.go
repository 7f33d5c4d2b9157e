package dto

import "hiper-shop-api/internal/model"

type CheckoutRequest struct {
	Cart          []model.CartItem `json:"cart"`
	CustomerEmail string           `json:"customerEmail"`
}

type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// OrderView is the normalized view returned by both the status poll and
// (internally) the webhook path.
type OrderView struct {
	Success         bool                     `json:"success"`
	OrderID         string                   `json:"orderId"`
	PaymentIntent   string                   `json:"paymentIntent"`
	CustomerEmail   string                   `json:"customerEmail"`
	TotalAmount     float64                  `json:"totalAmount"`
	Currency        string                   `json:"currency"`
	ShippingAddress model.ShippingAddress    `json:"shippingAddress"`
	Items           []model.CartSnapshotItem `json:"items"`
	PaymentStatus   string                   `json:"paymentStatus"`
}

type OrdersResponse struct {
	Orders []model.Order `json:"orders"`
}
