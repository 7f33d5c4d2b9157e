package model

import "time"

const (
	OrderStatusPaid   = "paid"
	OrderStatusFailed = "failed"
)

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Session id is the idempotency key: the unique index is what keeps
	// duplicate webhook deliveries from creating a second row.
	StripeSessionID     string  `gorm:"size:128;uniqueIndex;not null" json:"stripe_session_id"`
	StripePaymentIntent string  `gorm:"size:128;index" json:"stripe_payment_intent"`
	Status              string  `gorm:"size:32;index;not null" json:"status"` // paid, failed
	TotalAmount         float64 `gorm:"not null" json:"total_amount"`
	Currency            string  `gorm:"size:8;not null" json:"currency"`
	CustomerEmail       string  `gorm:"size:255;index" json:"customer_email"`
	UserID              string  `gorm:"size:64;index" json:"user_id"`

	ShippingAddress ShippingAddress    `gorm:"serializer:json" json:"shipping_address"`
	Items           []CartSnapshotItem `gorm:"serializer:json" json:"items"`
	Metadata        OrderMetadata      `gorm:"serializer:json" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ShippingAddress struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type OrderMetadata struct {
	ShippingCost  float64 `json:"shipping_cost"`
	PaymentStatus string  `json:"payment_status"`
}

// AnalyticsEvent rows are append-only, written best-effort after an order
// is persisted.
type AnalyticsEvent struct {
	ID        string  `gorm:"primaryKey;size:64;not null"`
	EventType string  `gorm:"size:64;index;not null"`
	OrderID   string  `gorm:"size:128;index"`
	Price     float64 `gorm:"not null"`
	ItemCount int     `gorm:"not null"`
	CreatedAt time.Time
}
