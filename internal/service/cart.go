package service

import (
	"encoding/json"
	"fmt"
	"log"

	"hiper-shop-api/internal/client"
	"hiper-shop-api/internal/model"

	"github.com/shopspring/decimal"
)

const checkoutCurrency = "usd"

var centsPerUnit = decimal.NewFromInt(100)

// BuildLineItems maps cart items to processor line items. Each item is
// priced individually, so rounding happens per item and never on an
// aggregate.
func BuildLineItems(cart []model.CartItem) ([]client.LineItem, error) {
	if len(cart) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	lineItems := make([]client.LineItem, len(cart))
	for i, item := range cart {
		var images []string
		if item.Artwork.Image != "" {
			images = []string{item.Artwork.Image}
		}

		lineItems[i] = client.LineItem{
			Name:        fmt.Sprintf("%s - %s", item.Artwork.Title, item.Size.Name),
			Description: fmt.Sprintf("%s with %s frame", item.Size.Dimensions, item.DisplayFrame()),
			Images:      images,
			Currency:    checkoutCurrency,
			UnitAmount:  toMinorUnits(item.Total),
			Quantity:    1,
		}
	}

	return lineItems, nil
}

// BuildCartSnapshot serializes the cart into the compact form carried in
// session metadata and restored at reconciliation.
func BuildCartSnapshot(cart []model.CartItem) (string, error) {
	snapshot := make([]model.CartSnapshotItem, len(cart))
	for i, item := range cart {
		snapshot[i] = model.CartSnapshotItem{
			ArtworkID:      item.Artwork.ID,
			ArtworkTitle:   item.Artwork.Title,
			ArtworkImage:   item.Artwork.Image,
			Size:           item.Size.Name,
			SizeDimensions: item.Size.Dimensions,
			Frame:          item.Frame.Name,
			FrameLabel:     item.Frame.Label,
			Price:          item.Total,
		}
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshal cart snapshot: %w", err)
	}
	return string(data), nil
}

// parseCartSnapshot restores the snapshot from session metadata. A
// malformed snapshot is logged and treated as an empty cart so
// reconciliation can still persist the order.
func parseCartSnapshot(raw string) []model.CartSnapshotItem {
	if raw == "" {
		return []model.CartSnapshotItem{}
	}

	var items []model.CartSnapshotItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("failed to parse cart metadata: %v", err)
		return []model.CartSnapshotItem{}
	}
	return items
}

func toMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(centsPerUnit).Round(0).IntPart()
}

func fromMinorUnits(amount int64) float64 {
	return decimal.NewFromInt(amount).Div(centsPerUnit).InexactFloat64()
}
