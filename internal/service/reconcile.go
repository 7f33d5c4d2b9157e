package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"hiper-shop-api/internal/client"
	"hiper-shop-api/internal/dto"
	"hiper-shop-api/internal/model"

	"github.com/google/uuid"
)

// HandleWebhook authenticates and dispatches one processor event. Once the
// event is authenticated the return value is always nil: the processor
// redelivers on non-2xx, and redelivery cannot fix a failing durable
// write, so store errors are logged for out-of-band remediation instead.
func (s *checkoutServiceImpl) HandleWebhook(ctx context.Context, body []byte, sigHeader string) error {
	var event model.StripeEvent
	var err error

	switch {
	case s.webhookSecret != "":
		event, err = client.ConstructEvent(body, sigHeader, s.webhookSecret)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
	case s.allowUnsignedWebhooks:
		log.Println("WARNING: webhook signature not verified - no webhook secret configured")
		event, err = client.ParseEvent(body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	default:
		return fmt.Errorf("%w: webhook secret is not set", ErrConfiguration)
	}

	switch event.Type {
	case model.EventCheckoutSessionCompleted:
		var session model.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			log.Printf("malformed %s payload (event %s): %v", event.Type, event.ID, err)
			return nil
		}
		if _, err := s.reconcileCompletedSession(ctx, &session); err != nil {
			log.Printf("reconcile session %s: %v", session.ID, err)
		}

	case model.EventPaymentIntentFailed:
		var intent model.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			log.Printf("malformed %s payload (event %s): %v", event.Type, event.ID, err)
			return nil
		}
		if err := s.markPaymentFailed(ctx, intent.ID); err != nil {
			log.Printf("mark payment %s failed: %v", intent.ID, err)
		}

	default:
		log.Printf("unhandled event type: %s", event.Type)
	}

	return nil
}

// reconcileCompletedSession converts a completed-session observation into
// a persisted order. It is idempotent on the session id: the webhook path
// and the status poll both funnel through here and may race for the same
// session, so the insert relies on the store's unique index rather than a
// prior existence check.
func (s *checkoutServiceImpl) reconcileCompletedSession(ctx context.Context, session *model.CheckoutSession) (*dto.OrderView, error) {
	items := parseCartSnapshot(session.Metadata["cart"])
	view := buildOrderView(session, items)

	// Only a paid observation materializes an order. A completed session
	// with a pending async payment will be observed again once paid.
	if session.PaymentStatus != model.OrderStatusPaid {
		return view, nil
	}

	order := &model.Order{
		StripeSessionID:     session.ID,
		StripePaymentIntent: session.PaymentIntent.ID,
		Status:              model.OrderStatusPaid,
		TotalAmount:         view.TotalAmount,
		Currency:            session.Currency,
		CustomerEmail:       view.CustomerEmail,
		UserID:              session.Metadata["user_id"],
		ShippingAddress:     view.ShippingAddress,
		Items:               items,
		Metadata: model.OrderMetadata{
			ShippingCost:  shippingCost(session),
			PaymentStatus: session.PaymentStatus,
		},
	}

	inserted, err := s.orderRepo.CreateIfAbsent(ctx, order)
	if err != nil {
		return view, fmt.Errorf("persist order: %w", err)
	}
	if !inserted {
		// Duplicate delivery or a poll racing the webhook; already done.
		return view, nil
	}

	log.Printf("order saved for session %s", session.ID)
	s.trackOrderComplete(ctx, session.ID, view.TotalAmount, len(items))

	return view, nil
}

// markPaymentFailed transitions the matching order to failed. No matching
// order means the failure arrived before any paid observation, which is a
// no-op by design of at-least-once delivery.
func (s *checkoutServiceImpl) markPaymentFailed(ctx context.Context, paymentIntentID string) error {
	if paymentIntentID == "" {
		return nil
	}

	rows, err := s.orderRepo.MarkFailedByPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return err
	}
	if rows == 0 {
		log.Printf("payment failed for %s with no matching order", paymentIntentID)
	}
	return nil
}

// trackOrderComplete is fire-and-forget: analytics must never fail or
// roll back the order write.
func (s *checkoutServiceImpl) trackOrderComplete(ctx context.Context, sessionID string, total float64, itemCount int) {
	err := s.analyticsRepo.Insert(ctx, &model.AnalyticsEvent{
		ID:        uuid.NewString(),
		EventType: "order_complete",
		OrderID:   sessionID,
		Price:     total,
		ItemCount: itemCount,
	})
	if err != nil {
		log.Printf("failed to track analytics for session %s: %v", sessionID, err)
	}
}

func buildOrderView(session *model.CheckoutSession, items []model.CartSnapshotItem) *dto.OrderView {
	return &dto.OrderView{
		Success:         session.PaymentStatus == model.OrderStatusPaid,
		OrderID:         session.ID,
		PaymentIntent:   session.PaymentIntent.ID,
		CustomerEmail:   session.CustomerEmailOrDetails(),
		TotalAmount:     fromMinorUnits(session.AmountTotal),
		Currency:        session.Currency,
		ShippingAddress: shippingAddress(session),
		Items:           items,
		PaymentStatus:   session.PaymentStatus,
	}
}

func shippingAddress(session *model.CheckoutSession) model.ShippingAddress {
	if session.ShippingDetails == nil {
		return model.ShippingAddress{}
	}
	addr := session.ShippingDetails.Address
	return model.ShippingAddress{
		Name:       session.ShippingDetails.Name,
		Line1:      addr.Line1,
		Line2:      addr.Line2,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
		Country:    addr.Country,
	}
}

func shippingCost(session *model.CheckoutSession) float64 {
	if session.ShippingCost == nil {
		return 0
	}
	return fromMinorUnits(session.ShippingCost.AmountTotal)
}
