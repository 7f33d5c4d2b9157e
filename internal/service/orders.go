package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"hiper-shop-api/internal/client"
	"hiper-shop-api/internal/dto"
	"hiper-shop-api/internal/model"
)

// GetOrderStatus answers a status poll from the processor's live session
// record and opportunistically reconciles it into the store. The poll can
// land before, after, or concurrently with the webhook; the reconciler is
// idempotent either way, and a failed reconcile never fails the poll.
func (s *checkoutServiceImpl) GetOrderStatus(ctx context.Context, sessionID string) (*dto.OrderView, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id required", ErrValidation)
	}

	session, err := s.stripeClient.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, client.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
		}
		return nil, fmt.Errorf("%w: retrieve session: %v", ErrUpstream, err)
	}

	view, err := s.reconcileCompletedSession(ctx, session)
	if err != nil {
		log.Printf("reconcile session %s from status poll: %v", sessionID, err)
	}

	return view, nil
}

func (s *checkoutServiceImpl) ListOrders(ctx context.Context, userID, email string) ([]model.Order, error) {
	if userID == "" && email == "" {
		return nil, fmt.Errorf("%w: user_id or email required", ErrValidation)
	}

	orders, err := s.orderRepo.List(ctx, userID, email)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %v", ErrUpstream, err)
	}

	return orders, nil
}
