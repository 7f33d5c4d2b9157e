package repository

import (
	"context"
	"time"

	"hiper-shop-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	// CreateIfAbsent inserts the order unless a row for its session id
	// already exists. Returns true when the row was inserted. The
	// conflict clause makes the check-and-insert a single statement, so
	// concurrent reconcilers for one session cannot both insert.
	CreateIfAbsent(ctx context.Context, order *model.Order) (bool, error)
	FindBySessionID(ctx context.Context, sessionID string) (*model.Order, error)
	// MarkFailedByPaymentIntent flips matching orders to failed and
	// returns how many rows changed. Zero matches is not an error.
	MarkFailedByPaymentIntent(ctx context.Context, paymentIntentID string) (int64, error)
	List(ctx context.Context, userID, email string) ([]model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) CreateIfAbsent(ctx context.Context, order *model.Order) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stripe_session_id"}},
			DoNothing: true,
		}).
		Create(order)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepoImpl) FindBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("stripe_session_id = ?", sessionID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) MarkFailedByPaymentIntent(ctx context.Context, paymentIntentID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("stripe_payment_intent = ?", paymentIntentID).
		Updates(map[string]interface{}{
			"status":     model.OrderStatusFailed,
			"updated_at": time.Now(),
		})

	return result.RowsAffected, result.Error
}

func (r *orderRepoImpl) List(ctx context.Context, userID, email string) ([]model.Order, error) {
	query := r.db.WithContext(ctx).Model(&model.Order{}).
		Order("created_at DESC")

	if userID != "" {
		query = query.Where("user_id = ? OR customer_email = ?", userID, email)
	} else {
		query = query.Where("customer_email = ?", email)
	}

	var orders []model.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}
