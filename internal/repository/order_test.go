package repository

import (
	"context"
	"testing"
	"time"

	"hiper-shop-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection so every statement sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Order{}, &model.AnalyticsEvent{}))
	return db
}

func paidOrder(sessionID string) *model.Order {
	return &model.Order{
		StripeSessionID:     sessionID,
		StripePaymentIntent: "pi_" + sessionID,
		Status:              model.OrderStatusPaid,
		TotalAmount:         135.00,
		Currency:            "usd",
		CustomerEmail:       "buyer@example.com",
		Items: []model.CartSnapshotItem{
			{ArtworkID: "a1", ArtworkTitle: "Sunset", Size: "M", Price: 120.00},
		},
	}
}

func TestCreateIfAbsent(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	ctx := context.Background()

	inserted, err := repo.CreateIfAbsent(ctx, paidOrder("cs_1"))
	require.NoError(t, err)
	assert.True(t, inserted)

	// Same session id again: no second row, no error.
	inserted, err = repo.CreateIfAbsent(ctx, paidOrder("cs_1"))
	require.NoError(t, err)
	assert.False(t, inserted)

	order, err := repo.FindBySessionID(ctx, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, order.Status)
	assert.Len(t, order.Items, 1)
}

func TestMarkFailedByPaymentIntent(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.CreateIfAbsent(ctx, paidOrder("cs_1"))
	require.NoError(t, err)

	rows, err := repo.MarkFailedByPaymentIntent(ctx, "pi_cs_1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	order, err := repo.FindBySessionID(ctx, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusFailed, order.Status)
}

func TestMarkFailedByPaymentIntent_NoMatch(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))

	rows, err := repo.MarkFailedByPaymentIntent(context.Background(), "pi_unknown")

	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestList_ByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	older := paidOrder("cs_old")
	older.CreatedAt = time.Now().Add(-2 * time.Hour)
	newer := paidOrder("cs_new")
	newer.CreatedAt = time.Now().Add(-1 * time.Hour)
	other := paidOrder("cs_other")
	other.CustomerEmail = "someone-else@example.com"

	for _, o := range []*model.Order{older, newer, other} {
		_, err := repo.CreateIfAbsent(ctx, o)
		require.NoError(t, err)
	}

	orders, err := repo.List(ctx, "", "buyer@example.com")

	require.NoError(t, err)
	require.Len(t, orders, 2)
	// Newest first.
	assert.Equal(t, "cs_new", orders[0].StripeSessionID)
	assert.Equal(t, "cs_old", orders[1].StripeSessionID)
}

func TestList_ByUserIDOrEmail(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	ctx := context.Background()

	mine := paidOrder("cs_mine")
	mine.UserID = "user-1"
	mine.CustomerEmail = ""
	guest := paidOrder("cs_guest")

	for _, o := range []*model.Order{mine, guest} {
		_, err := repo.CreateIfAbsent(ctx, o)
		require.NoError(t, err)
	}

	// user_id matches the attributed order, email picks up the guest one.
	orders, err := repo.List(ctx, "user-1", "buyer@example.com")
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	orders, err = repo.List(ctx, "user-1", "")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "cs_mine", orders[0].StripeSessionID)
}

func TestAnalyticsInsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnalyticsRepository(db)

	err := repo.Insert(context.Background(), &model.AnalyticsEvent{
		ID:        "evt-1",
		EventType: "order_complete",
		OrderID:   "cs_1",
		Price:     135.00,
		ItemCount: 1,
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.AnalyticsEvent{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
