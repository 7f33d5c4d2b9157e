package service

import (
	"context"
	"testing"

	"hiper-shop-api/internal/client"
	"hiper-shop-api/internal/config"
	"hiper-shop-api/internal/model"
	"hiper-shop-api/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MockStripeClient implements client.StripeClient for testing
type MockStripeClient struct {
	HasKey bool

	CreateCalls  int
	CreateParams *client.CheckoutSessionParams // captures the last params
	CreateResult *model.CheckoutSession
	CreateErr    error

	GetCalls  int
	GetResult *model.CheckoutSession
	GetErr    error
}

func (m *MockStripeClient) Configured() bool {
	return m.HasKey
}

func (m *MockStripeClient) CreateCheckoutSession(_ context.Context, params *client.CheckoutSessionParams) (*model.CheckoutSession, error) {
	m.CreateCalls++
	m.CreateParams = params
	return m.CreateResult, m.CreateErr
}

func (m *MockStripeClient) GetCheckoutSession(_ context.Context, _ string) (*model.CheckoutSession, error) {
	m.GetCalls++
	return m.GetResult, m.GetErr
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Order{}, &model.AnalyticsEvent{}))
	return db
}

const testWebhookSecret = "whsec_test"

func newService(t *testing.T, stripe *MockStripeClient) (CheckoutService, repository.OrderRepository, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	orderRepo := repository.NewOrderRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	cfg := &config.Config{
		DefaultOrigin: "https://hiper-shop.vercel.app",
		Stripe: config.Stripe{
			WebhookSecret: testWebhookSecret,
		},
	}

	return NewCheckoutService(stripe, orderRepo, analyticsRepo, cfg), orderRepo, db
}
