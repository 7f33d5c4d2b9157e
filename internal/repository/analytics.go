package repository

import (
	"context"

	"hiper-shop-api/internal/model"

	"gorm.io/gorm"
)

type AnalyticsRepository interface {
	Insert(ctx context.Context, event *model.AnalyticsEvent) error
}

type analyticsRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepositoryImpl{
		db: db,
	}
}

func (r *analyticsRepositoryImpl) Insert(ctx context.Context, event *model.AnalyticsEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}
