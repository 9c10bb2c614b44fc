package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trendbot/internal/model"
)

// NewsRepository is the durable-store tier for headlines. Create is
// idempotent on URL: re-ingesting the same article from a repeated upstream
// fetch leaves a single row.
type NewsRepository interface {
	Create(ctx context.Context, row *model.NewsRow) error
	GetBySentiment(ctx context.Context, bullish bool, since time.Time, limit int) ([]model.NewsRow, error)
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, row *model.NewsRow) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoNothing: true,
		}).
		Create(row).Error
}

func (r *newsRepository) GetBySentiment(ctx context.Context, bullish bool, since time.Time, limit int) ([]model.NewsRow, error) {
	var rows []model.NewsRow
	err := r.db.WithContext(ctx).
		Where("sentiment = ?", bullish).
		Where("publish_date >= ?", since).
		Order("publish_date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
