package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"trendbot/internal/model"
)

// MarketSnapshotRepository is the durable-store tier for market data:
// append-only rows, queried by recency.
type MarketSnapshotRepository interface {
	Create(ctx context.Context, snapshot *model.MarketSnapshot) error
	GetLatest(ctx context.Context) (*model.MarketSnapshot, bool, error)
}

type marketSnapshotRepository struct {
	db *gorm.DB
}

func NewMarketSnapshotRepository(db *gorm.DB) MarketSnapshotRepository {
	return &marketSnapshotRepository{db: db}
}

func (r *marketSnapshotRepository) Create(ctx context.Context, snapshot *model.MarketSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *marketSnapshotRepository) GetLatest(ctx context.Context) (*model.MarketSnapshot, bool, error) {
	var snapshot model.MarketSnapshot
	err := r.db.WithContext(ctx).Order("timestamp DESC").First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &snapshot, true, nil
}
