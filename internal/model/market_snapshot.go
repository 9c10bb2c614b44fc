package model

import (
	"time"

	"gorm.io/datatypes"
)

// MarketSnapshot is one append-only row per analysis computation: the scalar
// trend fields plus the full serialized historical series.
type MarketSnapshot struct {
	ID        uint           `gorm:"primarykey"`
	Timestamp time.Time      `gorm:"not null;index"`
	Symbol    string         `gorm:"not null"`
	Price     float64        `gorm:"not null"`
	ShortMA   float64        `gorm:"not null"`
	LongMA    float64        `gorm:"not null"`
	IsBullish bool           `gorm:"not null"`
	Series    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (MarketSnapshot) TableName() string {
	return "market_snapshots"
}
