package model

import "time"

// NewsRow is one stored headline. The unique index on URL makes repeated
// upstream fetches idempotent at the store level.
type NewsRow struct {
	ID          uint      `gorm:"primarykey"`
	Title       string    `gorm:"not null"`
	URL         string    `gorm:"not null;uniqueIndex"`
	PublishDate time.Time `gorm:"not null;index"`
	Sentiment   bool      `gorm:"not null"` // true for bullish, false for bearish
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (NewsRow) TableName() string {
	return "news_articles"
}
