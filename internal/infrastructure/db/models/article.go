package models

import (
	"time"

	"github.com/lib/pq"
)

type Article struct {
	ID         string         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	CompanyID  string         `gorm:"type:uuid;not null;uniqueIndex:idx_articles_company_slug,priority:1"`
	Title      string         `gorm:"type:text;not null"`
	Slug       string         `gorm:"type:text;not null;uniqueIndex:idx_articles_company_slug,priority:2"`
	Excerpt    *string        `gorm:"type:text"`
	Content    *string        `gorm:"type:text"`
	CoverImage *string        `gorm:"type:text"`
	Tags       pq.StringArray `gorm:"type:text[]"`
	Status     string         `gorm:"size:16;not null;default:draft"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Article) TableName() string {
	return "articles"
}
