package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Contact struct {
	ID        string              `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	CompanyID string              `gorm:"type:uuid;not null;index:idx_contacts_company_created,priority:1"`
	Name      string              `gorm:"size:255;not null"`
	Email     *string             `gorm:"size:320"`
	Phone     *string             `gorm:"size:64"`
	Address   *string             `gorm:"type:text"`
	Notes     *string             `gorm:"type:text"`
	Source    *string             `gorm:"size:32"`
	Estimate  decimal.NullDecimal `gorm:"type:numeric"`
	Stage     string              `gorm:"size:32;not null;default:'da contattare'"`
	CreatedAt time.Time           `gorm:"not null;index:idx_contacts_company_created,priority:2,sort:desc"`
}

func (Contact) TableName() string {
	return "contacts"
}

// ContactColumns is the column order used for bulk copies into contacts.
var ContactColumns = []string{"company_id", "name", "email", "phone", "address", "notes", "source", "estimate", "stage", "created_at"}
