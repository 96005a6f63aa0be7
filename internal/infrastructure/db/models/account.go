package models

import "time"

type User struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Email        string `gorm:"size:320;not null;uniqueIndex"`
	PasswordHash string `gorm:"type:text;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}

type Profile struct {
	ID        string  `gorm:"type:uuid;primaryKey"`
	CompanyID *string `gorm:"type:uuid;index"`
	Email     *string `gorm:"size:320"`
	FullName  *string `gorm:"size:255"`
	AvatarURL *string `gorm:"type:text"`
	Role      string  `gorm:"size:32;not null;default:user"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Profile) TableName() string {
	return "profiles"
}

type Company struct {
	ID              string  `gorm:"type:uuid;primaryKey"`
	CompanyName     string  `gorm:"size:255;not null"`
	UserID          string  `gorm:"type:uuid;not null;index"`
	SiteURL         *string `gorm:"type:text"`
	GAMeasurementID *string `gorm:"column:ga_measurement_id;size:64"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Company) TableName() string {
	return "companies"
}
