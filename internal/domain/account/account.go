package account

import (
	"context"
	"errors"
	"strings"
	"time"
)

const DefaultRole = "user"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// User holds login credentials. Its ID is shared with the profile.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Profile struct {
	ID        string
	CompanyID *string
	Email     *string
	FullName  *string
	AvatarURL *string
	Role      string
	CreatedAt time.Time
}

type Company struct {
	ID              string
	CompanyName     string
	UserID          string
	SiteURL         *string
	GAMeasurementID *string
	CreatedAt       time.Time
}

// DefaultCompanyName is used when a profile has to be given a company on the fly.
func DefaultCompanyName(fullName *string) string {
	if fullName != nil {
		if name := strings.TrimSpace(*fullName); name != "" {
			return name + " - Azienda"
		}
	}
	return "Nuova azienda"
}

// ProfileChanges lists profile fields to update; nil leaves a field untouched.
type ProfileChanges struct {
	FullName  *string
	AvatarURL *string
}

type CompanyChanges struct {
	CompanyName     *string
	SiteURL         *string
	GAMeasurementID *string
}

// Session is what a signed session token carries.
type Session struct {
	UserID    string
	CompanyID string
	Email     string
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type ProfileRepository interface {
	Upsert(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, id string, changes ProfileChanges) error
	SetCompany(ctx context.Context, id, companyID string) error
}

type CompanyRepository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
	Update(ctx context.Context, id string, changes CompanyChanges) error
}
