package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	domain "github.com/pipelinecrm/crm-server/internal/domain/account"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

type SignupInput struct {
	Email       string `validate:"required,email"`
	Password    string `validate:"required"`
	FullName    string `validate:"required"`
	CompanyName string `validate:"required"`
}

type SignupOutput struct {
	Profile domain.Profile
	Company domain.Company
}

type Signup interface {
	Execute(ctx context.Context, in SignupInput) (SignupOutput, error)
}

type signup struct {
	users     domain.UserRepository
	profiles  domain.ProfileRepository
	companies domain.CompanyRepository
	hasher    PasswordHasher
	now       func() time.Time
}

func NewSignup(users domain.UserRepository, profiles domain.ProfileRepository, companies domain.CompanyRepository, hasher PasswordHasher, now func() time.Time) Signup {
	if now == nil {
		now = time.Now
	}
	return &signup{users: users, profiles: profiles, companies: companies, hasher: hasher, now: now}
}

// Execute registers the credentials, then creates the profile and its company
// and links them, in that order.
func (uc *signup) Execute(ctx context.Context, in SignupInput) (SignupOutput, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	if err := validate.Struct(in); err != nil {
		return SignupOutput{}, fmt.Errorf("%w: %v", ErrMissingSignupData, err)
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return SignupOutput{}, fmt.Errorf("%w: %v", ErrSignup, err)
	}

	now := uc.now().UTC()
	user := &domain.User{ID: uuid.NewString(), Email: in.Email, PasswordHash: hash, CreatedAt: now}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return SignupOutput{}, ErrEmailTaken
		}
		return SignupOutput{}, fmt.Errorf("%w: %v", ErrSignup, err)
	}

	profile := &domain.Profile{
		ID:        user.ID,
		Email:     &in.Email,
		FullName:  &in.FullName,
		Role:      domain.DefaultRole,
		CreatedAt: now,
	}
	if err := uc.profiles.Upsert(ctx, profile); err != nil {
		return SignupOutput{}, fmt.Errorf("%w: %v", ErrSignup, err)
	}

	company := &domain.Company{ID: uuid.NewString(), CompanyName: in.CompanyName, UserID: user.ID, CreatedAt: now}
	if err := uc.companies.Create(ctx, company); err != nil {
		return SignupOutput{}, fmt.Errorf("%w: %v", ErrSignup, err)
	}

	if err := uc.profiles.SetCompany(ctx, profile.ID, company.ID); err != nil {
		return SignupOutput{}, fmt.Errorf("%w: %v", ErrSignup, err)
	}
	profile.CompanyID = &company.ID

	log.Info().Str("user_id", user.ID).Str("company_id", company.ID).Msg("account created")
	return SignupOutput{Profile: *profile, Company: *company}, nil
}
