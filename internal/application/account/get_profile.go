package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	domain "github.com/pipelinecrm/crm-server/internal/domain/account"
	"github.com/rs/zerolog/log"
)

type ProfileOutput struct {
	Profile domain.Profile
	Company domain.Company
}

type GetProfile interface {
	Execute(ctx context.Context, userID string) (ProfileOutput, error)
}

type getProfile struct {
	profiles  domain.ProfileRepository
	companies domain.CompanyRepository
	now       func() time.Time
}

func NewGetProfile(profiles domain.ProfileRepository, companies domain.CompanyRepository, now func() time.Time) GetProfile {
	if now == nil {
		now = time.Now
	}
	return &getProfile{profiles: profiles, companies: companies, now: now}
}

// Execute returns the profile with its company, creating and linking a
// default company when the profile has none.
func (uc *getProfile) Execute(ctx context.Context, userID string) (ProfileOutput, error) {
	if strings.TrimSpace(userID) == "" {
		return ProfileOutput{}, ErrInvalidUserID
	}

	profile, err := uc.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return ProfileOutput{}, ErrProfileNotFound
		}
		return ProfileOutput{}, fmt.Errorf("%w: %v", ErrLoadProfile, err)
	}

	if profile.CompanyID != nil {
		company, err := uc.companies.GetByID(ctx, *profile.CompanyID)
		if err == nil {
			return ProfileOutput{Profile: *profile, Company: *company}, nil
		}
		if !errors.Is(err, domain.ErrCompanyNotFound) {
			return ProfileOutput{}, fmt.Errorf("%w: %v", ErrLoadProfile, err)
		}
	}

	company := &domain.Company{
		ID:          uuid.NewString(),
		CompanyName: domain.DefaultCompanyName(profile.FullName),
		UserID:      profile.ID,
		CreatedAt:   uc.now().UTC(),
	}
	if err := uc.companies.Create(ctx, company); err != nil {
		return ProfileOutput{}, fmt.Errorf("%w: %v", ErrSaveCompany, err)
	}
	if err := uc.profiles.SetCompany(ctx, profile.ID, company.ID); err != nil {
		return ProfileOutput{}, fmt.Errorf("%w: %v", ErrSaveProfile, err)
	}
	profile.CompanyID = &company.ID

	log.Info().Str("user_id", profile.ID).Str("company_id", company.ID).Msg("default company created")
	return ProfileOutput{Profile: *profile, Company: *company}, nil
}
