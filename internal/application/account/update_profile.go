package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/pipelinecrm/crm-server/internal/domain/account"
)

type UpdateProfileInput struct {
	UserID string
	domain.ProfileChanges
}

type UpdateProfile interface {
	Execute(ctx context.Context, in UpdateProfileInput) (domain.Profile, error)
}

type updateProfile struct {
	profiles domain.ProfileRepository
}

// NewUpdateProfile writes only the fields present in the input.
func NewUpdateProfile(profiles domain.ProfileRepository) UpdateProfile {
	return &updateProfile{profiles: profiles}
}

func (uc *updateProfile) Execute(ctx context.Context, in UpdateProfileInput) (domain.Profile, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return domain.Profile{}, ErrInvalidUserID
	}

	if in.FullName != nil || in.AvatarURL != nil {
		if err := uc.profiles.Update(ctx, in.UserID, in.ProfileChanges); err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				return domain.Profile{}, ErrProfileNotFound
			}
			return domain.Profile{}, fmt.Errorf("%w: %v", ErrSaveProfile, err)
		}
	}

	profile, err := uc.profiles.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.Profile{}, ErrProfileNotFound
		}
		return domain.Profile{}, fmt.Errorf("%w: %v", ErrLoadProfile, err)
	}
	return *profile, nil
}

type UpdateCompanyInput struct {
	CompanyID string
	domain.CompanyChanges
}

type UpdateCompany interface {
	Execute(ctx context.Context, in UpdateCompanyInput) (domain.Company, error)
}

type updateCompany struct {
	companies domain.CompanyRepository
}

func NewUpdateCompany(companies domain.CompanyRepository) UpdateCompany {
	return &updateCompany{companies: companies}
}

func (uc *updateCompany) Execute(ctx context.Context, in UpdateCompanyInput) (domain.Company, error) {
	if strings.TrimSpace(in.CompanyID) == "" {
		return domain.Company{}, ErrInvalidCompanyID
	}
	if in.CompanyName != nil && strings.TrimSpace(*in.CompanyName) == "" {
		return domain.Company{}, fmt.Errorf("%w: company name is empty", ErrSaveCompany)
	}

	if err := uc.companies.Update(ctx, in.CompanyID, in.CompanyChanges); err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return domain.Company{}, ErrCompanyNotFound
		}
		return domain.Company{}, fmt.Errorf("%w: %v", ErrSaveCompany, err)
	}

	company, err := uc.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return domain.Company{}, ErrCompanyNotFound
		}
		return domain.Company{}, fmt.Errorf("%w: %v", ErrSaveCompany, err)
	}
	return *company, nil
}
