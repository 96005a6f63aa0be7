package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	domain "github.com/pipelinecrm/crm-server/internal/domain/account"
	"github.com/pipelinecrm/crm-server/internal/infrastructure/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	row := models.User{ID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row models.User
	if err := r.db.WithContext(ctx).First(&row, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &domain.User{ID: row.ID, Email: row.Email, PasswordHash: row.PasswordHash, CreatedAt: row.CreatedAt}, nil
}

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	row := models.Profile{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Email:     p.Email,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		Role:      p.Role,
		CreatedAt: p.CreatedAt,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "role", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var row models.Profile
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile by id: %w", err)
	}
	return &domain.Profile{
		ID:        row.ID,
		CompanyID: row.CompanyID,
		Email:     row.Email,
		FullName:  row.FullName,
		AvatarURL: row.AvatarURL,
		Role:      row.Role,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *ProfileRepository) Update(ctx context.Context, id string, changes domain.ProfileChanges) error {
	updates := map[string]any{}
	if changes.FullName != nil {
		updates["full_name"] = *changes.FullName
	}
	if changes.AvatarURL != nil {
		updates["avatar_url"] = *changes.AvatarURL
	}
	return r.updates(ctx, id, updates)
}

func (r *ProfileRepository) SetCompany(ctx context.Context, id, companyID string) error {
	return r.updates(ctx, id, map[string]any{"company_id": companyID})
}

func (r *ProfileRepository) updates(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) error {
	row := models.Company{
		ID:              c.ID,
		CompanyName:     c.CompanyName,
		UserID:          c.UserID,
		SiteURL:         c.SiteURL,
		GAMeasurementID: c.GAMeasurementID,
		CreatedAt:       c.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	var row models.Company
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("get company by id: %w", err)
	}
	return &domain.Company{
		ID:              row.ID,
		CompanyName:     row.CompanyName,
		UserID:          row.UserID,
		SiteURL:         row.SiteURL,
		GAMeasurementID: row.GAMeasurementID,
		CreatedAt:       row.CreatedAt,
	}, nil
}

func (r *CompanyRepository) Update(ctx context.Context, id string, changes domain.CompanyChanges) error {
	updates := map[string]any{}
	if changes.CompanyName != nil {
		updates["company_name"] = *changes.CompanyName
	}
	if changes.SiteURL != nil {
		updates["site_url"] = *changes.SiteURL
	}
	if changes.GAMeasurementID != nil {
		updates["ga_measurement_id"] = *changes.GAMeasurementID
	}
	if len(updates) == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return nil
	}

	res := r.db.WithContext(ctx).Model(&models.Company{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update company: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}
