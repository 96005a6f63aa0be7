package repository

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/pipelinecrm/crm-server/internal/domain/contact"
	"github.com/pipelinecrm/crm-server/internal/infrastructure/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Contact, error) {
	var rows []models.Contact
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	contacts := make([]domain.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, contactFromModel(row))
	}
	return contacts, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, companyID, contactID string) (*domain.Contact, error) {
	var row models.Contact
	err := r.db.WithContext(ctx).
		First(&row, "id = ? AND company_id = ?", contactID, companyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("get contact by id: %w", err)
	}

	c := contactFromModel(row)
	return &c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	row := contactToModel(*c)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	c.ID = row.ID
	return nil
}

func (r *ContactRepository) Update(ctx context.Context, c *domain.Contact) error {
	row := contactToModel(*c)
	res := r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("id = ? AND company_id = ?", c.ID, c.CompanyID).
		Select("name", "email", "phone", "address", "notes", "estimate", "stage").
		Updates(&row)
	if res.Error != nil {
		return fmt.Errorf("update contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func (r *ContactRepository) UpdateStage(ctx context.Context, companyID, contactID string, stage domain.Stage) error {
	res := r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("id = ? AND company_id = ?", contactID, companyID).
		Update("stage", string(stage))
	if res.Error != nil {
		return fmt.Errorf("update contact stage: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, companyID, contactID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", contactID, companyID).
		Delete(&models.Contact{})
	if res.Error != nil {
		return fmt.Errorf("delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func contactFromModel(row models.Contact) domain.Contact {
	c := domain.Contact{
		ID:        row.ID,
		CompanyID: row.CompanyID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone,
		Address:   row.Address,
		Notes:     row.Notes,
		Source:    row.Source,
		Stage:     domain.Stage(row.Stage),
		CreatedAt: row.CreatedAt,
	}
	if row.Estimate.Valid {
		estimate := row.Estimate.Decimal
		c.Estimate = &estimate
	}
	return c
}

func contactToModel(c domain.Contact) models.Contact {
	row := models.Contact{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Notes:     c.Notes,
		Source:    c.Source,
		Stage:     string(c.Stage),
		CreatedAt: c.CreatedAt,
	}
	if c.Estimate != nil {
		row.Estimate = decimal.NullDecimal{Decimal: *c.Estimate, Valid: true}
	}
	return row
}
