package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/pipelinecrm/crm-server/internal/domain/contact"
	"github.com/rs/zerolog/log"
)

type CreateContactInput struct {
	CompanyID string
	Fields    domain.Fields
}

type CreateContact interface {
	Execute(ctx context.Context, in CreateContactInput) (domain.Contact, error)
}

type createContact struct {
	repo domain.Repository
	now  func() time.Time
}

func NewCreateContact(repo domain.Repository, now func() time.Time) CreateContact {
	if now == nil {
		now = time.Now
	}
	return &createContact{repo: repo, now: now}
}

func (uc *createContact) Execute(ctx context.Context, in CreateContactInput) (domain.Contact, error) {
	companyID := strings.TrimSpace(in.CompanyID)
	if companyID == "" {
		return domain.Contact{}, ErrInvalidCompanyID
	}

	c, err := domain.NewContact(companyID, in.Fields, uc.now().UTC())
	if err != nil {
		return domain.Contact{}, fmt.Errorf("%w: %v", ErrInvalidContact, err)
	}

	if err := uc.repo.Create(ctx, &c); err != nil {
		return domain.Contact{}, fmt.Errorf("%w: %v", ErrSaveContact, err)
	}

	log.Info().Str("company_id", companyID).Str("contact_id", c.ID).Msg("contact created")
	return c, nil
}

type UpdateContactInput struct {
	ContactRef
	Fields domain.Fields
}

type UpdateContact interface {
	Execute(ctx context.Context, in UpdateContactInput) (domain.Contact, error)
}

type updateContact struct {
	repo domain.Repository
}

func NewUpdateContact(repo domain.Repository) UpdateContact {
	return &updateContact{repo: repo}
}

func (uc *updateContact) Execute(ctx context.Context, in UpdateContactInput) (domain.Contact, error) {
	if err := in.validate(); err != nil {
		return domain.Contact{}, err
	}

	c, err := uc.repo.GetByID(ctx, in.CompanyID, in.ContactID)
	if err != nil {
		return domain.Contact{}, mapLookupError(err)
	}

	if err := c.Apply(in.Fields); err != nil {
		return domain.Contact{}, fmt.Errorf("%w: %v", ErrInvalidContact, err)
	}

	if err := uc.repo.Update(ctx, c); err != nil {
		return domain.Contact{}, fmt.Errorf("%w: %v", ErrSaveContact, err)
	}
	return *c, nil
}
