package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	domain "github.com/pipelinecrm/crm-server/internal/domain/contact"
)

type ContactRef struct {
	CompanyID string
	ContactID string
}

func (ref ContactRef) validate() error {
	if strings.TrimSpace(ref.CompanyID) == "" {
		return ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(ref.ContactID); err != nil {
		return ErrInvalidContactID
	}
	return nil
}

type GetContact interface {
	Execute(ctx context.Context, in ContactRef) (domain.Contact, error)
}

type getContact struct {
	repo domain.Repository
}

func NewGetContact(repo domain.Repository) GetContact {
	return &getContact{repo: repo}
}

func (uc *getContact) Execute(ctx context.Context, in ContactRef) (domain.Contact, error) {
	if err := in.validate(); err != nil {
		return domain.Contact{}, err
	}

	c, err := uc.repo.GetByID(ctx, in.CompanyID, in.ContactID)
	if err != nil {
		return domain.Contact{}, mapLookupError(err)
	}
	return *c, nil
}

func mapLookupError(err error) error {
	if errors.Is(err, domain.ErrContactNotFound) {
		return ErrContactNotFound
	}
	return fmt.Errorf("%w: %v", ErrListContacts, err)
}
