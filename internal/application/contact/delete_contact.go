package contact

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/pipelinecrm/crm-server/internal/domain/contact"
	"github.com/rs/zerolog/log"
)

type DeleteContact interface {
	Execute(ctx context.Context, in ContactRef) error
}

type deleteContact struct {
	repo domain.Repository
}

func NewDeleteContact(repo domain.Repository) DeleteContact {
	return &deleteContact{repo: repo}
}

func (uc *deleteContact) Execute(ctx context.Context, in ContactRef) error {
	if err := in.validate(); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, in.CompanyID, in.ContactID); err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("%w: %v", ErrDeleteContact, err)
	}

	log.Info().Str("company_id", in.CompanyID).Str("contact_id", in.ContactID).Msg("contact deleted")
	return nil
}
