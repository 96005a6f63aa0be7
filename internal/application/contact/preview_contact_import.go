package contact

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	domain "github.com/pipelinecrm/crm-server/internal/domain/contact"
	"github.com/rs/zerolog/log"
)

type PreviewContactImportInput struct {
	CompanyID string
	File      io.Reader
}

type PreviewContactImport interface {
	Execute(ctx context.Context, in PreviewContactImportInput) (domain.ImportPreview, error)
}

type contactLister interface {
	ListByCompany(ctx context.Context, companyID string) ([]domain.Contact, error)
}

type previewContactImport struct {
	contacts contactLister
	now      func() time.Time
}

// NewPreviewContactImport builds the preview use case. A nil clock defaults to time.Now.
func NewPreviewContactImport(contacts contactLister, now func() time.Time) PreviewContactImport {
	if now == nil {
		now = time.Now
	}
	return &previewContactImport{contacts: contacts, now: now}
}

func (uc *previewContactImport) Execute(ctx context.Context, in PreviewContactImportInput) (domain.ImportPreview, error) {
	companyID := strings.TrimSpace(in.CompanyID)
	if companyID == "" {
		return domain.ImportPreview{}, ErrInvalidCompanyID
	}
	if in.File == nil {
		return domain.ImportPreview{}, fmt.Errorf("%w: no file", ErrMalformedCSV)
	}

	existing, err := uc.contacts.ListByCompany(ctx, companyID)
	if err != nil {
		return domain.ImportPreview{}, fmt.Errorf("%w: %v", ErrLoadExistingContacts, err)
	}

	preview, err := ParseContactsCSV(in.File, companyID, existing, uc.now().UTC())
	if err != nil {
		log.Warn().Err(err).Str("company_id", companyID).Msg("contact import file rejected")
		return domain.ImportPreview{}, err
	}

	log.Info().
		Str("company_id", companyID).
		Int("total", preview.Counts.Total).
		Int("valid", preview.Counts.Valid).
		Int("duplicate", preview.Counts.Duplicate).
		Int("error", preview.Counts.Error).
		Msg("contact import previewed")

	return preview, nil
}
