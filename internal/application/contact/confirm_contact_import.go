package contact

import (
	"context"
	"fmt"

	domain "github.com/pipelinecrm/crm-server/internal/domain/contact"
	"github.com/rs/zerolog/log"
)

type ConfirmContactImportOutput struct {
	Preview  domain.ImportPreview `json:"preview"`
	Imported int64                `json:"imported"`
}

type ConfirmContactImport interface {
	Execute(ctx context.Context, in PreviewContactImportInput) (ConfirmContactImportOutput, error)
}

type confirmContactImport struct {
	preview  PreviewContactImport
	inserter domain.BulkInserter
}

// NewConfirmContactImport re-validates the file with preview and stores the
// valid rows through inserter in a single batch.
func NewConfirmContactImport(preview PreviewContactImport, inserter domain.BulkInserter) ConfirmContactImport {
	return &confirmContactImport{preview: preview, inserter: inserter}
}

func (uc *confirmContactImport) Execute(ctx context.Context, in PreviewContactImportInput) (ConfirmContactImportOutput, error) {
	preview, err := uc.preview.Execute(ctx, in)
	if err != nil {
		return ConfirmContactImportOutput{}, err
	}

	payloads := preview.ValidPayloads()
	if len(payloads) == 0 {
		return ConfirmContactImportOutput{Preview: preview}, nil
	}

	contacts := make([]domain.Contact, 0, len(payloads))
	for _, payload := range payloads {
		contacts = append(contacts, payload.Contact())
	}

	imported, err := uc.inserter.InsertContacts(ctx, contacts)
	if err != nil {
		log.Error().Err(err).Str("company_id", in.CompanyID).Int("rows", len(contacts)).Msg("contact import failed")
		return ConfirmContactImportOutput{}, fmt.Errorf("%w: %v", ErrImportContacts, err)
	}

	log.Info().Str("company_id", in.CompanyID).Int64("imported", imported).Msg("contacts imported")

	return ConfirmContactImportOutput{Preview: preview, Imported: imported}, nil
}
