package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/pipelinecrm/crm-server/internal/domain/contact"
	"github.com/rs/zerolog/log"
)

const (
	TemplateFilename = "contacts-template.csv"
	exportTimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

var exportColumns = []string{"name", "phone", "email", "address", "stage", "source", "estimate", "notes", "created_at"}

// ContactImportTemplate returns the header-only file offered for download.
func ContactImportTemplate() []byte {
	return []byte(strings.Join(domain.ImportColumns, ",") + "\n")
}

// ExportFilename names an export produced on day now.
func ExportFilename(now time.Time) string {
	return "contacts-export-" + now.Format("2006-01-02") + ".csv"
}

// ExportContactsCSV renders contacts one per line after the header. Lines are
// separated by "\n" with no trailing newline.
func ExportContactsCSV(contacts []domain.Contact) string {
	lines := make([]string, 0, len(contacts)+1)
	lines = append(lines, strings.Join(exportColumns, ","))

	for _, c := range contacts {
		estimate := ""
		if c.Estimate != nil {
			estimate = c.Estimate.String()
		}
		createdAt := ""
		if !c.CreatedAt.IsZero() {
			createdAt = c.CreatedAt.UTC().Format(exportTimeLayout)
		}

		fields := []string{
			c.Name,
			domain.StringValue(c.Phone),
			domain.StringValue(c.Email),
			domain.StringValue(c.Address),
			string(c.Stage),
			domain.StringValue(c.Source),
			estimate,
			domain.StringValue(c.Notes),
			createdAt,
		}
		for i, field := range fields {
			fields[i] = quoteExportField(field)
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	return strings.Join(lines, "\n")
}

func quoteExportField(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

type ExportContactsInput struct {
	CompanyID string
	Filters   domain.Filters
	IDs       []string
}

type ExportContactsOutput struct {
	Filename string
	Content  []byte
	Count    int
}

type ExportContacts interface {
	Execute(ctx context.Context, in ExportContactsInput) (ExportContactsOutput, error)
}

type exportContacts struct {
	contacts contactLister
	now      func() time.Time
}

func NewExportContacts(contacts contactLister, now func() time.Time) ExportContacts {
	if now == nil {
		now = time.Now
	}
	return &exportContacts{contacts: contacts, now: now}
}

func (uc *exportContacts) Execute(ctx context.Context, in ExportContactsInput) (ExportContactsOutput, error) {
	companyID := strings.TrimSpace(in.CompanyID)
	if companyID == "" {
		return ExportContactsOutput{}, ErrInvalidCompanyID
	}

	all, err := uc.contacts.ListByCompany(ctx, companyID)
	if err != nil {
		return ExportContactsOutput{}, fmt.Errorf("%w: %v", ErrListContacts, err)
	}

	selected := in.Filters.Apply(all)
	if len(in.IDs) > 0 {
		wanted := stringSet{}
		for _, id := range in.IDs {
			wanted.add(strings.TrimSpace(id))
		}
		kept := selected[:0]
		for _, c := range selected {
			if wanted.has(c.ID) {
				kept = append(kept, c)
			}
		}
		selected = kept
	}

	log.Info().Str("company_id", companyID).Int("contacts", len(selected)).Msg("contacts exported")

	return ExportContactsOutput{
		Filename: ExportFilename(uc.now()),
		Content:  []byte(ExportContactsCSV(selected)),
		Count:    len(selected),
	}, nil
}
