package contact

import (
	"time"

	"github.com/shopspring/decimal"
)

type ImportStatus string

const (
	ImportStatusValid     ImportStatus = "valid"
	ImportStatusDuplicate ImportStatus = "duplicate"
	ImportStatusError     ImportStatus = "error"
)

type DuplicateField string

const (
	DuplicateFieldEmail DuplicateField = "email"
	DuplicateFieldPhone DuplicateField = "phone"
)

// Row issues shown to the end user.
const (
	IssueNameRequired    = "Nome obbligatorio"
	IssueInvalidEmail    = "Email non valida"
	IssueInvalidPhone    = "Telefono non valido"
	IssueInvalidEstimate = "Preventivo non numerico"
	IssueInvalidStage    = "Stage non valido"
	IssueDuplicateEmail  = "Email già presente"
	IssueDuplicatePhone  = "Telefono già presente"
)

// ImportColumns is the header of an import file, also served as template.
var ImportColumns = []string{"name", "email", "phone", "address", "notes", "estimate", "stage"}

type ImportPayload struct {
	CompanyID string           `json:"company_id"`
	Name      string           `json:"name"`
	Email     *string          `json:"email"`
	Phone     *string          `json:"phone"`
	Address   *string          `json:"address"`
	Notes     *string          `json:"notes"`
	Estimate  *decimal.Decimal `json:"estimate"`
	Stage     Stage            `json:"stage"`
	Source    string           `json:"source"`
	CreatedAt time.Time        `json:"created_at"`
}

// Contact converts an accepted payload into a contact ready to be stored.
func (p ImportPayload) Contact() Contact {
	source := p.Source
	return Contact{
		CompanyID: p.CompanyID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		Notes:     p.Notes,
		Source:    &source,
		Estimate:  p.Estimate,
		Stage:     p.Stage,
		CreatedAt: p.CreatedAt,
	}
}

type ImportRow struct {
	ID             int             `json:"id"`
	Payload        ImportPayload   `json:"payload"`
	Status         ImportStatus    `json:"status"`
	Issues         []string        `json:"issues"`
	DuplicateField *DuplicateField `json:"duplicate_field,omitempty"`
}

type ImportCounts struct {
	Valid     int `json:"valid"`
	Duplicate int `json:"duplicate"`
	Error     int `json:"error"`
	Total     int `json:"total"`
}

// Add tallies one classified row.
func (c *ImportCounts) Add(status ImportStatus) {
	switch status {
	case ImportStatusValid:
		c.Valid++
	case ImportStatusDuplicate:
		c.Duplicate++
	case ImportStatusError:
		c.Error++
	}
	c.Total++
}

type ImportPreview struct {
	Rows   []ImportRow  `json:"rows"`
	Counts ImportCounts `json:"counts"`
}

// ValidPayloads returns the payloads of rows that may be inserted.
func (p ImportPreview) ValidPayloads() []ImportPayload {
	out := make([]ImportPayload, 0, p.Counts.Valid)
	for _, row := range p.Rows {
		if row.Status == ImportStatusValid {
			out = append(out, row.Payload)
		}
	}
	return out
}
