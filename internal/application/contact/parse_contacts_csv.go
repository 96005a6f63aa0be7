package contact

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	domain "github.com/pipelinecrm/crm-server/internal/domain/contact"
	"github.com/shopspring/decimal"
)

const utf8BOM = "\uFEFF"

// ParseContactsCSV classifies every non-blank row of an import file against the
// company's existing contacts and the rows that precede it in the same file.
// Row problems are reported in the preview; only an unreadable file is an error.
func ParseContactsCSV(r io.Reader, companyID string, existing []domain.Contact, now time.Time) (domain.ImportPreview, error) {
	records, err := readImportRecords(r)
	if err != nil {
		return domain.ImportPreview{}, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}

	run := newImportRun(companyID, existing, now)
	for _, fields := range records {
		run.classify(fields)
	}

	return domain.ImportPreview{Rows: run.rows, Counts: run.counts}, nil
}

// readImportRecords maps every data row to the recognized columns. Values are
// trimmed and missing columns read as "".
func readImportRecords(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(bufio.NewReader(r))

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	columns := make(map[string]int, len(domain.ImportColumns))
	for i, name := range header {
		if !isImportColumn(name) {
			continue
		}
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	var records []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		fields := make(map[string]string, len(domain.ImportColumns))
		for _, name := range domain.ImportColumns {
			if i, ok := columns[name]; ok {
				fields[name] = strings.TrimSpace(record[i])
			} else {
				fields[name] = ""
			}
		}
		records = append(records, fields)
	}

	return records, nil
}

func isImportColumn(name string) bool {
	for _, column := range domain.ImportColumns {
		if column == name {
			return true
		}
	}
	return false
}

type stringSet map[string]struct{}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s stringSet) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

// importRun owns the state of one classification pass.
type importRun struct {
	companyID string
	now       time.Time

	existingEmails stringSet
	existingPhones stringSet
	fileEmails     stringSet
	filePhones     stringSet

	rows   []domain.ImportRow
	counts domain.ImportCounts
}

func newImportRun(companyID string, existing []domain.Contact, now time.Time) *importRun {
	run := &importRun{
		companyID:      companyID,
		now:            now,
		existingEmails: stringSet{},
		existingPhones: stringSet{},
		fileEmails:     stringSet{},
		filePhones:     stringSet{},
		rows:           []domain.ImportRow{},
	}
	for _, c := range existing {
		run.existingEmails.add(domain.NormalizeEmail(domain.StringValue(c.Email)))
		run.existingPhones.add(domain.NormalizePhone(domain.StringValue(c.Phone)))
	}
	return run
}

func (run *importRun) classify(fields map[string]string) {
	name := fields["name"]
	email := fields["email"]
	phone := fields["phone"]
	address := fields["address"]
	notes := fields["notes"]
	estimateText := fields["estimate"]
	stageText := fields["stage"]

	if name == "" && email == "" && phone == "" && address == "" && notes == "" && estimateText == "" && stageText == "" {
		return
	}

	issues := []string{}

	if name == "" {
		issues = append(issues, domain.IssueNameRequired)
	}

	var normalizedEmail string
	if email != "" {
		normalizedEmail = domain.NormalizeEmail(email)
		if !domain.IsValidEmail(email) {
			issues = append(issues, domain.IssueInvalidEmail)
		}
	}

	var normalizedPhone string
	if phone != "" {
		normalizedPhone = domain.NormalizePhone(phone)
		if !domain.IsValidPhone(phone) {
			issues = append(issues, domain.IssueInvalidPhone)
		}
	}

	var estimate *decimal.Decimal
	if estimateText != "" {
		parsed, err := domain.ParseEstimate(estimateText)
		if err != nil {
			issues = append(issues, domain.IssueInvalidEstimate)
		} else {
			estimate = &parsed
		}
	}

	stage := domain.DefaultStage
	if stageText != "" {
		parsed, ok := domain.ParseStage(stageText)
		if ok {
			stage = parsed
		} else {
			issues = append(issues, domain.IssueInvalidStage)
		}
	}

	// Duplicate checks run only on otherwise clean rows, email before phone.
	var duplicate *domain.DuplicateField
	if len(issues) == 0 {
		switch {
		case normalizedEmail != "" && (run.existingEmails.has(normalizedEmail) || run.fileEmails.has(normalizedEmail)):
			field := domain.DuplicateFieldEmail
			duplicate = &field
			issues = append(issues, domain.IssueDuplicateEmail)
		case normalizedPhone != "" && (run.existingPhones.has(normalizedPhone) || run.filePhones.has(normalizedPhone)):
			field := domain.DuplicateFieldPhone
			duplicate = &field
			issues = append(issues, domain.IssueDuplicatePhone)
		}
	}

	run.fileEmails.add(normalizedEmail)
	run.filePhones.add(normalizedPhone)

	status := domain.ImportStatusValid
	switch {
	case duplicate != nil:
		status = domain.ImportStatusDuplicate
	case len(issues) > 0:
		status = domain.ImportStatusError
	}

	run.rows = append(run.rows, domain.ImportRow{
		ID: len(run.rows) + 1,
		Payload: domain.ImportPayload{
			CompanyID: run.companyID,
			Name:      name,
			Email:     domain.NullableString(email),
			Phone:     domain.NullableString(phone),
			Address:   domain.NullableString(address),
			Notes:     domain.NullableString(notes),
			Estimate:  estimate,
			Stage:     stage,
			Source:    domain.SourceImportCSV,
			CreatedAt: run.now,
		},
		Status:         status,
		Issues:         issues,
		DuplicateField: duplicate,
	})
	run.counts.Add(status)
}
