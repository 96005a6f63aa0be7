package contact

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	SourceManual    = "manual"
	SourceImportCSV = "import_csv"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern    = regexp.MustCompile(`^[0-9+().\s-]{6,}$`)
	estimatePattern = regexp.MustCompile(`^[+-]?\d+([.,]\d+)?$`)
	nonDigits       = regexp.MustCompile(`[^0-9]`)
)

type Contact struct {
	ID        string
	CompanyID string
	Name      string
	Email     *string
	Phone     *string
	Address   *string
	Notes     *string
	Source    *string
	Estimate  *decimal.Decimal
	Stage     Stage
	CreatedAt time.Time
}

// Fields groups the user editable attributes of a contact.
type Fields struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Notes    string
	Estimate *decimal.Decimal
	Stage    string
}

// NewContact validates fields entered by hand and builds a contact for companyID.
func NewContact(companyID string, f Fields, now time.Time) (Contact, error) {
	c := Contact{CompanyID: companyID, CreatedAt: now}
	if err := c.Apply(f); err != nil {
		return Contact{}, err
	}
	source := SourceManual
	c.Source = &source
	return c, nil
}

// Apply validates f and overwrites the editable attributes of c.
func (c *Contact) Apply(f Fields) error {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return ErrNameRequired
	}

	email := strings.TrimSpace(f.Email)
	if email != "" && !IsValidEmail(email) {
		return ErrInvalidEmail
	}

	phone := strings.TrimSpace(f.Phone)
	if phone != "" && !IsValidPhone(phone) {
		return ErrInvalidPhone
	}

	stage := DefaultStage
	if strings.TrimSpace(f.Stage) != "" {
		parsed, ok := ParseStage(f.Stage)
		if !ok {
			return ErrInvalidStage
		}
		stage = parsed
	}

	c.Name = name
	c.Email = NullableString(email)
	c.Phone = NullableString(phone)
	c.Address = NullableString(strings.TrimSpace(f.Address))
	c.Notes = NullableString(strings.TrimSpace(f.Notes))
	c.Estimate = f.Estimate
	c.Stage = stage
	return nil
}

func IsValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsValidPhone accepts digits, spaces and + ( ) . - with at least six characters.
func IsValidPhone(value string) bool {
	return phonePattern.MatchString(value)
}

// NormalizeEmail is the comparison key used for duplicate detection.
func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// NormalizePhone keeps only the digits of value.
func NormalizePhone(value string) string {
	return nonDigits.ReplaceAllString(value, "")
}

// ParseEstimate parses an amount with at most one decimal separator, either
// "." or ",". Thousands separators are not accepted.
func ParseEstimate(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if !estimatePattern.MatchString(value) {
		return decimal.Decimal{}, ErrInvalidEstimate
	}
	value = strings.TrimPrefix(value, "+")
	return decimal.NewFromString(strings.Replace(value, ",", ".", 1))
}

// NullableString maps an empty string to nil.
func NullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// StringValue dereferences value, returning "" for nil.
func StringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
