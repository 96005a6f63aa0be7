package echo

import (
	"time"

	accountapp "github.com/pipelinecrm/crm-server/internal/application/account"
	account "github.com/pipelinecrm/crm-server/internal/domain/account"
	article "github.com/pipelinecrm/crm-server/internal/domain/article"
	contact "github.com/pipelinecrm/crm-server/internal/domain/contact"
	"github.com/shopspring/decimal"
)

type contactResponse struct {
	ID        string           `json:"id"`
	CompanyID string           `json:"company_id"`
	Name      string           `json:"name"`
	Email     *string          `json:"email"`
	Phone     *string          `json:"phone"`
	Address   *string          `json:"address"`
	Notes     *string          `json:"notes"`
	Source    *string          `json:"source"`
	Estimate  *decimal.Decimal `json:"estimate"`
	Stage     contact.Stage    `json:"stage"`
	CreatedAt time.Time        `json:"created_at"`
}

func newContactResponse(c contact.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Notes:     c.Notes,
		Source:    c.Source,
		Estimate:  c.Estimate,
		Stage:     c.Stage,
		CreatedAt: c.CreatedAt,
	}
}

func newContactResponses(contacts []contact.Contact) []contactResponse {
	out := make([]contactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, newContactResponse(c))
	}
	return out
}

type boardColumnResponse struct {
	Stage    contact.Stage     `json:"stage"`
	Title    string            `json:"title"`
	Contacts []contactResponse `json:"contacts"`
}

type articleResponse struct {
	ID         string         `json:"id"`
	CompanyID  string         `json:"company_id"`
	Title      string         `json:"title"`
	Slug       string         `json:"slug"`
	Excerpt    *string        `json:"excerpt"`
	Content    *string        `json:"content"`
	CoverImage *string        `json:"cover_image"`
	Tags       []string       `json:"tags"`
	Status     article.Status `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func newArticleResponse(a article.Article) articleResponse {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return articleResponse{
		ID:         a.ID,
		CompanyID:  a.CompanyID,
		Title:      a.Title,
		Slug:       a.Slug,
		Excerpt:    a.Excerpt,
		Content:    a.Content,
		CoverImage: a.CoverImage,
		Tags:       tags,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

type profileResponse struct {
	ID        string    `json:"id"`
	CompanyID *string   `json:"company_id"`
	Email     *string   `json:"email"`
	FullName  *string   `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newProfileResponse(p account.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Email:     p.Email,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		Role:      p.Role,
		CreatedAt: p.CreatedAt,
	}
}

type companyResponse struct {
	ID              string    `json:"id"`
	CompanyName     string    `json:"company_name"`
	UserID          string    `json:"user_id"`
	SiteURL         *string   `json:"site_url"`
	GAMeasurementID *string   `json:"ga_measurement_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func newCompanyResponse(c account.Company) companyResponse {
	return companyResponse{
		ID:              c.ID,
		CompanyName:     c.CompanyName,
		UserID:          c.UserID,
		SiteURL:         c.SiteURL,
		GAMeasurementID: c.GAMeasurementID,
		CreatedAt:       c.CreatedAt,
	}
}

type accountResponse struct {
	Profile profileResponse `json:"profile"`
	Company companyResponse `json:"company"`
}

func newAccountResponse(out accountapp.ProfileOutput) accountResponse {
	return accountResponse{Profile: newProfileResponse(out.Profile), Company: newCompanyResponse(out.Company)}
}
