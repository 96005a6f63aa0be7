package article

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	domain "github.com/pipelinecrm/crm-server/internal/domain/article"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// SaveArticleInput creates an article when ID is empty and updates it otherwise.
// Tags are trimmed and empty entries dropped. An empty Slug derives the slug from Title.
type SaveArticleInput struct {
	CompanyID  string `validate:"required"`
	ID         string `validate:"omitempty,uuid"`
	Title      string `validate:"required"`
	Slug       string
	Excerpt    string
	Content    string
	CoverImage string
	Tags       []string
	Status     string
}

type SaveArticle interface {
	Execute(ctx context.Context, in SaveArticleInput) (domain.Article, error)
}

type saveArticle struct {
	repo  domain.Repository
	slugs *SlugGenerator
	now   func() time.Time
}

func NewSaveArticle(repo domain.Repository, slugs *SlugGenerator, now func() time.Time) SaveArticle {
	if now == nil {
		now = time.Now
	}
	return &saveArticle{repo: repo, slugs: slugs, now: now}
}

func (uc *saveArticle) Execute(ctx context.Context, in SaveArticleInput) (domain.Article, error) {
	in.CompanyID = strings.TrimSpace(in.CompanyID)
	in.ID = strings.TrimSpace(in.ID)
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.Struct(in); err != nil {
		return domain.Article{}, inputError(err)
	}

	a := &domain.Article{CompanyID: in.CompanyID}
	if in.ID != "" {
		existing, err := uc.repo.GetByID(ctx, in.CompanyID, in.ID)
		if err != nil {
			return domain.Article{}, mapLookupError(err)
		}
		a = existing
	}

	source := strings.TrimSpace(in.Slug)
	if source == "" {
		source = in.Title
	}
	slug, err := uc.slugs.Generate(ctx, source, in.CompanyID, in.ID)
	if err != nil {
		return domain.Article{}, err
	}

	now := uc.now().UTC()
	a.Title = in.Title
	a.Slug = slug
	a.Excerpt = nullable(in.Excerpt)
	a.Content = nullable(in.Content)
	a.CoverImage = nullable(in.CoverImage)
	a.Tags = domain.CleanTags(in.Tags)
	a.Status = domain.ParseStatus(in.Status)
	a.UpdatedAt = now

	if in.ID == "" {
		a.CreatedAt = now
		err = uc.repo.Create(ctx, a)
	} else {
		err = uc.repo.Update(ctx, a)
	}
	if err != nil {
		return domain.Article{}, fmt.Errorf("%w: %v", ErrSaveArticle, err)
	}

	log.Info().Str("company_id", a.CompanyID).Str("article_id", a.ID).Str("slug", a.Slug).Msg("article saved")
	return *a, nil
}

func inputError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "CompanyID":
			return ErrInvalidCompanyID
		case "ID":
			return ErrInvalidArticleID
		case "Title":
			return fmt.Errorf("%w: %v", ErrInvalidArticle, domain.ErrTitleRequired)
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalidArticle, err)
}

func mapLookupError(err error) error {
	if errors.Is(err, domain.ErrArticleNotFound) {
		return ErrArticleNotFound
	}
	return fmt.Errorf("%w: %v", ErrListArticles, err)
}

func nullable(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func validArticleRef(companyID, articleID string) error {
	if strings.TrimSpace(companyID) == "" {
		return ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(articleID); err != nil {
		return ErrInvalidArticleID
	}
	return nil
}
