package article

import (
	"context"
	"fmt"
	"sort"
	"strings"

	domain "github.com/pipelinecrm/crm-server/internal/domain/article"
)

type ListArticlesInput struct {
	CompanyID string
	Search    string
}

type ListArticles interface {
	Execute(ctx context.Context, in ListArticlesInput) ([]domain.Article, error)
}

type listArticles struct {
	repo domain.Repository
}

func NewListArticles(repo domain.Repository) ListArticles {
	return &listArticles{repo: repo}
}

// Execute returns the company's articles matching Search, most recently
// updated first.
func (uc *listArticles) Execute(ctx context.Context, in ListArticlesInput) ([]domain.Article, error) {
	companyID := strings.TrimSpace(in.CompanyID)
	if companyID == "" {
		return nil, ErrInvalidCompanyID
	}

	all, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListArticles, err)
	}

	out := make([]domain.Article, 0, len(all))
	for _, a := range all {
		if a.Matches(in.Search) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

type ArticleRef struct {
	CompanyID string
	ArticleID string
}

type GetArticle interface {
	Execute(ctx context.Context, in ArticleRef) (domain.Article, error)
}

type getArticle struct {
	repo domain.Repository
}

func NewGetArticle(repo domain.Repository) GetArticle {
	return &getArticle{repo: repo}
}

func (uc *getArticle) Execute(ctx context.Context, in ArticleRef) (domain.Article, error) {
	if err := validArticleRef(in.CompanyID, in.ArticleID); err != nil {
		return domain.Article{}, err
	}

	a, err := uc.repo.GetByID(ctx, in.CompanyID, in.ArticleID)
	if err != nil {
		return domain.Article{}, mapLookupError(err)
	}
	return *a, nil
}
