package article

import (
	"context"
	"errors"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrArticleNotFound = errors.New("article not found")
)

// SlugLookup answers whether slug is taken in the company's namespace,
// ignoring the article identified by excludeID when it is not empty.
type SlugLookup interface {
	SlugExists(ctx context.Context, companyID, slug, excludeID string) (bool, error)
}

type Repository interface {
	SlugLookup
	ListByCompany(ctx context.Context, companyID string) ([]Article, error)
	GetByID(ctx context.Context, companyID, articleID string) (*Article, error)
	Create(ctx context.Context, a *Article) error
	Update(ctx context.Context, a *Article) error
	Delete(ctx context.Context, companyID, articleID string) error
}
