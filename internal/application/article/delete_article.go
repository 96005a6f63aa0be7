package article

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/pipelinecrm/crm-server/internal/domain/article"
	"github.com/rs/zerolog/log"
)

type DeleteArticle interface {
	Execute(ctx context.Context, in ArticleRef) error
}

type deleteArticle struct {
	repo domain.Repository
}

func NewDeleteArticle(repo domain.Repository) DeleteArticle {
	return &deleteArticle{repo: repo}
}

func (uc *deleteArticle) Execute(ctx context.Context, in ArticleRef) error {
	if err := validArticleRef(in.CompanyID, in.ArticleID); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, in.CompanyID, in.ArticleID); err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("%w: %v", ErrDeleteArticle, err)
	}

	log.Info().Str("company_id", in.CompanyID).Str("article_id", in.ArticleID).Msg("article deleted")
	return nil
}
