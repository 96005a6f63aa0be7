package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	domain "github.com/pipelinecrm/crm-server/internal/domain/article"
	"github.com/pipelinecrm/crm-server/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) SlugExists(ctx context.Context, companyID, slug, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("company_id = ? AND slug = ?", companyID, slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count > 0, nil
}

func (r *ArticleRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Article, error) {
	var rows []models.Article
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	articles := make([]domain.Article, 0, len(rows))
	for _, row := range rows {
		articles = append(articles, articleFromModel(row))
	}
	return articles, nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, companyID, articleID string) (*domain.Article, error) {
	var row models.Article
	err := r.db.WithContext(ctx).
		First(&row, "id = ? AND company_id = ?", articleID, companyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("get article by id: %w", err)
	}

	a := articleFromModel(row)
	return &a, nil
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) error {
	row := articleToModel(*a)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	a.ID = row.ID
	return nil
}

func (r *ArticleRepository) Update(ctx context.Context, a *domain.Article) error {
	row := articleToModel(*a)
	res := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("id = ? AND company_id = ?", a.ID, a.CompanyID).
		Select("title", "slug", "excerpt", "content", "cover_image", "tags", "status", "updated_at").
		Updates(&row)
	if res.Error != nil {
		return fmt.Errorf("update article: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, companyID, articleID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", articleID, companyID).
		Delete(&models.Article{})
	if res.Error != nil {
		return fmt.Errorf("delete article: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func articleFromModel(row models.Article) domain.Article {
	tags := []string(row.Tags)
	if tags == nil {
		tags = []string{}
	}
	return domain.Article{
		ID:         row.ID,
		CompanyID:  row.CompanyID,
		Title:      row.Title,
		Slug:       row.Slug,
		Excerpt:    row.Excerpt,
		Content:    row.Content,
		CoverImage: row.CoverImage,
		Tags:       tags,
		Status:     domain.Status(row.Status),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func articleToModel(a domain.Article) models.Article {
	return models.Article{
		ID:         a.ID,
		CompanyID:  a.CompanyID,
		Title:      a.Title,
		Slug:       a.Slug,
		Excerpt:    a.Excerpt,
		Content:    a.Content,
		CoverImage: a.CoverImage,
		Tags:       pq.StringArray(a.Tags),
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
