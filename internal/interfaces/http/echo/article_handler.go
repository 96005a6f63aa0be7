package echo

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	app "github.com/pipelinecrm/crm-server/internal/application/article"
)

// SlugPreviewer computes the slug an article would get without saving it.
type SlugPreviewer interface {
	Generate(ctx context.Context, title, companyID, excludeID string) (string, error)
}

type ArticleHandler struct {
	list   app.ListArticles
	get    app.GetArticle
	save   app.SaveArticle
	delete app.DeleteArticle
	cover  app.UploadCoverImage
	slugs  SlugPreviewer
}

func NewArticleHandler(
	list app.ListArticles,
	get app.GetArticle,
	save app.SaveArticle,
	del app.DeleteArticle,
	cover app.UploadCoverImage,
	slugs SlugPreviewer,
) *ArticleHandler {
	return &ArticleHandler{list: list, get: get, save: save, delete: del, cover: cover, slugs: slugs}
}

type articleRequest struct {
	Title      string   `json:"title" validate:"required"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	CoverImage string   `json:"cover_image"`
	Tags       []string `json:"tags"`
	Status     string   `json:"status" validate:"omitempty,oneof=draft published"`
}

var articleErrorCases = []errorCase{
	{err: app.ErrInvalidArticleID, status: http.StatusBadRequest, code: "invalid_article_id", message: "id must be a valid UUID"},
	{err: app.ErrInvalidCompanyID, status: http.StatusBadRequest, code: "invalid_company_id"},
	{err: app.ErrInvalidArticle, status: http.StatusBadRequest, code: "invalid_article"},
	{err: app.ErrInvalidUpload, status: http.StatusBadRequest, code: "invalid_upload"},
	{err: app.ErrArticleNotFound, status: http.StatusNotFound, code: "not_found", message: "article not found"},
	{err: app.ErrSlugExhausted, status: http.StatusConflict, code: "slug_exhausted"},
}

func (h *ArticleHandler) List(c echo.Context) error {
	articles, err := h.list.Execute(c.Request().Context(), app.ListArticlesInput{
		CompanyID: sessionFrom(c).CompanyID,
		Search:    c.QueryParam("q"),
	})
	if err != nil {
		return respondUseCaseError(c, err, "failed to list articles", articleErrorCases...)
	}

	out := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, newArticleResponse(a))
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ArticleHandler) Get(c echo.Context) error {
	found, err := h.get.Execute(c.Request().Context(), app.ArticleRef{
		CompanyID: sessionFrom(c).CompanyID,
		ArticleID: c.Param("id"),
	})
	if err != nil {
		return respondUseCaseError(c, err, "failed to get article", articleErrorCases...)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: newArticleResponse(found)})
}

func (h *ArticleHandler) Create(c echo.Context) error {
	return h.saveArticle(c, "", http.StatusCreated)
}

func (h *ArticleHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if strings.TrimSpace(id) == "" {
		return respondError(c, http.StatusBadRequest, "invalid_article_id", "id must be a valid UUID")
	}
	return h.saveArticle(c, id, http.StatusOK)
}

func (h *ArticleHandler) saveArticle(c echo.Context, id string, status int) error {
	var req articleRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	saved, err := h.save.Execute(c.Request().Context(), app.SaveArticleInput{
		CompanyID:  sessionFrom(c).CompanyID,
		ID:         id,
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
		Status:     req.Status,
	})
	if err != nil {
		return respondUseCaseError(c, err, "failed to save article", articleErrorCases...)
	}
	return c.JSON(status, apiResponse{Data: newArticleResponse(saved)})
}

func (h *ArticleHandler) Delete(c echo.Context) error {
	err := h.delete.Execute(c.Request().Context(), app.ArticleRef{
		CompanyID: sessionFrom(c).CompanyID,
		ArticleID: c.Param("id"),
	})
	if err != nil {
		return respondUseCaseError(c, err, "failed to delete article", articleErrorCases...)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ArticleHandler) UploadCover(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	file, err := header.Open()
	if err != nil {
		return badRequest(c, "failed to read uploaded file")
	}
	defer file.Close()

	out, err := h.cover.Execute(c.Request().Context(), app.UploadCoverImageInput{
		CompanyID:   sessionFrom(c).CompanyID,
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Body:        file,
	})
	if err != nil {
		return respondUseCaseError(c, err, "failed to upload cover image", articleErrorCases...)
	}
	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

// SlugPreview returns the slug title would receive, ignoring the article
// named by exclude_id.
func (h *ArticleHandler) SlugPreview(c echo.Context) error {
	title := c.QueryParam("title")
	if strings.TrimSpace(title) == "" {
		return badRequest(c, "title is required")
	}

	excludeID := strings.TrimSpace(c.QueryParam("exclude_id"))
	if excludeID != "" {
		if _, err := uuid.Parse(excludeID); err != nil {
			return respondError(c, http.StatusBadRequest, "invalid_article_id", "exclude_id must be a valid UUID")
		}
	}

	slug, err := h.slugs.Generate(c.Request().Context(), title, sessionFrom(c).CompanyID, excludeID)
	if err != nil {
		return respondUseCaseError(c, err, "failed to generate slug", articleErrorCases...)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: map[string]string{"slug": slug}})
}
