package article

import "errors"

var (
	ErrInvalidCompanyID = errors.New("invalid company id")
	ErrInvalidArticleID = errors.New("invalid article id")
	ErrInvalidArticle   = errors.New("invalid article")
	ErrArticleNotFound  = errors.New("article not found")
	ErrSlugLookup       = errors.New("failed to check slug availability")
	ErrSlugExhausted    = errors.New("no free slug left")
	ErrListArticles     = errors.New("failed to list articles")
	ErrSaveArticle      = errors.New("failed to save article")
	ErrDeleteArticle    = errors.New("failed to delete article")
	ErrInvalidUpload    = errors.New("invalid upload")
	ErrUploadCover      = errors.New("failed to upload cover image")
)
