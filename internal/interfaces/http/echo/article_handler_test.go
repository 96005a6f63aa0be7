package echo_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	app "github.com/pipelinecrm/crm-server/internal/application/article"
	domain "github.com/pipelinecrm/crm-server/internal/domain/article"
	httpecho "github.com/pipelinecrm/crm-server/internal/interfaces/http/echo"
)

const articleID = "7e2d1c4b-5a69-4f83-b0d2-91c8e3f4a567"

type listArticlesFunc func(ctx context.Context, in app.ListArticlesInput) ([]domain.Article, error)

func (f listArticlesFunc) Execute(ctx context.Context, in app.ListArticlesInput) ([]domain.Article, error) {
	return f(ctx, in)
}

type getArticleFunc func(ctx context.Context, in app.ArticleRef) (domain.Article, error)

func (f getArticleFunc) Execute(ctx context.Context, in app.ArticleRef) (domain.Article, error) {
	return f(ctx, in)
}

type saveArticleFunc func(ctx context.Context, in app.SaveArticleInput) (domain.Article, error)

func (f saveArticleFunc) Execute(ctx context.Context, in app.SaveArticleInput) (domain.Article, error) {
	return f(ctx, in)
}

type deleteArticleFunc func(ctx context.Context, in app.ArticleRef) error

func (f deleteArticleFunc) Execute(ctx context.Context, in app.ArticleRef) error {
	return f(ctx, in)
}

type coverFunc func(ctx context.Context, in app.UploadCoverImageInput) (app.UploadCoverImageOutput, error)

func (f coverFunc) Execute(ctx context.Context, in app.UploadCoverImageInput) (app.UploadCoverImageOutput, error) {
	return f(ctx, in)
}

type slugFunc func(ctx context.Context, title, companyID, excludeID string) (string, error)

func (f slugFunc) Generate(ctx context.Context, title, companyID, excludeID string) (string, error) {
	return f(ctx, title, companyID, excludeID)
}

func TestArticleList(t *testing.T) {
	t.Parallel()

	var got app.ListArticlesInput
	list := listArticlesFunc(func(ctx context.Context, in app.ListArticlesInput) ([]domain.Article, error) {
		got = in
		return []domain.Article{{ID: articleID, Title: "Ciao", Slug: "ciao", Status: domain.StatusDraft}}, nil
	})
	e := newServer(httpecho.Handlers{Article: httpecho.NewArticleHandler(list, nil, nil, nil, nil, nil)})

	env := decode(t, serve(e, jsonRequest(http.MethodGet, "/api/v1/articles?q=cia", "")), http.StatusOK)
	if got.CompanyID != testCompID || got.Search != "cia" {
		t.Fatalf("unexpected input: %+v", got)
	}

	var data []map[string]any
	unmarshalData(t, env, &data)
	if len(data) != 1 || data[0]["slug"] != "ciao" {
		t.Fatalf("unexpected data: %#v", data)
	}
	if tags, ok := data[0]["tags"].([]any); !ok || len(tags) != 0 {
		t.Fatalf("expected empty tags array, got %#v", data[0]["tags"])
	}
}

func TestArticleCreateKeepsTags(t *testing.T) {
	t.Parallel()

	var got app.SaveArticleInput
	save := saveArticleFunc(func(ctx context.Context, in app.SaveArticleInput) (domain.Article, error) {
		got = in
		return domain.Article{ID: articleID, Title: in.Title, Slug: "hello-world-2", Tags: domain.CleanTags(in.Tags), Status: domain.ParseStatus(in.Status)}, nil
	})
	e := newServer(httpecho.Handlers{Article: httpecho.NewArticleHandler(nil, nil, save, nil, nil, nil)})

	body := `{"title":"Hello World","tags":["go"," crm ","vendite, marketing"],"status":"published"}`
	env := decode(t, serve(e, jsonRequest(http.MethodPost, "/api/v1/articles", body)), http.StatusCreated)

	if got.ID != "" || got.CompanyID != testCompID || got.Title != "Hello World" {
		t.Fatalf("unexpected input: %+v", got)
	}

	var data struct {
		Slug   string   `json:"slug"`
		Tags   []string `json:"tags"`
		Status string   `json:"status"`
	}
	unmarshalData(t, env, &data)
	if data.Slug != "hello-world-2" || len(data.Tags) != 3 || data.Tags[1] != "crm" || data.Tags[2] != "vendite, marketing" || data.Status != "published" {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestArticleSaveErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		err    error
		status int
		code   string
	}{
		{name: "missing title", body: `{"content":"x"}`, status: http.StatusBadRequest, code: "validation_failed"},
		{name: "bad status", body: `{"title":"x","status":"archived"}`, status: http.StatusBadRequest, code: "validation_failed"},
		{name: "not found", body: `{"title":"x"}`, err: app.ErrArticleNotFound, status: http.StatusNotFound, code: "not_found"},
		{name: "slug exhausted", body: `{"title":"x"}`, err: fmt.Errorf("%w: after 500 attempts", app.ErrSlugExhausted), status: http.StatusConflict, code: "slug_exhausted"},
		{name: "slug lookup", body: `{"title":"x"}`, err: fmt.Errorf("%w: connection refused", app.ErrSlugLookup), status: http.StatusInternalServerError, code: "internal_error"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			save := saveArticleFunc(func(ctx context.Context, in app.SaveArticleInput) (domain.Article, error) {
				if in.ID != articleID {
					t.Errorf("expected id from path, got %q", in.ID)
				}
				return domain.Article{}, tc.err
			})
			e := newServer(httpecho.Handlers{Article: httpecho.NewArticleHandler(nil, nil, save, nil, nil, nil)})

			rec := serve(e, jsonRequest(http.MethodPut, "/api/v1/articles/"+articleID, tc.body))
			expectErrorCode(t, rec, tc.status, tc.code)
		})
	}
}

func TestArticleGetAndDelete(t *testing.T) {
	t.Parallel()

	get := getArticleFunc(func(ctx context.Context, in app.ArticleRef) (domain.Article, error) {
		return domain.Article{}, app.ErrArticleNotFound
	})
	var deleted app.ArticleRef
	del := deleteArticleFunc(func(ctx context.Context, in app.ArticleRef) error {
		deleted = in
		return nil
	})
	e := newServer(httpecho.Handlers{Article: httpecho.NewArticleHandler(nil, get, nil, del, nil, nil)})

	expectErrorCode(t, serve(e, jsonRequest(http.MethodGet, "/api/v1/articles/"+articleID, "")), http.StatusNotFound, "not_found")

	rec := serve(e, jsonRequest(http.MethodDelete, "/api/v1/articles/"+articleID, ""))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted.ArticleID != articleID || deleted.CompanyID != testCompID {
		t.Fatalf("unexpected delete input: %+v", deleted)
	}
}

func TestArticleUploadCover(t *testing.T) {
	t.Parallel()

	var got app.UploadCoverImageInput
	var gotBody string
	cover := coverFunc(func(ctx context.Context, in app.UploadCoverImageInput) (app.UploadCoverImageOutput, error) {
		got = in
		b, _ := io.ReadAll(in.Body)
		gotBody = string(b)
		return app.UploadCoverImageOutput{URL: "https://cdn.example.com/blogs/x.png"}, nil
	})
	e := newServer(httpecho.Handlers{Article: httpecho.NewArticleHandler(nil, nil, nil, nil, cover, nil)})

	env := decode(t, serve(e, multipartRequest(t, "/api/v1/articles/cover", "cover.PNG", "png-bytes")), http.StatusCreated)
	if got.CompanyID != testCompID || got.Filename != "cover.PNG" || gotBody != "png-bytes" {
		t.Fatalf("unexpected input: %+v body=%q", got, gotBody)
	}

	var data map[string]string
	unmarshalData(t, env, &data)
	if data["url"] != "https://cdn.example.com/blogs/x.png" {
		t.Fatalf("unexpected data: %#v", data)
	}
}

func TestArticleSlugPreview(t *testing.T) {
	t.Parallel()

	slugs := slugFunc(func(ctx context.Context, title, companyID, excludeID string) (string, error) {
		if companyID != testCompID || excludeID != articleID {
			return "", fmt.Errorf("unexpected args %q %q", companyID, excludeID)
		}
		return domain.Slugify(title), nil
	})
	e := newServer(httpecho.Handlers{Article: httpecho.NewArticleHandler(nil, nil, nil, nil, nil, slugs)})

	env := decode(t, serve(e, jsonRequest(http.MethodGet, "/api/v1/articles/slug?title=Caff%C3%A8+%26+Co.&exclude_id="+articleID, "")), http.StatusOK)
	var data map[string]string
	unmarshalData(t, env, &data)
	if data["slug"] != "caffe-co" {
		t.Fatalf("unexpected slug: %#v", data)
	}

	expectErrorCode(t, serve(e, jsonRequest(http.MethodGet, "/api/v1/articles/slug", "")), http.StatusBadRequest, "bad_request")
}

func TestArticleSlugPreviewRejectsBadExcludeID(t *testing.T) {
	t.Parallel()

	e := newServer(httpecho.Handlers{Article: httpecho.NewArticleHandler(nil, nil, nil, nil, nil, nil)})

	rec := serve(e, jsonRequest(http.MethodGet, "/api/v1/articles/slug?title=Ciao&exclude_id=nope", ""))
	expectErrorCode(t, rec, http.StatusBadRequest, "invalid_article_id")
}
