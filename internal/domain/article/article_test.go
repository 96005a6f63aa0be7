package article_test

import (
	"testing"

	domain "github.com/pipelinecrm/crm-server/internal/domain/article"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Caffè & Co.":             "caffe-co",
		"Hello World":             "hello-world",
		"  --Già, più  perché-- ": "gia-piu-perche",
		"Sci-Fi/Fantasy 2026":     "sci-fi-fantasy-2026",
		"ÀÉÎÕÜ":                   "aeiou",
		"":                        domain.FallbackSlug,
		"!!!":                     domain.FallbackSlug,
		"東京":                      domain.FallbackSlug,
		"Go—Rust":                 "go-rust",
		"Straße":                  "stra-e",
		"L’Aquila":                "l-aquila",
		"Milano→Roma":             "milano-roma",
		"«Citazione» finale":      "citazione-finale",
		"Caffè–Bar":               "caffe-bar",
	}

	for in, want := range tests {
		assert.Equal(t, want, domain.Slugify(in), in)
	}
}

func TestSlugifyIsStable(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"Caffè & Co.", "a--b", "Ünïcödé Title"} {
		once := domain.Slugify(in)
		assert.Equal(t, once, domain.Slugify(once))
	}
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, domain.ParseTags(" a, b,, c ,"))
	assert.Empty(t, domain.ParseTags(""))
	assert.Equal(t, []string{"vendite, marketing", "crm"}, domain.CleanTags([]string{" vendite, marketing ", "", "crm"}))
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.StatusPublished, domain.ParseStatus("Published"))
	assert.Equal(t, domain.StatusDraft, domain.ParseStatus("archived"))
}

func TestArticleMatches(t *testing.T) {
	t.Parallel()

	content := "Una guida al caffè"
	a := domain.Article{Title: "Espresso", Slug: "espresso", Content: &content}

	assert.True(t, a.Matches(""))
	assert.True(t, a.Matches("GUIDA"))
	assert.True(t, a.Matches("espr"))
	assert.False(t, a.Matches("tè verde"))
}
