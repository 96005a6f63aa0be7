package article

import (
	"strings"
	"time"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// ParseStatus defaults to draft for anything but "published".
func ParseStatus(value string) Status {
	if Status(strings.ToLower(strings.TrimSpace(value))) == StatusPublished {
		return StatusPublished
	}
	return StatusDraft
}

type Article struct {
	ID         string
	CompanyID  string
	Title      string
	Slug       string
	Excerpt    *string
	Content    *string
	CoverImage *string
	Tags       []string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ParseTags splits a comma separated list, trimming entries and dropping empty ones.
func ParseTags(value string) []string {
	return CleanTags(strings.Split(value, ","))
}

// CleanTags trims every tag and drops the empty ones, keeping order.
func CleanTags(values []string) []string {
	tags := make([]string, 0, len(values))
	for _, value := range values {
		if tag := strings.TrimSpace(value); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Matches reports whether term appears in the title, slug, content or excerpt.
func (a Article) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	haystack := strings.Join([]string{a.Title, a.Slug, deref(a.Content), deref(a.Excerpt)}, " ")
	return strings.Contains(strings.ToLower(haystack), term)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
