package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

const (
	BucketAvatars = "avatars"
	BucketBlogs   = "blogs"
)

var ErrEmptyObject = errors.New("empty object")

// Object is a file to be written to a bucket.
type Object struct {
	Bucket       string
	Key          string
	Body         io.ReadSeeker
	ContentType  string
	CacheControl string
}

// BlobStore writes objects, replacing any object already stored under the
// same key, and returns the public URL of the stored object.
type BlobStore interface {
	Put(ctx context.Context, obj Object) (string, error)
}

// Extension returns the lower-cased extension of filename without the dot,
// or fallback when there is none.
func Extension(filename, fallback string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		return fallback
	}
	return ext
}
