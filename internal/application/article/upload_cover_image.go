package article

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pipelinecrm/crm-server/internal/domain/storage"
)

type UploadCoverImageInput struct {
	CompanyID   string
	Filename    string
	ContentType string
	Body        io.ReadSeeker
}

type UploadCoverImageOutput struct {
	URL string `json:"url"`
}

type UploadCoverImage interface {
	Execute(ctx context.Context, in UploadCoverImageInput) (UploadCoverImageOutput, error)
}

type uploadCoverImage struct {
	store storage.BlobStore
	newID func() string
}

func NewUploadCoverImage(store storage.BlobStore) UploadCoverImage {
	return &uploadCoverImage{store: store, newID: uuid.NewString}
}

// Execute stores the image under blogs/<company>/<random id><ext> so uploads
// never overwrite each other.
func (uc *uploadCoverImage) Execute(ctx context.Context, in UploadCoverImageInput) (UploadCoverImageOutput, error) {
	companyID := strings.TrimSpace(in.CompanyID)
	if companyID == "" {
		return UploadCoverImageOutput{}, ErrInvalidCompanyID
	}
	if in.Body == nil {
		return UploadCoverImageOutput{}, fmt.Errorf("%w: %v", ErrInvalidUpload, storage.ErrEmptyObject)
	}

	key := companyID + "/" + uc.newID() + strings.ToLower(path.Ext(in.Filename))
	url, err := uc.store.Put(ctx, storage.Object{
		Bucket:      storage.BucketBlogs,
		Key:         key,
		Body:        in.Body,
		ContentType: in.ContentType,
	})
	if err != nil {
		return UploadCoverImageOutput{}, fmt.Errorf("%w: %v", ErrUploadCover, err)
	}
	return UploadCoverImageOutput{URL: url}, nil
}
