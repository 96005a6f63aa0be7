package account

import (
	"context"
	"fmt"
	"io"
	"strings"

	domain "github.com/pipelinecrm/crm-server/internal/domain/account"
	"github.com/pipelinecrm/crm-server/internal/domain/storage"
)

const avatarCacheControl = "max-age=3600"

type UploadAvatarInput struct {
	UserID      string
	Filename    string
	ContentType string
	Body        io.ReadSeeker
}

type UploadAvatarOutput struct {
	URL string `json:"url"`
}

type UploadAvatar interface {
	Execute(ctx context.Context, in UploadAvatarInput) (UploadAvatarOutput, error)
}

type uploadAvatar struct {
	store    storage.BlobStore
	profiles UpdateProfile
}

func NewUploadAvatar(store storage.BlobStore, profiles UpdateProfile) UploadAvatar {
	return &uploadAvatar{store: store, profiles: profiles}
}

// Execute stores the image as avatars/<user id>.<ext>, replacing the previous
// one, and points the profile at it.
func (uc *uploadAvatar) Execute(ctx context.Context, in UploadAvatarInput) (UploadAvatarOutput, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return UploadAvatarOutput{}, ErrInvalidUserID
	}
	if in.Body == nil {
		return UploadAvatarOutput{}, fmt.Errorf("%w: %v", ErrInvalidUpload, storage.ErrEmptyObject)
	}

	url, err := uc.store.Put(ctx, storage.Object{
		Bucket:       storage.BucketAvatars,
		Key:          userID + "." + storage.Extension(in.Filename, "png"),
		Body:         in.Body,
		ContentType:  in.ContentType,
		CacheControl: avatarCacheControl,
	})
	if err != nil {
		return UploadAvatarOutput{}, fmt.Errorf("%w: %v", ErrUploadAvatar, err)
	}

	if _, err := uc.profiles.Execute(ctx, UpdateProfileInput{
		UserID:         userID,
		ProfileChanges: domain.ProfileChanges{AvatarURL: &url},
	}); err != nil {
		return UploadAvatarOutput{}, err
	}
	return UploadAvatarOutput{URL: url}, nil
}
