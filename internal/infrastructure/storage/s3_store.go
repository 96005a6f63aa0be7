package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	domain "github.com/pipelinecrm/crm-server/internal/domain/storage"
	"github.com/rs/zerolog/log"
)

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	PublicURL string
	UseSSL    bool
}

// S3Store writes objects to an S3 compatible store. Bucket names map one to one
// onto S3 buckets.
type S3Store struct {
	client    s3iface.S3API
	publicURL string
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.PublicURL == "" {
		return nil, fmt.Errorf("S3 configuration missing")
	}

	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		DisableSSL:       aws.Bool(!cfg.UseSSL),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewS3StoreWithClient(s3.New(sess), cfg.PublicURL), nil
}

func NewS3StoreWithClient(client s3iface.S3API, publicURL string) *S3Store {
	return &S3Store{client: client, publicURL: strings.TrimRight(publicURL, "/")}
}

func (s *S3Store) Put(ctx context.Context, obj domain.Object) (string, error) {
	if obj.Body == nil {
		return "", domain.ErrEmptyObject
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(obj.Bucket),
		Key:    aws.String(obj.Key),
		Body:   obj.Body,
	}
	if obj.ContentType != "" {
		input.ContentType = aws.String(obj.ContentType)
	}
	if obj.CacheControl != "" {
		input.CacheControl = aws.String(obj.CacheControl)
	}

	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("put %s/%s: %w", obj.Bucket, obj.Key, err)
	}

	url := s.PublicURL(obj.Bucket, obj.Key)
	log.Info().Str("bucket", obj.Bucket).Str("key", obj.Key).Msg("object stored")
	return url, nil
}

func (s *S3Store) PublicURL(bucket, key string) string {
	return s.publicURL + "/" + bucket + "/" + key
}

var ErrStorageDisabled = errors.New("object storage is not configured")

// Disabled rejects every upload. It stands in when no S3 credentials are set.
type Disabled struct{}

func (Disabled) Put(ctx context.Context, obj domain.Object) (string, error) {
	return "", ErrStorageDisabled
}
