package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"projectdocs-backend/internal/shared/storage/object"
)

// Options configures an S3-backed client.
type Options struct {
	Backend       object.Backend
	Region        string
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

// Store implements object.Client using Amazon S3.
type Store struct {
	client     *s3.Client
	presign    *s3.PresignClient
	backend    object.Backend
	bucket     string
	region     string
	prefix     string
	publicBase string
}

// New loads the default AWS credential chain and creates an S3-backed client.
func New(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewFromConfig(cfg, opts)
}

// NewFromConfig creates an S3-backed client from an explicit aws.Config.
func NewFromConfig(cfg aws.Config, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	backend := opts.Backend
	if backend == "" {
		backend = object.BackendPrimary
	}
	region := opts.Region
	if region == "" {
		region = cfg.Region
	}

	client := s3.NewFromConfig(cfg)
	return &Store{
		client:     client,
		presign:    s3.NewPresignClient(client),
		backend:    backend,
		bucket:     opts.Bucket,
		region:     region,
		prefix:     normalizePrefix(opts.Prefix),
		publicBase: strings.TrimRight(strings.TrimSpace(opts.PublicBaseURL), "/"),
	}, nil
}

func (s *Store) Backend() object.Backend { return s.backend }

// Put uploads data under the prefixed key.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	objectKey := applyPrefix(s.prefix, key)
	input := &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(objectKey),
		Body:                 bytes.NewReader(data),
		ContentLength:        aws.Int64(int64(len(data))),
		ContentType:          aws.String(contentType),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return nil
}

// SignedURL presigns a GetObject request for key.
func (s *Store) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	objectKey := applyPrefix(s.prefix, key)
	out, err := s.presign.PresignGetObject(ctx, getInput(s.bucket, objectKey), func(o *s3.PresignOptions) {
		o.Expires = ttl
	})
	if err != nil {
		return "", fmt.Errorf("s3 presign get bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return out.URL, nil
}

// PublicURL returns the virtual-hosted style URL of key, or the configured public base.
func (s *Store) PublicURL(key string) string {
	objectKey := applyPrefix(s.prefix, key)
	if s.publicBase != "" {
		return object.JoinURL(s.publicBase, objectKey)
	}
	return object.JoinURL(fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.bucket, s.region), objectKey)
}

func getInput(bucket, key string) *s3.GetObjectInput {
	return &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
}

func normalizePrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func applyPrefix(prefix, key string) string {
	cleanPrefix := strings.Trim(prefix, "/")
	cleanKey := object.NormalizeKey(key)
	if cleanPrefix == "" {
		return cleanKey
	}
	if cleanKey == "" {
		return cleanPrefix
	}
	return cleanPrefix + "/" + cleanKey
}

var _ object.Client = (*Store)(nil)
