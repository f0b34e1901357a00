package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"Mala_Admin/internal/pkg"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Store stores blobs in an S3 (or S3-compatible) bucket.
type S3Store struct {
	client       *s3.Client
	logger       *slog.Logger
	bucket       string
	region       string
	endpoint     string
	baseURL      string
	usePathStyle bool
	timeout      time.Duration
}

type S3OptionFunc func(*S3Store)

func WithBucket(bucket string) S3OptionFunc {
	return func(s *S3Store) { s.bucket = bucket }
}

func WithRegion(region string) S3OptionFunc {
	return func(s *S3Store) { s.region = region }
}

// WithEndpoint points the client at an S3-compatible service such as minio.
func WithEndpoint(endpoint string) S3OptionFunc {
	return func(s *S3Store) { s.endpoint = endpoint }
}

func WithPathStyle(enabled bool) S3OptionFunc {
	return func(s *S3Store) { s.usePathStyle = enabled }
}

// WithPublicBaseURL overrides the https://<bucket>.s3.amazonaws.com URL prefix.
func WithPublicBaseURL(base string) S3OptionFunc {
	return func(s *S3Store) { s.baseURL = strings.TrimRight(base, "/") }
}

func WithTimeout(timeout time.Duration) S3OptionFunc {
	return func(s *S3Store) { s.timeout = timeout }
}

func WithLogger(logger *slog.Logger) S3OptionFunc {
	return func(s *S3Store) { s.logger = logger }
}

// NewS3Store loads the default AWS credential chain and builds the client.
func NewS3Store(ctx context.Context, opts ...S3OptionFunc) (*S3Store, error) {
	s := &S3Store{}
	for _, opt := range opts {
		opt(s)
	}
	if s.bucket == "" {
		return nil, errors.New("s3 blob: bucket not set")
	}
	if s.logger == nil {
		s.logger = pkg.DiscardLogger()
	}
	if s.timeout == 0 {
		s.timeout = 60 * time.Second
	}
	if s.baseURL == "" {
		s.baseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", s.bucket)
	}

	loadCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	awsCfg, err := config.LoadDefaultConfig(loadCtx)
	if err != nil {
		return nil, fmt.Errorf("s3 blob: load default AWS config: %w", err)
	}
	if s.region != "" {
		awsCfg.Region = s.region
	}
	s.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s.endpoint != "" {
			o.BaseEndpoint = aws.String(s.endpoint)
		}
		o.UsePathStyle = s.usePathStyle
	})
	return s, nil
}

func (s *S3Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	// payload signing over plain http needs a seekable body; multipart
	// files already are
	if _, ok := body.(io.ReadSeeker); !ok {
		buf, err := io.ReadAll(body)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
		size = int64(len(buf))
	}
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return err
	}
	s.logger.Debug(fmt.Sprintf("s3 put %q ok (%d bytes)", key, size), "component", "storage")
	return nil
}

// Delete treats a missing object as already deleted.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil && !isS3NotFound(err) {
		return err
	}
	return nil
}

func (s *S3Store) URL(key string) string {
	return s.baseURL + "/" + key
}

func (s *S3Store) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

func isS3NotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound") {
		return true
	}
	var noSuchKey *s3types.NoSuchKey
	return errors.As(err, &noSuchKey)
}
