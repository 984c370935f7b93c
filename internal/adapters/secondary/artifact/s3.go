package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

// S3Store serves s3://bucket/key artifact URIs. A non-empty endpoint enables
// path-style addressing (MinIO and similar).
type S3Store struct {
	client *s3.Client
}

func NewS3Store(ctx context.Context, region, endpoint string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Store{client: s3.NewFromConfig(cfg, s3opts...)}, nil
}

func (s *S3Store) Supports(uri string) bool {
	return strings.HasPrefix(uri, "s3://")
}

func (s *S3Store) Fetch(ctx context.Context, uri string) ([]byte, error) {
	bucket, key, err := splitURI(uri)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, uri)
		}
		return nil, fmt.Errorf("s3 get object %s: %w", uri, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3 object %s: %w", uri, err)
	}
	return data, nil
}

func splitURI(uri string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(uri, "s3://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: malformed s3 URI %q", domain.ErrArtifactInvalid, uri)
	}
	return parts[0], parts[1], nil
}

var _ ports.ArtifactStore = (*S3Store)(nil)
