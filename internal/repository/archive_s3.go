package repository

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/orzutravel/api/internal/config"
	"github.com/orzutravel/api/internal/domain"
)

// S3ArchiveRepository implements domain.MediaArchiver using AWS SDK v2.
// The relay provider recompresses photos, so originals are kept here.
type S3ArchiveRepository struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3ArchiveRepository creates a new S3 archive repository
func NewS3ArchiveRepository(ctx context.Context, cfg appConfig.ArchiveConfig) (*S3ArchiveRepository, error) {
	// For SeaweedFS (or generic S3), we need to override the endpoint resolution
	// We use static credentials "any"/"any" because SeaweedFS/MinIO often require signatures
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("any", "any", "")),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // Required for many S3-compatible stores including SeaweedFS
	})

	repo := &S3ArchiveRepository{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.Endpoint,
	}

	if err := repo.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// Archive stores the original bytes and returns the object URL.
// Keys are prefixed with the upload instant so repeated filenames never clash.
func (r *S3ArchiveRepository) Archive(ctx context.Context, file domain.MediaFile) (string, error) {
	key := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), file.Name)

	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file.Data),
		ContentType: aws.String(file.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive file to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", r.publicURL, r.bucket, key), nil
}

// ensureBucket checks if bucket exists, creating it if necessary
func (r *S3ArchiveRepository) ensureBucket(ctx context.Context) error {
	_, err := r.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(r.bucket),
	})
	if err != nil {
		_, err = r.client.CreateBucket(ctx, &s3.CreateBucketInput{
			Bucket: aws.String(r.bucket),
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", r.bucket, err)
		}
	}
	return nil
}
