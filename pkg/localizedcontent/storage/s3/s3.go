package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/tendant/localized-content/pkg/localizedcontent"
	"github.com/tendant/localized-content/pkg/localizedcontent/objectkey"
)

// Config options for the S3 backend.
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
	PublicBaseURL   string // Optional CDN/base URL for public asset URLs
}

// Backend is an S3-compatible implementation of the
// localizedcontent.BlobStore interface.
type Backend struct {
	client        *s3.Client
	uploader      *manager.Uploader
	bucket        string
	region        string
	publicBaseURL string
}

// New creates a new S3-compatible storage backend.
func New(config Config) (*Backend, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	if config.Region == "" {
		config.Region = "us-east-1"
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	return &Backend{
		client:        client,
		uploader:      manager.NewUploader(client),
		bucket:        config.Bucket,
		region:        config.Region,
		publicBaseURL: strings.TrimSuffix(config.PublicBaseURL, "/"),
	}, nil
}

// Upload stores the buffer in the bucket under a generated key.
func (b *Backend) Upload(ctx context.Context, params localizedcontent.UploadParams) (localizedcontent.AssetRef, error) {
	key := objectkey.New(params.Folder, params.FileName)

	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(params.Data),
	}
	if params.MimeType != "" {
		input.ContentType = aws.String(params.MimeType)
	}

	if _, err := b.uploader.Upload(ctx, input); err != nil {
		return localizedcontent.AssetRef{}, &localizedcontent.StorageError{
			Backend: "s3", Key: key, Op: "upload",
			Err: fmt.Errorf("failed to upload to S3: %w", err),
		}
	}

	return localizedcontent.AssetRef{
		PublicID:     key,
		URL:          b.publicURL(key),
		Size:         int64(len(params.Data)),
		Format:       strings.TrimPrefix(filepath.Ext(params.FileName), "."),
		ResourceType: params.ResourceType,
	}, nil
}

// Delete removes an object from the bucket. Deleting a missing key is not
// an error.
func (b *Backend) Delete(ctx context.Context, publicID string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case "NoSuchKey", "NotFound":
				return nil
			}
		}
		return &localizedcontent.StorageError{
			Backend: "s3", Key: publicID, Op: "delete",
			Err: fmt.Errorf("failed to delete from S3: %w", err),
		}
	}

	return nil
}

func (b *Backend) publicURL(key string) string {
	if b.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", b.publicBaseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.bucket, b.region, key)
}
