package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/ikkim/kiwimarket-backend/config"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
)

// MaxImageSize 상품 이미지 최대 크기 (10MB)
const MaxImageSize int64 = 10 << 20

const productImageFolder = "products"

var (
	ErrUnsupportedContentType = errors.New("unsupported image content type")
	ErrFileTooLarge           = errors.New("image exceeds maximum size")
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// objectStore is the part of *s3.Client used for listing images.
type objectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Storage struct {
	client  objectStore
	bucket  string
	region  string
	baseURL string
}

func NewS3Storage(cfg config.S3Config) *S3Storage {
	var awsCfg aws.Config
	var err error

	// If credentials are provided, use them. Otherwise, use default credential chain
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		}
	} else {
		// Use default credential chain (environment variables, ~/.aws/credentials, IAM role, etc.)
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.Region),
		)
		if err != nil {
			logger.Warn("Failed to load default AWS config, using region only", map[string]interface{}{
				"error": err.Error(),
			})
			awsCfg = aws.Config{Region: cfg.Region}
		}
	}

	return newS3Storage(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Region, cfg.BaseURL)
}

func newS3Storage(client objectStore, bucket, region, baseURL string) *S3Storage {
	return &S3Storage{
		client:  client,
		bucket:  bucket,
		region:  region,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// CheckImage reports whether an image would be accepted by UploadImage.
func (s *S3Storage) CheckImage(contentType string, size int64) error {
	if err := ValidateContentType(contentType, allowedImageTypes); err != nil {
		return err
	}
	return ValidateFileSize(size, MaxImageSize)
}

// UploadImage puts a listing image under products/<uuid><ext> and returns
// its public URL.
func (s *S3Storage) UploadImage(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	if err := s.CheckImage(contentType, size); err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s%s", productImageFolder, uuid.New().String(), strings.ToLower(filepath.Ext(filename)))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		logger.Error("Failed to upload image to S3", err, map[string]interface{}{
			"bucket": s.bucket,
			"key":    key,
		})
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	logger.Debug("Image uploaded to S3", map[string]interface{}{
		"bucket": s.bucket,
		"key":    key,
		"size":   size,
	})
	return s.fileURL(key), nil
}

// DeleteImage removes an object previously returned by UploadImage.
func (s *S3Storage) DeleteImage(ctx context.Context, url string) error {
	prefix := s.fileURL("")
	if !strings.HasPrefix(url, prefix) {
		return fmt.Errorf("image url %s is not in bucket %s", url, s.bucket)
	}
	key := strings.TrimPrefix(url, prefix)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.Error("Failed to delete image from S3", err, map[string]interface{}{
			"bucket": s.bucket,
			"key":    key,
		})
		return fmt.Errorf("failed to delete image: %w", err)
	}

	logger.Debug("Image deleted from S3", map[string]interface{}{
		"bucket": s.bucket,
		"key":    key,
	})
	return nil
}

func (s *S3Storage) fileURL(key string) string {
	if s.baseURL != "" {
		// Use CloudFront or custom domain
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// ValidateFileSize validates the file size
func ValidateFileSize(size int64, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, size, maxSize)
	}
	return nil
}

// ValidateContentType validates the content type
func ValidateContentType(contentType string, allowedTypes []string) error {
	for _, allowed := range allowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
}
