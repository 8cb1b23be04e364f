package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"movie-catalog/internal/config"
	"movie-catalog/internal/errs"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// PresignedUpload is handed to clients that upload a poster directly to the bucket.
type PresignedUpload struct {
	UploadURL   string    `json:"upload_url"`
	PublicURL   string    `json:"public_url"`
	ObjectKey   string    `json:"object_key"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

var allowedPosterTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

type MinIOService struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string
	expiry    time.Duration
	logger    *logrus.Logger
}

// NewMinIOService creates the client without contacting the server; call
// EnsureBucket once at startup.
func NewMinIOService(cfg config.MinIOConfig, logger *logrus.Logger) (*MinIOService, error) {
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	endpoint = strings.TrimSuffix(endpoint, "/")

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	publicURL := strings.TrimSuffix(cfg.PublicURL, "/")
	if publicURL == "" {
		scheme := "http://"
		if cfg.UseSSL {
			scheme = "https://"
		}
		publicURL = scheme + endpoint
	}

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   cfg.BucketName,
		"useSSL":   cfg.UseSSL,
	}).Info("MinIO client initialized successfully")

	return &MinIOService{
		client:    minioClient,
		bucket:    cfg.BucketName,
		region:    cfg.Region,
		publicURL: publicURL,
		expiry:    expiry,
		logger:    logger,
	}, nil
}

// EnsureBucket creates the poster bucket if needed and makes its objects publicly readable.
func (s *MinIOService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	s.logger.WithField("bucket", s.bucket).Info("Bucket policy set to public read")
	return nil
}

// PresignUpload returns a URL the client can PUT a poster image to. The
// signature covers the content type, so the upload must send the same one.
func (s *MinIOService) PresignUpload(ctx context.Context, filename, contentType string) (*PresignedUpload, error) {
	ext, ok := allowedPosterTypes[contentType]
	if !ok {
		return nil, errs.Errorf(errs.EINVALID, "Unsupported content type %q.", contentType)
	}

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Trim(unsafeNameChars.ReplaceAllString(base, "-"), "-")
	if base == "" || base == "." {
		base = "poster"
	}
	objectKey := fmt.Sprintf("%s_%s%s", strings.ToLower(base), uuid.New().String()[:8], ext)

	headers := http.Header{}
	headers.Set("Content-Type", contentType)

	presignedURL, err := s.client.PresignHeader(ctx, http.MethodPut, s.bucket, objectKey, s.expiry, url.Values{}, headers)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate presigned URL")
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"filename":  filename,
		"objectKey": objectKey,
		"expiry":    s.expiry,
	}).Info("Generated presigned URL")

	return &PresignedUpload{
		UploadURL:   presignedURL.String(),
		PublicURL:   s.objectPrefix() + objectKey,
		ObjectKey:   objectKey,
		ContentType: contentType,
		ExpiresAt:   time.Now().UTC().Add(s.expiry),
	}, nil
}

func (s *MinIOService) objectPrefix() string {
	return s.publicURL + "/" + s.bucket + "/"
}

// objectKey extracts the key from a public object URL of this bucket.
func (s *MinIOService) objectKey(objectURL string) (string, bool) {
	key, ok := strings.CutPrefix(objectURL, s.objectPrefix())
	if !ok {
		return "", false
	}
	if idx := strings.IndexAny(key, "?#"); idx != -1 {
		key = key[:idx]
	}
	return key, key != ""
}

func (s *MinIOService) Owns(objectURL string) bool {
	_, ok := s.objectKey(objectURL)
	return ok
}

// Remove deletes the object behind a public URL returned by PresignUpload.
func (s *MinIOService) Remove(ctx context.Context, objectURL string) error {
	objectPath, ok := s.objectKey(objectURL)
	if !ok {
		return fmt.Errorf("%q is not an object of bucket %s", objectURL, s.bucket)
	}

	err := s.client.RemoveObject(ctx, s.bucket, objectPath, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.WithError(err).WithField("objectPath", objectPath).Error("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.WithField("objectPath", objectPath).Info("File deleted successfully from MinIO")
	return nil
}
