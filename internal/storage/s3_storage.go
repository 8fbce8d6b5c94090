package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Upload folders, one per catalog surface.
const (
	FolderCars      = "cars"
	FolderParts     = "parts"
	FolderCompanies = "companies"
)

const (
	presignExpiry = 15 * time.Minute
	// MaxImageSize caps direct-to-S3 uploads.
	MaxImageSize = 10 * 1024 * 1024
)

// AllowedImageTypes are the content types accepted for listing images.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
}

func NewS3Storage(region, bucket, accessKeyID, secretAccessKey, baseURL string) *S3Storage {
	var cfg aws.Config
	var err error

	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		// Fall back to the default chain: env vars, shared config, IAM role.
		cfg, err = config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(region),
		)
		if err != nil {
			cfg = aws.Config{Region: region}
		}
	}

	return &S3Storage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// ValidFolder reports whether the folder is one of the known upload targets.
func ValidFolder(folder string) bool {
	switch folder {
	case FolderCars, FolderParts, FolderCompanies:
		return true
	}
	return false
}

// PresignUpload returns a short-lived PUT URL for a listing image. The
// object key is random; the original filename only contributes its extension.
func (s *S3Storage) PresignUpload(filename, contentType, folder string) (*PresignedUpload, error) {
	if err := s.validateContentType(contentType); err != nil {
		return nil, err
	}

	ext := filepath.Ext(filename)
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	presignClient := s3.NewPresignClient(s.client)
	presignedReq, err := presignClient.PresignPutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &PresignedUpload{
		UploadURL: presignedReq.URL,
		FileURL:   s.fileURL(key),
		Key:       key,
	}, nil
}

func (s *S3Storage) fileURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
}

func (s *S3Storage) validateContentType(contentType string) error {
	for _, allowed := range AllowedImageTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("content type %s is not allowed", contentType)
}

// ValidateFileSize rejects declared sizes over the upload cap.
func (s *S3Storage) ValidateFileSize(size int64) error {
	if size > MaxImageSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", MaxImageSize)
	}
	return nil
}
