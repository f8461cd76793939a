// internal/books/upload.go
package books

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// UploadService stores cover images in S3 or on local disk
type UploadService struct {
	s3Client   *s3.S3
	bucketName string
	baseURL    string
	uploadDir  string // For local storage
	useS3      bool
}

// UploadConfig holds storage settings for cover uploads
type UploadConfig struct {
	UseS3          bool
	S3Bucket       string
	AWSRegion      string
	LocalUploadDir string
	BaseURL        string
}

// NewUploadService creates the configured upload backend
func NewUploadService(config UploadConfig) *UploadService {
	us := &UploadService{
		bucketName: config.S3Bucket,
		baseURL:    config.BaseURL,
		uploadDir:  config.LocalUploadDir,
		useS3:      config.UseS3,
	}

	if config.UseS3 {
		sess := session.Must(session.NewSession(&aws.Config{
			Region: aws.String(config.AWSRegion),
		}))
		us.s3Client = s3.New(sess)
	} else {
		// Create upload directory if it doesn't exist
		if err := os.MkdirAll(config.LocalUploadDir, 0755); err != nil {
			panic("Failed to create upload directory: " + err.Error())
		}
	}

	return us
}

// UploadFile validates and stores a cover image, returning its URL
func (us *UploadService) UploadFile(file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := us.validateFile(header); err != nil {
		return "", err
	}

	filename := us.generateFilename(header.Filename)

	if us.useS3 {
		return us.uploadToS3(file, filename, header)
	}

	return us.uploadToLocal(file, filename)
}

func (us *UploadService) uploadToS3(file multipart.File, filename string, header *multipart.FileHeader) (string, error) {
	buffer := bytes.NewBuffer(nil)
	if _, err := io.Copy(buffer, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("covers/%s/%s", time.Now().Format("2006/01"), filename)

	_, err := us.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:             aws.String(us.bucketName),
		Key:                aws.String(key),
		Body:               bytes.NewReader(buffer.Bytes()),
		ContentType:        aws.String(header.Header.Get("Content-Type")),
		ContentDisposition: aws.String("inline"),
		ACL:                aws.String("public-read"),
	})

	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", us.bucketName, key), nil
}

func (us *UploadService) uploadToLocal(file multipart.File, filename string) (string, error) {
	path := filepath.Join(us.uploadDir, "covers", filename)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/covers/%s", us.baseURL, filename), nil
}

func (us *UploadService) validateFile(header *multipart.FileHeader) error {
	// 5 MB cap on cover images
	if header.Size > 5<<20 {
		return fmt.Errorf("file too large: maximum size is 5MB")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return nil
	default:
		return fmt.Errorf("unsupported file type: %s", ext)
	}
}

func (us *UploadService) generateFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%s_%d%s", uuid.New().String(), time.Now().Unix(), ext)
}
