package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/VlaDexa/misisa/config"
	"github.com/VlaDexa/misisa/models"
)

// MinIOService хранит книги расписаний: сырые в исходном бакете,
// разобранный JSON в целевом
type MinIOService struct {
	client *minio.Client
	bucket string
	urlTTL time.Duration
}

func NewMinIOService(cfg *config.Config) (*MinIOService, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOService{
		client: client,
		bucket: cfg.TargetBucket,
		urlTTL: cfg.PresignedURLTTL,
	}, nil
}

// ListParsedFiles возвращает список разобранных расписаний в целевом
// бакете
func (s *MinIOService) ListParsedFiles(ctx context.Context, prefix string) ([]models.ScheduleFile, error) {
	var files []models.ScheduleFile

	opts := minio.ListObjectsOptions{
		Prefix:       prefix,
		Recursive:    false,
		WithVersions: true,
	}

	for object := range s.client.ListObjects(ctx, s.bucket, opts) {
		if object.Err != nil {
			return nil, object.Err
		}

		// Игнорируем директории
		if strings.HasSuffix(object.Key, "/") {
			continue
		}

		if !strings.HasSuffix(strings.ToLower(object.Key), ".json") {
			continue
		}

		files = append(files, models.ScheduleFile{
			Name:         extractFileName(object.Key),
			Path:         object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
			ETag:         object.ETag,
			Version:      object.VersionID,
		})
	}

	return files, nil
}

// GetPresignedURL генерирует presigned URL для скачивания из целевого
// бакета
func (s *MinIOService) GetPresignedURL(ctx context.Context, objectPath string) (*models.PresignedURLResponse, error) {
	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", fmt.Sprintf("attachment; filename=\"%s\"", extractFileName(objectPath)))

	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucket, objectPath, s.urlTTL, reqParams)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned url: %w", err)
	}

	return &models.PresignedURLResponse{
		URL:       presignedURL.String(),
		ExpiresAt: time.Now().Add(s.urlTTL),
		FileName:  extractFileName(objectPath),
	}, nil
}

// ObjectExists проверяет существование объекта в целевом бакете
func (s *MinIOService) ObjectExists(ctx context.Context, objectPath string) (bool, error) {
	return s.ObjectExistsInBucket(ctx, s.bucket, objectPath)
}

// ObjectExistsInBucket проверяет существование объекта в указанном
// бакете
func (s *MinIOService) ObjectExistsInBucket(ctx context.Context, bucket, objectPath string) (bool, error) {
	_, err := s.client.StatObject(ctx, bucket, objectPath, minio.StatObjectOptions{})
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DownloadParsedFile скачивает разобранное расписание из целевого
// бакета
func (s *MinIOService) DownloadParsedFile(ctx context.Context, objectPath string) ([]byte, error) {
	return s.DownloadFile(ctx, s.bucket, objectPath)
}

// DownloadFile скачивает объект из указанного бакета
func (s *MinIOService) DownloadFile(ctx context.Context, bucket, objectPath string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, bucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return data, nil
}

// UploadFile загружает объект в указанный бакет
func (s *MinIOService) UploadFile(ctx context.Context, bucket, objectPath string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, objectPath, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

func extractFileName(path string) string {
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}
