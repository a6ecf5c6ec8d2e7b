package services

import (
	"context"
	"fmt"
	"time"

	appconfig "health_record_ms/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hashicorp/go-uuid"
)

// IStorageService hands out short-lived presigned URLs; document bytes never
// pass through this service.
type IStorageService interface {
	NewObjectKey(userID uint) (string, error)
	PresignUpload(ctx context.Context, key string, contentType string) (string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
	DeleteObject(ctx context.Context, key string) error
}

type StorageService struct {
	cfg appconfig.Storage
}

func NewStorageService(cfg appconfig.Storage) IStorageService {
	return &StorageService{cfg: cfg}
}

func (s *StorageService) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(s.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (s *StorageService) presignTTL() time.Duration {
	mins := s.cfg.PresignInMin
	if mins <= 0 {
		mins = 15
	}
	return time.Duration(mins) * time.Minute
}

func (s *StorageService) NewObjectKey(userID uint) (string, error) {
	id, err := uuid.GenerateUUID()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("documents/%d/%s", userID, id), nil
}

func (s *StorageService) PresignUpload(ctx context.Context, key string, contentType string) (string, error) {
	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}
	presign := s3.NewPresignClient(client)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	req, err := presign.PresignPutObject(ctx, input, s3.WithPresignExpires(s.presignTTL()))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *StorageService) PresignDownload(ctx context.Context, key string) (string, error) {
	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}
	presign := s3.NewPresignClient(client)

	req, err := presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignTTL()))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *StorageService) DeleteObject(ctx context.Context, key string) error {
	client, err := s.client(ctx)
	if err != nil {
		return err
	}
	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	return err
}
