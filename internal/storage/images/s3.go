package images

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/magabrotheeeer/foodgram/internal/lib/base64image"
)

// S3Config описывает подключение к S3-совместимому хранилищу.
type S3Config struct {
	Endpoint  string // Пустое значение означает AWS S3
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string // Адрес, по которому объекты бакета доступны клиентам
}

// S3Store хранит изображения в бакете S3.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Store создаёт клиента S3 со статическими ключами доступа.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	const op = "images.NewS3Store"

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/") + "/",
	}, nil
}

// Save загружает изображение в бакет.
func (s *S3Store) Save(ctx context.Context, dir string, img *base64image.Image) (string, error) {
	const op = "images.S3Store.Save"
	key := newKey(dir, img.Ext)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(img.Data),
		ContentType:   aws.String(img.ContentType),
		ContentLength: aws.Int64(int64(len(img.Data))),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return key, nil
}

// Delete удаляет объект из бакета.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	const op = "images.S3Store.Delete"
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// URL возвращает публичную ссылку на объект.
func (s *S3Store) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.publicURL + key
}
