package photos

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"prop_search/internal/config"
	"prop_search/internal/lib/logger/sl"
)

// Resolver выдаёт временные ссылки на фотографии объявлений
// в объектном хранилище. Только чтение: загрузкой фотографий
// занимается внешний контур.
type Resolver interface {
	// PhotoURLs возвращает presigned-ссылки для ключей фотографий.
	// Ключ, для которого не удалось построить ссылку, молча пропускается.
	PhotoURLs(ctx context.Context, keys []string) []string
	IsEnabled() bool
}

type resolver struct {
	client    *minio.Client
	bucket    string
	urlExpiry time.Duration
	log       *slog.Logger
}

// NewResolver создаёт ресолвер фотографий.
// При выключенном хранилище возвращается заглушка.
func NewResolver(cfg config.PhotosConfig, log *slog.Logger) (Resolver, error) {
	const op = "photos.NewResolver"

	if !cfg.Enabled {
		return &noopResolver{}, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &resolver{
		client:    client,
		bucket:    cfg.BucketName,
		urlExpiry: cfg.URLExpiry,
		log:       log,
	}, nil
}

func (r *resolver) PhotoURLs(ctx context.Context, keys []string) []string {
	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		u, err := r.client.PresignedGetObject(ctx, r.bucket, key, r.urlExpiry, nil)
		if err != nil {
			r.log.Warn("failed to presign photo URL", slog.String("key", key), sl.Err(err))
			continue
		}
		urls = append(urls, u.String())
	}
	return urls
}

func (r *resolver) IsEnabled() bool {
	return true
}

// noopResolver — заглушка для случая, когда хранилище отключено.
type noopResolver struct{}

func (r *noopResolver) PhotoURLs(_ context.Context, _ []string) []string {
	return nil
}

func (r *noopResolver) IsEnabled() bool {
	return false
}
