package imagefx

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vibeshot/gallery-admin/internal/storage"
	"github.com/vibeshot/gallery-admin/pkg/logger"
)

// StoredImage 落库前的一对图片地址
type StoredImage struct {
	URL          string
	ThumbnailURL string
}

// Materializer 把远端图片下载、压缩并上传到对象存储
type Materializer interface {
	// Materialize 逐个处理 urls，单张失败不影响其余，返回成功结果和失败数
	Materialize(ctx context.Context, urls []string) ([]StoredImage, int)
}

type materializer struct {
	dl    *Downloader
	store storage.ObjectStore
}

func NewMaterializer(dl *Downloader, store storage.ObjectStore) Materializer {
	return &materializer{dl: dl, store: store}
}

func (m *materializer) Materialize(ctx context.Context, urls []string) ([]StoredImage, int) {
	var (
		stored []StoredImage
		failed int
	)
	for _, u := range urls {
		img, err := m.materializeOne(ctx, u)
		if err != nil {
			logger.Warn("image materialization failed", zap.String("url", u), zap.Error(err))
			failed++
			continue
		}
		stored = append(stored, img)
	}
	return stored, failed
}

func (m *materializer) materializeOne(ctx context.Context, u string) (StoredImage, error) {
	data, err := m.dl.Fetch(ctx, u)
	if err != nil {
		return StoredImage{}, err
	}
	main, thumb, err := Process(data)
	if err != nil {
		return StoredImage{}, err
	}

	id := uuid.New().String()
	mainURL, err := m.store.Put(ctx, "images/"+id+".png", main, "image/png")
	if err != nil {
		return StoredImage{}, err
	}
	thumbURL, err := m.store.Put(ctx, "thumbnails/"+id+".png", thumb, "image/png")
	if err != nil {
		return StoredImage{}, err
	}
	return StoredImage{URL: mainURL, ThumbnailURL: thumbURL}, nil
}
