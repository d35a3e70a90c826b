package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vibeshot/gallery-admin/internal/imagefx"
	"github.com/vibeshot/gallery-admin/internal/storage"
)

var ErrNotAnImage = errors.New("uploaded file is not a decodable image")

// UploadResult 上传后的访问地址
type UploadResult struct {
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// MediaService 管理端图片直传，走与摄取流水线相同的压缩规格
type MediaService struct {
	store storage.ObjectStore
}

func NewMediaService(store storage.ObjectStore) *MediaService {
	return &MediaService{store: store}
}

func (s *MediaService) UploadImage(ctx context.Context, data []byte) (*UploadResult, error) {
	main, thumb, err := imagefx.Process(data)
	if err != nil {
		return nil, ErrNotAnImage
	}

	id := uuid.New().String()
	imageURL, err := s.store.Put(ctx, "images/"+id+".png", main, "image/png")
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	thumbURL, err := s.store.Put(ctx, "thumbnails/"+id+".png", thumb, "image/png")
	if err != nil {
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}
	return &UploadResult{ImageURL: imageURL, ThumbnailURL: thumbURL}, nil
}
