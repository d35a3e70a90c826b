package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibeshot/gallery-admin/internal/model"
	"github.com/vibeshot/gallery-admin/internal/repository"
	"github.com/vibeshot/gallery-admin/internal/storage"
)

var (
	ErrVideoNotFound    = errors.New("video not found")
	ErrVideoTooLarge    = errors.New("video exceeds the 100MB limit")
	ErrUnsupportedVideo = errors.New("unsupported video format")
)

// MaxVideoSize 上传体积上限
const MaxVideoSize = 100 << 20

// 允许的上传格式
var allowedVideoTypes = map[string]string{
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
	"video/webm":      ".webm",
	"video/x-m4v":     ".m4v",
}

// VideoUpload 上传入参，Data 为文件原始字节
type VideoUpload struct {
	Title       string
	Description string
	Orientation string
	MimeType    string
	Data        []byte
}

// VideoService 首页视频管理
type VideoService struct {
	videos repository.VideoRepository
	store  storage.ObjectStore
}

func NewVideoService(videos repository.VideoRepository, store storage.ObjectStore) *VideoService {
	return &VideoService{videos: videos, store: store}
}

func (s *VideoService) List(ctx context.Context) ([]*model.HomepageVideo, error) {
	return s.videos.List(ctx)
}

func (s *VideoService) Get(ctx context.Context, id string) (*model.HomepageVideo, error) {
	v, err := s.videos.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVideoNotFound
	}
	return v, err
}

func (s *VideoService) Create(ctx context.Context, in VideoUpload) (*model.HomepageVideo, error) {
	ext, ok := allowedVideoTypes[in.MimeType]
	if !ok {
		return nil, ErrUnsupportedVideo
	}
	if len(in.Data) > MaxVideoSize {
		return nil, ErrVideoTooLarge
	}

	key := "videos/" + uuid.New().String() + ext
	videoURL, err := s.store.Put(ctx, key, in.Data, in.MimeType)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}

	orientation := in.Orientation
	if orientation == "" {
		orientation = "portrait"
	}
	v := &model.HomepageVideo{
		Title:       in.Title,
		Description: in.Description,
		VideoURL:    videoURL,
		Orientation: orientation,
		FileSize:    int64(len(in.Data)),
		MimeType:    in.MimeType,
		IsActive:    true,
	}
	if err := s.videos.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VideoService) Update(ctx context.Context, id string, updates map[string]any) (*model.HomepageVideo, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.videos.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *VideoService) Reorder(ctx context.Context, orderedIDs []string) error {
	return s.videos.Reorder(ctx, orderedIDs)
}

func (s *VideoService) Delete(ctx context.Context, id string) error {
	v, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.videos.Delete(ctx, id); err != nil {
		return err
	}
	for _, u := range []string{v.VideoURL, v.ThumbnailURL} {
		if key := s.store.KeyFromURL(u); key != "" {
			_ = s.store.Delete(ctx, key)
		}
	}
	return nil
}
