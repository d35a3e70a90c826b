package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vibeshot/gallery-admin/internal/model"
	"github.com/vibeshot/gallery-admin/internal/repository"
	"github.com/vibeshot/gallery-admin/internal/storage"
	"github.com/vibeshot/gallery-admin/pkg/logger"
)

var (
	ErrPromptNotFound  = errors.New("prompt not found")
	ErrDuplicatePrompt = errors.New("prompt already exists")
)

// PromptImageInput 创建提示词时的附图
type PromptImageInput struct {
	ImageURL     string `json:"image_url" binding:"required"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// PromptInput 创建/摄取提示词的入参
type PromptInput struct {
	Title          string             `json:"title" binding:"required"`
	Description    string             `json:"description"`
	PromptText     string             `json:"prompt_text" binding:"required"`
	NegativePrompt string             `json:"negative_prompt"`
	AuthorName     string             `json:"author_name"`
	AuthorWechat   string             `json:"author_wechat"`
	Source         string             `json:"source"`
	Model          string             `json:"model"`
	IsFeatured     bool               `json:"is_featured"`
	IsPublished    *bool              `json:"is_published"`
	Images         []PromptImageInput `json:"images" binding:"required,min=1"`
	TagIDs         []string           `json:"tag_ids"`
	SourceURL      string             `json:"source_url"`
}

// PromptService 提示词管理与摄取入库
type PromptService struct {
	prompts repository.PromptRepository
	store   storage.ObjectStore
}

func NewPromptService(prompts repository.PromptRepository, store storage.ObjectStore) *PromptService {
	return &PromptService{prompts: prompts, store: store}
}

func (s *PromptService) List(ctx context.Context, params repository.PromptListParams) ([]*model.Prompt, int64, error) {
	return s.prompts.List(ctx, params)
}

func (s *PromptService) Get(ctx context.Context, id string) (*model.Prompt, error) {
	p, err := s.prompts.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPromptNotFound
	}
	return p, err
}

// Create 管理端手工创建，排到列表末尾
func (s *PromptService) Create(ctx context.Context, in PromptInput) (*model.Prompt, error) {
	return s.create(ctx, in, false)
}

// Ingest 机器人摄取入口，入库前按正文与来源链接去重
func (s *PromptService) Ingest(ctx context.Context, in PromptInput) (*model.Prompt, error) {
	return s.create(ctx, in, true)
}

func (s *PromptService) create(ctx context.Context, in PromptInput, dedup bool) (*model.Prompt, error) {
	if dedup {
		if exists, err := s.prompts.ExistsByText(ctx, in.PromptText); err != nil {
			return nil, fmt.Errorf("dedup by text: %w", err)
		} else if exists {
			return nil, ErrDuplicatePrompt
		}
		if in.SourceURL != "" {
			if exists, err := s.prompts.ExistsBySourceURL(ctx, in.SourceURL); err != nil {
				return nil, fmt.Errorf("dedup by source url: %w", err)
			} else if exists {
				return nil, ErrDuplicatePrompt
			}
		}
	}

	maxOrder, err := s.prompts.MaxSortOrder(ctx)
	if err != nil {
		return nil, fmt.Errorf("query max sort order: %w", err)
	}

	description := in.Description
	if in.SourceURL != "" && !strings.Contains(description, in.SourceURL) {
		if description != "" {
			description += "\n"
		}
		description += "来源: " + in.SourceURL
	}

	source := in.Source
	if source == "" {
		source = model.SourceManual
	}
	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}

	prompt := &model.Prompt{
		Title:          in.Title,
		Description:    description,
		PromptText:     strings.TrimSpace(in.PromptText),
		NegativePrompt: in.NegativePrompt,
		ImageURL:       in.Images[0].ImageURL,
		ThumbnailURL:   in.Images[0].ThumbnailURL,
		AuthorName:     in.AuthorName,
		AuthorWechat:   in.AuthorWechat,
		Source:         source,
		Model:          in.Model,
		IsFeatured:     in.IsFeatured,
		IsPublished:    published,
		SortOrder:      maxOrder + 1,
	}
	images := make([]model.PromptImage, len(in.Images))
	for i, img := range in.Images {
		images[i] = model.PromptImage{
			ImageURL:     img.ImageURL,
			ThumbnailURL: img.ThumbnailURL,
			SortOrder:    i,
		}
	}
	if err := s.prompts.Create(ctx, prompt, images, in.TagIDs); err != nil {
		return nil, err
	}
	return s.prompts.GetByID(ctx, prompt.ID)
}

func (s *PromptService) Update(ctx context.Context, id string, updates map[string]any, tagIDs []string) (*model.Prompt, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.prompts.Update(ctx, id, updates, tagIDs); err != nil {
		return nil, err
	}
	return s.prompts.GetByID(ctx, id)
}

// Delete 删除提示词及附图记录，随后尽力清理对象存储里的图片
func (s *PromptService) Delete(ctx context.Context, id string) error {
	images, err := s.prompts.ListImages(ctx, id)
	if err != nil {
		return err
	}
	if err := s.prompts.Delete(ctx, id); err != nil {
		return err
	}
	for _, img := range images {
		s.deleteObject(ctx, img.ImageURL)
		s.deleteObject(ctx, img.ThumbnailURL)
	}
	return nil
}

func (s *PromptService) Reorder(ctx context.Context, orderedIDs []string) error {
	return s.prompts.Reorder(ctx, orderedIDs)
}

func (s *PromptService) deleteObject(ctx context.Context, url string) {
	key := s.store.KeyFromURL(url)
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		logger.Warn("delete stored object failed", zap.String("key", key), zap.Error(err))
	}
}
