package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/vibeshot/gallery-admin/internal/model"
	"github.com/vibeshot/gallery-admin/internal/repository"
)

var ErrDuplicateCreator = errors.New("creator with this username already exists")

// CreatorInput 创建/更新创作者的入参
type CreatorInput struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   *int   `json:"sort_order"`
}

// CreatorService 创作者管理
type CreatorService struct {
	creators repository.CreatorRepository
}

func NewCreatorService(creators repository.CreatorRepository) *CreatorService {
	return &CreatorService{creators: creators}
}

func (s *CreatorService) List(ctx context.Context) ([]*model.Creator, error) {
	return s.creators.List(ctx)
}

func (s *CreatorService) ListActive(ctx context.Context) ([]*model.Creator, error) {
	return s.creators.ListActive(ctx)
}

func (s *CreatorService) Get(ctx context.Context, id string) (*model.Creator, error) {
	c, err := s.creators.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCreatorNotFound
	}
	return c, err
}

func (s *CreatorService) Create(ctx context.Context, in CreatorInput) (*model.Creator, error) {
	c := &model.Creator{
		DisplayName: in.DisplayName,
		AvatarURL:   in.AvatarURL,
		Description: in.Description,
		IsActive:    true,
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}

	if username := normalizeUsername(in.Username); username != "" {
		if _, err := s.creators.GetByUsername(ctx, username); err == nil {
			return nil, ErrDuplicateCreator
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		c.Username = &username
	}

	if err := s.creators.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CreatorService) Update(ctx context.Context, id string, in CreatorInput) (*model.Creator, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Username != "" {
		username := normalizeUsername(in.Username)
		if existing, err := s.creators.GetByUsername(ctx, username); err == nil && existing.ID != id {
			return nil, ErrDuplicateCreator
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["username"] = username
	}
	if in.DisplayName != "" {
		updates["display_name"] = in.DisplayName
	}
	if in.AvatarURL != "" {
		updates["avatar_url"] = in.AvatarURL
	}
	if in.Description != "" {
		updates["description"] = in.Description
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if in.SortOrder != nil {
		updates["sort_order"] = *in.SortOrder
	}

	if len(updates) > 0 {
		if err := s.creators.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// MarkFetched 机器人回报抓取结果，计数原子累加
func (s *CreatorService) MarkFetched(ctx context.Context, id string, fetchDelta, successDelta int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.creators.TouchFetched(ctx, id, fetchDelta, successDelta)
}

func (s *CreatorService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.creators.Delete(ctx, id)
}

func normalizeUsername(username string) string {
	return strings.TrimPrefix(strings.TrimSpace(username), "@")
}
