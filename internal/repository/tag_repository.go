package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibeshot/gallery-admin/internal/model"
)

// TagRepository 标签与标签分组仓储接口
type TagRepository interface {
	CreateTag(ctx context.Context, tag *model.Tag) error
	ListTags(ctx context.Context, typeID string) ([]*model.Tag, error)
	UpdateTag(ctx context.Context, id string, updates map[string]any) error
	DeleteTag(ctx context.Context, id string) error

	CreateType(ctx context.Context, t *model.TagType) error
	ListTypes(ctx context.Context) ([]*model.TagType, error)
	GetTypeByID(ctx context.Context, id string) (*model.TagType, error)
	UpdateType(ctx context.Context, id string, updates map[string]any) error
	DeleteType(ctx context.Context, id string) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository { return &tagRepository{db: db} }

func (r *tagRepository) CreateTag(ctx context.Context, tag *model.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) ListTags(ctx context.Context, typeID string) ([]*model.Tag, error) {
	q := r.db.WithContext(ctx).Order("created_at ASC")
	if typeID != "" {
		q = q.Where("type_id = ?", typeID)
	}
	var res []*model.Tag
	err := q.Find(&res).Error
	return res, err
}

func (r *tagRepository) UpdateTag(ctx context.Context, id string, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.Tag{}).Where("id = ?", id).Updates(updates).Error
}

func (r *tagRepository) DeleteTag(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.PromptTag{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Tag{}).Error
	})
}

func (r *tagRepository) CreateType(ctx context.Context, t *model.TagType) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tagRepository) ListTypes(ctx context.Context) ([]*model.TagType, error) {
	var res []*model.TagType
	err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&res).Error
	return res, err
}

func (r *tagRepository) GetTypeByID(ctx context.Context, id string) (*model.TagType, error) {
	var t model.TagType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepository) UpdateType(ctx context.Context, id string, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.TagType{}).Where("id = ?", id).Updates(updates).Error
}

func (r *tagRepository) DeleteType(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TagType{}).Error
}
