package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibeshot/gallery-admin/internal/model"
)

// VideoRepository 首页视频仓储接口
type VideoRepository interface {
	Create(ctx context.Context, v *model.HomepageVideo) error
	GetByID(ctx context.Context, id string) (*model.HomepageVideo, error)
	List(ctx context.Context) ([]*model.HomepageVideo, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Reorder(ctx context.Context, orderedIDs []string) error
	Delete(ctx context.Context, id string) error
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository { return &videoRepository{db: db} }

func (r *videoRepository) Create(ctx context.Context, v *model.HomepageVideo) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*model.HomepageVideo, error) {
	var v model.HomepageVideo
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *videoRepository) List(ctx context.Context) ([]*model.HomepageVideo, error) {
	var res []*model.HomepageVideo
	err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&res).Error
	return res, err
}

func (r *videoRepository) Update(ctx context.Context, id string, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.HomepageVideo{}).Where("id = ?", id).Updates(updates).Error
}

func (r *videoRepository) Reorder(ctx context.Context, orderedIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			if err := tx.Model(&model.HomepageVideo{}).Where("id = ?", id).
				Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.HomepageVideo{}).Error
}
