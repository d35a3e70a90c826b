package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibeshot/gallery-admin/internal/model"
)

// AIModelRepository 生成模型仓储接口
type AIModelRepository interface {
	Create(ctx context.Context, m *model.AIModel) error
	List(ctx context.Context, onlyActive bool) ([]*model.AIModel, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Delete(ctx context.Context, id string) error
}

type aiModelRepository struct {
	db *gorm.DB
}

func NewAIModelRepository(db *gorm.DB) AIModelRepository { return &aiModelRepository{db: db} }

func (r *aiModelRepository) Create(ctx context.Context, m *model.AIModel) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *aiModelRepository) List(ctx context.Context, onlyActive bool) ([]*model.AIModel, error) {
	q := r.db.WithContext(ctx).Order("sort_order ASC")
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	var res []*model.AIModel
	err := q.Find(&res).Error
	return res, err
}

func (r *aiModelRepository) Update(ctx context.Context, id string, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.AIModel{}).Where("id = ?", id).Updates(updates).Error
}

func (r *aiModelRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AIModel{}).Error
}
