package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibeshot/gallery-admin/internal/model"
)

// CreatorRepository 创作者仓储接口
type CreatorRepository interface {
	Create(ctx context.Context, creator *model.Creator) error
	GetByID(ctx context.Context, id string) (*model.Creator, error)
	GetByUsername(ctx context.Context, username string) (*model.Creator, error)
	List(ctx context.Context) ([]*model.Creator, error)
	ListActive(ctx context.Context) ([]*model.Creator, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	UpdateDescription(ctx context.Context, id, description string) error
	// TouchFetched 更新抓取时间并原子累加计数，避免读改写丢失更新
	TouchFetched(ctx context.Context, id string, fetchDelta, successDelta int64) error
	Delete(ctx context.Context, id string) error
}

type creatorRepository struct {
	db *gorm.DB
}

func NewCreatorRepository(db *gorm.DB) CreatorRepository { return &creatorRepository{db: db} }

func (r *creatorRepository) Create(ctx context.Context, creator *model.Creator) error {
	if creator.ID == "" {
		creator.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(creator).Error
}

func (r *creatorRepository) GetByID(ctx context.Context, id string) (*model.Creator, error) {
	var c model.Creator
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *creatorRepository) GetByUsername(ctx context.Context, username string) (*model.Creator, error) {
	var c model.Creator
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *creatorRepository) List(ctx context.Context) ([]*model.Creator, error) {
	var res []*model.Creator
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&res).Error
	return res, err
}

func (r *creatorRepository) ListActive(ctx context.Context) ([]*model.Creator, error) {
	var res []*model.Creator
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("username ASC").Find(&res).Error
	return res, err
}

func (r *creatorRepository) Update(ctx context.Context, id string, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.Creator{}).Where("id = ?", id).Updates(updates).Error
}

func (r *creatorRepository) UpdateDescription(ctx context.Context, id, description string) error {
	return r.db.WithContext(ctx).Model(&model.Creator{}).Where("id = ?", id).
		Update("description", description).Error
}

func (r *creatorRepository) TouchFetched(ctx context.Context, id string, fetchDelta, successDelta int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.Creator{}).Where("id = ?", id).
		Updates(map[string]any{
			"last_fetched_at": now,
			"fetch_count":     gorm.Expr("fetch_count + ?", fetchDelta),
			"success_count":   gorm.Expr("success_count + ?", successDelta),
		}).Error
}

func (r *creatorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Creator{}).Error
}
