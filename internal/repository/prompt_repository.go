package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vibeshot/gallery-admin/internal/model"
)

// PromptListParams 列表过滤条件
type PromptListParams struct {
	Page      int
	Limit     int
	Search    string
	TagID     string
	Featured  *bool
	Published *bool
}

// PromptRepository 提示词仓储接口
type PromptRepository interface {
	// Create 事务内落地提示词、附图与标签关联
	Create(ctx context.Context, prompt *model.Prompt, images []model.PromptImage, tagIDs []string) error
	GetByID(ctx context.Context, id string) (*model.Prompt, error)
	List(ctx context.Context, params PromptListParams) ([]*model.Prompt, int64, error)
	Update(ctx context.Context, id string, updates map[string]any, tagIDs []string) error
	Delete(ctx context.Context, id string) error
	ListImages(ctx context.Context, promptID string) ([]*model.PromptImage, error)
	// ExistsByText 按去除首尾空白后的正文精确去重
	ExistsByText(ctx context.Context, promptText string) (bool, error)
	// ExistsBySourceURL 按描述中的来源链接子串去重
	ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error)
	MaxSortOrder(ctx context.Context) (int, error)
	Reorder(ctx context.Context, orderedIDs []string) error
	IncrementViews(ctx context.Context, counts map[string]int64) error
}

type promptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) PromptRepository { return &promptRepository{db: db} }

func (r *promptRepository) Create(ctx context.Context, prompt *model.Prompt, images []model.PromptImage, tagIDs []string) error {
	if prompt.ID == "" {
		prompt.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images", "Tags").Create(prompt).Error; err != nil {
			return err
		}
		for i := range images {
			if images[i].ID == "" {
				images[i].ID = uuid.New().String()
			}
			images[i].PromptID = prompt.ID
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		if len(tagIDs) > 0 {
			links := make([]model.PromptTag, len(tagIDs))
			for i, tagID := range tagIDs {
				links[i] = model.PromptTag{PromptID: prompt.ID, TagID: tagID}
			}
			// 幂等：重复关联不报错
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *promptRepository) GetByID(ctx context.Context, id string) (*model.Prompt, error) {
	var p model.Prompt
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Tags").
		Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *promptRepository) List(ctx context.Context, params PromptListParams) ([]*model.Prompt, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 20
	}

	q := r.db.WithContext(ctx).Model(&model.Prompt{})
	if params.Search != "" {
		like := "%" + params.Search + "%"
		q = q.Where("title LIKE ? OR prompt_text LIKE ? OR author_name LIKE ?", like, like, like)
	}
	if params.Featured != nil {
		q = q.Where("is_featured = ?", *params.Featured)
	}
	if params.Published != nil {
		q = q.Where("is_published = ?", *params.Published)
	}
	if params.TagID != "" {
		q = q.Where("id IN (?)", r.db.Model(&model.PromptTag{}).Select("prompt_id").Where("tag_id = ?", params.TagID))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var res []*model.Prompt
	err := q.Preload("Tags").
		Order("is_featured DESC").
		Order("sort_order DESC").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&res).Error
	return res, total, err
}

func (r *promptRepository) Update(ctx context.Context, id string, updates map[string]any, tagIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&model.Prompt{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if tagIDs != nil {
			if err := tx.Where("prompt_id = ?", id).Delete(&model.PromptTag{}).Error; err != nil {
				return err
			}
			if len(tagIDs) > 0 {
				links := make([]model.PromptTag, len(tagIDs))
				for i, tagID := range tagIDs {
					links[i] = model.PromptTag{PromptID: id, TagID: tagID}
				}
				if err := tx.Create(&links).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *promptRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prompt_id = ?", id).Delete(&model.PromptImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("prompt_id = ?", id).Delete(&model.PromptTag{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Prompt{}).Error
	})
}

func (r *promptRepository) ListImages(ctx context.Context, promptID string) ([]*model.PromptImage, error) {
	var res []*model.PromptImage
	err := r.db.WithContext(ctx).Where("prompt_id = ?", promptID).Order("sort_order ASC").Find(&res).Error
	return res, err
}

func (r *promptRepository) ExistsByText(ctx context.Context, promptText string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Prompt{}).
		Where("prompt_text = ?", strings.TrimSpace(promptText)).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *promptRepository) ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Prompt{}).
		Where("description LIKE ?", "%"+sourceURL+"%").
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *promptRepository) MaxSortOrder(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&model.Prompt{}).Select("MAX(sort_order)").Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}

func (r *promptRepository) Reorder(ctx context.Context, orderedIDs []string) error {
	// 列表头部权重最大
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n := len(orderedIDs)
		for i, id := range orderedIDs {
			if err := tx.Model(&model.Prompt{}).Where("id = ?", id).
				Update("sort_order", n-i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *promptRepository) IncrementViews(ctx context.Context, counts map[string]int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, delta := range counts {
			if delta <= 0 {
				continue
			}
			if err := tx.Model(&model.Prompt{}).Where("id = ?", id).
				Update("view_count", gorm.Expr("view_count + ?", delta)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
