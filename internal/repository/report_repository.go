package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibeshot/gallery-admin/internal/model"
)

// ReportRepository 日报仓储接口
type ReportRepository interface {
	Create(ctx context.Context, report *model.DailyReport) error
	GetByID(ctx context.Context, id string) (*model.DailyReport, error)
	ExistsByDate(ctx context.Context, date string) (bool, error)
	List(ctx context.Context, page, limit int) ([]*model.DailyReport, int64, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Delete(ctx context.Context, id string) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepository{db: db} }

func (r *reportRepository) Create(ctx context.Context, report *model.DailyReport) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*model.DailyReport, error) {
	var rep model.DailyReport
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rep).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *reportRepository) ExistsByDate(ctx context.Context, date string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.DailyReport{}).Where("date = ?", date).Count(&cnt).Error
	return cnt > 0, err
}

func (r *reportRepository) List(ctx context.Context, page, limit int) ([]*model.DailyReport, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.DailyReport{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var res []*model.DailyReport
	err := r.db.WithContext(ctx).Order("date DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&res).Error
	return res, total, err
}

func (r *reportRepository) Update(ctx context.Context, id string, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.DailyReport{}).Where("id = ?", id).Updates(updates).Error
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DailyReport{}).Error
}
