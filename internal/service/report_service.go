package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vibeshot/gallery-admin/internal/model"
	"github.com/vibeshot/gallery-admin/internal/repository"
	"github.com/vibeshot/gallery-admin/internal/storage"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrDuplicateReport = errors.New("report for this date already exists")
	ErrBadReportDate   = errors.New("date must be YYYY-MM-DD")
)

// ReportInput 日报入参，Content 为 markdown 原文
type ReportInput struct {
	Date        string `json:"date" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Summary     string `json:"summary"`
	Content     string `json:"content" binding:"required"`
	Source      string `json:"source"`
	IsPublished *bool  `json:"is_published"`
}

// ReportService 日报管理，正文存对象存储，库里只留链接
type ReportService struct {
	reports repository.ReportRepository
	store   storage.ObjectStore
}

func NewReportService(reports repository.ReportRepository, store storage.ObjectStore) *ReportService {
	return &ReportService{reports: reports, store: store}
}

func (s *ReportService) List(ctx context.Context, page, limit int) ([]*model.DailyReport, int64, error) {
	return s.reports.List(ctx, page, limit)
}

func (s *ReportService) Get(ctx context.Context, id string) (*model.DailyReport, error) {
	r, err := s.reports.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	return r, err
}

func (s *ReportService) Create(ctx context.Context, in ReportInput) (*model.DailyReport, error) {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, ErrBadReportDate
	}
	if exists, err := s.reports.ExistsByDate(ctx, in.Date); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrDuplicateReport
	}

	contentURL, err := s.store.Put(ctx, "reports/"+in.Date+".md", []byte(in.Content), "text/markdown")
	if err != nil {
		return nil, fmt.Errorf("upload report content: %w", err)
	}

	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}
	report := &model.DailyReport{
		Date:        in.Date,
		Title:       in.Title,
		Summary:     in.Summary,
		ContentURL:  contentURL,
		Source:      in.Source,
		IsPublished: published,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) Update(ctx context.Context, id string, updates map[string]any) (*model.DailyReport, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.reports.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ReportService) Delete(ctx context.Context, id string) error {
	report, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reports.Delete(ctx, id); err != nil {
		return err
	}
	if key := s.store.KeyFromURL(report.ContentURL); key != "" {
		// 对象清理尽力而为
		_ = s.store.Delete(ctx, key)
	}
	return nil
}
