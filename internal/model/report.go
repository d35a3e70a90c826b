package model

import "time"

// DailyReport 日报，正文 markdown 存对象存储，这里只存链接
type DailyReport struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Date        string    `json:"date" gorm:"type:varchar(10);uniqueIndex;not null"` // YYYY-MM-DD
	Title       string    `json:"title" gorm:"type:varchar(256);not null"`
	Summary     string    `json:"summary" gorm:"type:text"`
	ContentURL  string    `json:"content_url" gorm:"type:varchar(512);not null"`
	Source      string    `json:"source" gorm:"type:varchar(16);not null;default:manual"`
	IsPublished bool      `json:"is_published" gorm:"index;default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (DailyReport) TableName() string { return "daily_reports" }
