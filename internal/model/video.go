package model

import "time"

// HomepageVideo 首页展示视频
type HomepageVideo struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title           string    `json:"title" gorm:"type:varchar(256)"`
	Description     string    `json:"description" gorm:"type:text"`
	VideoURL        string    `json:"video_url" gorm:"type:varchar(512);not null"`
	ThumbnailURL    string    `json:"thumbnail_url" gorm:"type:varchar(512)"`
	Orientation     string    `json:"orientation" gorm:"type:varchar(16);default:portrait"` // portrait, landscape
	OriginalWidth   int       `json:"original_width"`
	OriginalHeight  int       `json:"original_height"`
	ProcessedWidth  int       `json:"processed_width"`
	ProcessedHeight int       `json:"processed_height"`
	Duration        float64   `json:"duration"`
	FileSize        int64     `json:"file_size"`
	MimeType        string    `json:"mime_type" gorm:"type:varchar(64)"`
	IsActive        bool      `json:"is_active" gorm:"index;default:true"`
	SortOrder       int       `json:"sort_order" gorm:"index;not null;default:0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (HomepageVideo) TableName() string { return "homepage_videos" }
