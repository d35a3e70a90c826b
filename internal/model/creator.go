package model

import "time"

// Creator 被跟踪的推特创作者
// Description 同时充当图片处理失败的记录台账（按推文链接去重）
type Creator struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username      *string    `json:"username" gorm:"type:varchar(64);uniqueIndex:ux_creator_username"`
	DisplayName   string     `json:"display_name" gorm:"type:varchar(128)"`
	AvatarURL     string     `json:"avatar_url" gorm:"type:varchar(512)"`
	Description   string     `json:"description" gorm:"type:text"`
	IsActive      bool       `json:"is_active" gorm:"index;default:true"`
	FetchCount    int64      `json:"fetch_count" gorm:"not null;default:0"`
	SuccessCount  int64      `json:"success_count" gorm:"not null;default:0"`
	LastFetchedAt *time.Time `json:"last_fetched_at"`
	SortOrder     int        `json:"sort_order" gorm:"index;not null;default:0"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Creator) TableName() string { return "twitter_creators" }
