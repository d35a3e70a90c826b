package model

import "time"

// 提示词来源
const (
	SourceManual  = "manual"
	SourceWechat  = "wechat"
	SourceTwitter = "twitter"
)

// Prompt 提示词（画廊内容主体）
// PromptText 去重由入库前检查保证，不加数据库唯一约束
// Description 在抓取来源时保存 "来源: <推文链接>"
type Prompt struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title          string    `json:"title" gorm:"type:varchar(256);not null"`
	Description    string    `json:"description" gorm:"type:text"`
	PromptText     string    `json:"prompt_text" gorm:"type:text;not null;index:idx_prompt_text,length:256"`
	NegativePrompt string    `json:"negative_prompt" gorm:"type:text"`
	ImageURL       string    `json:"image_url" gorm:"type:varchar(512)"`
	ThumbnailURL   string    `json:"thumbnail_url" gorm:"type:varchar(512)"`
	AuthorName     string    `json:"author_name" gorm:"type:varchar(128)"`
	AuthorWechat   string    `json:"author_wechat" gorm:"type:varchar(128)"`
	Source         string    `json:"source" gorm:"type:varchar(16);index;not null;default:manual"`
	Model          string    `json:"model" gorm:"type:varchar(64)"`
	IsFeatured     bool      `json:"is_featured" gorm:"index;default:false"`
	IsPublished    bool      `json:"is_published" gorm:"index;default:true"`
	SortOrder      int       `json:"sort_order" gorm:"index;not null;default:0"`
	ViewCount      int64     `json:"view_count" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Images []PromptImage `json:"images,omitempty" gorm:"foreignKey:PromptID"`
	Tags   []Tag         `json:"tags,omitempty" gorm:"many2many:prompt_tags;joinForeignKey:PromptID;joinReferences:TagID"`
}

func (Prompt) TableName() string { return "prompts" }

// PromptImage 提示词附图，SortOrder=0 为封面
type PromptImage struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PromptID     string    `json:"prompt_id" gorm:"type:varchar(36);index:idx_prompt_image_prompt;not null"`
	ImageURL     string    `json:"image_url" gorm:"type:varchar(512);not null"`
	ThumbnailURL string    `json:"thumbnail_url" gorm:"type:varchar(512)"`
	SortOrder    int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
}

func (PromptImage) TableName() string { return "prompt_images" }

// PromptTag 提示词-标签关联
type PromptTag struct {
	PromptID string `json:"prompt_id" gorm:"primaryKey;type:varchar(36)"`
	TagID    string `json:"tag_id" gorm:"primaryKey;type:varchar(36)"`
}

func (PromptTag) TableName() string { return "prompt_tags" }
