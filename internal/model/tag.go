package model

import "time"

// TagType 标签分组
type TagType struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(64);not null"`
	Slug      string    `json:"slug" gorm:"type:varchar(64);uniqueIndex;not null"`
	Color     string    `json:"color" gorm:"type:varchar(16)"`
	SortOrder int       `json:"sort_order" gorm:"index;not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
}

func (TagType) TableName() string { return "tag_types" }

// Tag 标签
// Type 冗余保存分组 slug，兼容旧数据
type Tag struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(64);not null"`
	Type      string    `json:"type" gorm:"type:varchar(64);index"`
	TypeID    *string   `json:"type_id" gorm:"type:varchar(36);index"`
	Color     string    `json:"color" gorm:"type:varchar(16)"`
	CreatedAt time.Time `json:"created_at"`
}

func (Tag) TableName() string { return "tags" }
