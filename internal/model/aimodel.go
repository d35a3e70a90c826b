package model

import "time"

// AIModel 可归属的生成模型
type AIModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(64);uniqueIndex;not null"`
	Vendor    string    `json:"vendor" gorm:"type:varchar(64)"`
	Category  string    `json:"category" gorm:"type:varchar(16);index"` // closed, open
	IsActive  bool      `json:"is_active" gorm:"index;default:true"`
	SortOrder int       `json:"sort_order" gorm:"index;not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AIModel) TableName() string { return "ai_models" }
