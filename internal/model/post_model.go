package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostModel maps to the posts table. UserID is nullable at the column level
// because rows created before the user_id migration have no owner; new rows
// always set it.
type PostModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    *string   `gorm:"type:uuid;index" json:"user_id"`
	Caption   string    `gorm:"type:text" json:"caption"`
	URL       string    `gorm:"not null" json:"url"`
	FileType  string    `gorm:"type:varchar(10);not null" json:"file_type"`
	FileName  string    `gorm:"not null" json:"file_name"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
