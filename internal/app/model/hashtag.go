package model

import (
	"time"
)

// Hashtag is attached to products connect-or-create style: an existing row
// with the same trimmed name is reused, otherwise a new one is created.
type Hashtag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Products []Product `gorm:"many2many:product_hashtags" json:"products,omitempty"`
}

func (Hashtag) TableName() string {
	return "hashtags"
}
