package model

import (
	"time"
)

// MaxCategoryLevel caps the hierarchy depth: level 1 roots, level 2
// sub-categories, level 3 sub-sub-categories (the only valid product
// attachment points once they are leaves).
const MaxCategoryLevel = 3

type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `json:"image"`
	ParentID    *uint     `gorm:"index" json:"parent_id,omitempty"`
	Level       int       `gorm:"not null;default:1" json:"level"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Products []Product  `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryNode is the nested shape the shop navigation and the admin tabs
// render; built from the flat category list, never persisted.
type CategoryNode struct {
	Category
	ProductCount  int             `json:"product_count"`
	TotalProducts int             `json:"total_products"` // own + all descendants
	Nodes         []*CategoryNode `json:"children"`
}
