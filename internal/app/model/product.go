package model

import (
	"time"
)

type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Discount    float64   `gorm:"default:0" json:"discount"`
	Stock       int       `gorm:"default:0" json:"stock"`
	IsNew       bool      `gorm:"default:false" json:"is_new"`
	IsPublished bool      `gorm:"default:true" json:"is_published"`
	Image       string    `json:"image"` // canonical main image URL
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	BrandID     *uint     `gorm:"index" json:"brand_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Rating is derived from reviews on every read, never persisted.
	Rating float64 `gorm:"-" json:"rating"`

	Category   Category          `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand      *Brand            `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Images     []ProductImage    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Properties []ProductProperty `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"properties,omitempty"`
	Reviews    []Review          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Hashtags   []Hashtag         `gorm:"many2many:product_hashtags" json:"hashtags,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ProductImage keeps the upload order; position 0 is the main image unless
// the product's Image field was explicitly overridden.
type ProductImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	URL       string    `gorm:"not null" json:"url"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

type ProductProperty struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	Name      string `gorm:"not null" json:"name"`
	Value     string `gorm:"not null" json:"value"`
}

func (ProductProperty) TableName() string {
	return "product_properties"
}

type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Author    string    `gorm:"not null" json:"author"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
