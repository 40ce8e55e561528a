package model

import (
	"time"
)

type PromoKind string

const (
	PromoBanner      PromoKind = "banner"
	PromoPromotion   PromoKind = "promotion"
	PromoPublication PromoKind = "publication"
)

// Promo backs the three storefront carousels. Banners, promotions and
// publications share the same shape and validation, so one table holds all
// three, discriminated by Kind. Slug is derived from the linked product's
// slug and de-duplicated within the kind.
type Promo struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Kind         PromoKind `gorm:"type:varchar(20);not null;index;uniqueIndex:idx_promos_kind_slug,priority:1" json:"kind"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Slug         string    `gorm:"not null;uniqueIndex:idx_promos_kind_slug,priority:2" json:"slug"`
	DesktopImage string    `gorm:"not null" json:"desktop_image"`
	MobileImage  string    `gorm:"not null" json:"mobile_image"`
	ProductID    uint      `gorm:"not null;index" json:"product_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Promo) TableName() string {
	return "promos"
}
