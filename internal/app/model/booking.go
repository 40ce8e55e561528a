package model

import (
	"time"
)

// MaxServiceImages caps how many images a bookable service may carry.
const MaxServiceImages = 3

// Service is a bookable offering (styling session, fitting, workshop...)
// customers reserve through the storefront.
type Service struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Details   string    `gorm:"type:text" json:"details"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Images       []ServiceImage `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Reservations []Reservation  `gorm:"foreignKey:ServiceID" json:"-"`
}

func (Service) TableName() string {
	return "services"
}

type ServiceImage struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	ServiceID uint   `gorm:"not null;index" json:"service_id"`
	URL       string `gorm:"not null" json:"url"`
	Position  int    `gorm:"not null;default:0" json:"position"`
}

func (ServiceImage) TableName() string {
	return "service_images"
}

// Reservation is a customer's booking request; an admin flips Validated by
// hand, nothing expires automatically.
type Reservation struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ServiceID uint      `gorm:"not null;index" json:"service_id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Phone     string    `gorm:"not null" json:"phone"`
	Validated bool      `gorm:"default:false" json:"validated"`
	CreatedAt time.Time `json:"created_at"`

	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Reservation) TableName() string {
	return "reservations"
}
