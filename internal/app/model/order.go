package model

import (
	"time"
)

type Order struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"` // nil for guest checkout
	Total     float64   `gorm:"not null" json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User     *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Shipping Shipping    `gorm:"foreignKey:OrderID" json:"shipping"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

// Shipping is the address snapshot taken at checkout, one row per order.
type Shipping struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	OrderID   uint   `gorm:"not null;uniqueIndex" json:"order_id"`
	FullName  string `gorm:"not null" json:"full_name"`
	Address   string `gorm:"not null" json:"address"`
	Telephone string `gorm:"not null" json:"telephone"`
	City      string `gorm:"not null" json:"city"`
	Country   string `gorm:"not null" json:"country"`
	Email     string `gorm:"not null" json:"email"`
}

func (Shipping) TableName() string {
	return "shippings"
}

// OrderItem snapshots the unit price and discount at checkout time so later
// product edits never change historical totals.
type OrderItem struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
	Discount  float64 `gorm:"default:0" json:"discount"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
