package service

import (
	"errors"
	"strings"

	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderEmpty              = errors.New("an order needs at least one product")
	ErrOrderShippingIncomplete = errors.New("shipping address is incomplete")
)

type OrderLineInput struct {
	ProductID uint
	Quantity  int
	Price     float64
	Discount  float64
}

type ShippingInput struct {
	FullName  string
	Address   string
	Telephone string
	City      string
	Country   string
	Email     string
}

type OrderInput struct {
	UserID   *uint // nil for guest checkout
	Lines    []OrderLineInput
	Shipping ShippingInput
}

type OrderService interface {
	CreateOrder(input OrderInput) (*model.Order, error)
	ListOrders() ([]model.Order, error)
	GetOrderByID(id uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	DeleteOrder(id uint) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	db        *gorm.DB
}

func NewOrderService(orderRepo repository.OrderRepository, db *gorm.DB) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		db:        db,
	}
}

func (s *ShippingInput) complete() bool {
	for _, field := range []string{s.FullName, s.Address, s.Telephone, s.City, s.Country, s.Email} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// OrderTotal computes the order total as the sum of per-line subtotals,
// each clamped at zero: max((price - discount) * quantity, 0). The clamp is
// per line, never global.
func OrderTotal(lines []OrderLineInput) float64 {
	total := decimal.Zero
	for _, line := range lines {
		subtotal := decimal.NewFromFloat(line.Price).
			Sub(decimal.NewFromFloat(line.Discount)).
			Mul(decimal.NewFromInt(int64(line.Quantity)))
		if subtotal.IsNegative() {
			subtotal = decimal.Zero
		}
		total = total.Add(subtotal)
	}

	value, _ := total.Float64()
	return value
}

func (s *orderService) CreateOrder(input OrderInput) (*model.Order, error) {
	if len(input.Lines) == 0 {
		return nil, ErrOrderEmpty
	}
	if !input.Shipping.complete() {
		return nil, ErrOrderShippingIncomplete
	}

	logger.Info("Creating order", map[string]interface{}{
		"user_id": input.UserID,
		"lines":   len(input.Lines),
	})

	order := &model.Order{
		UserID: input.UserID,
		Total:  OrderTotal(input.Lines),
		Shipping: model.Shipping{
			FullName:  input.Shipping.FullName,
			Address:   input.Shipping.Address,
			Telephone: input.Shipping.Telephone,
			City:      input.Shipping.City,
			Country:   input.Shipping.Country,
			Email:     input.Shipping.Email,
		},
	}
	for _, line := range input.Lines {
		order.Items = append(order.Items, model.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Discount:  line.Discount,
		})
	}

	// one composite write: order row, shipping snapshot, N line rows
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": input.UserID,
		})
		return nil, err
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id": order.ID,
		"total":    order.Total,
	})
	return order, nil
}

func (s *orderService) ListOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) GetOrderByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

// DeleteOrder removes line rows first, then the order, then the shipping
// snapshot, in that order to satisfy the foreign keys.
func (s *orderService) DeleteOrder(id uint) error {
	if _, err := s.orderRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Order{}, id).Error; err != nil {
			return err
		}
		return tx.Where("order_id = ?", id).Delete(&model.Shipping{}).Error
	})
	if err != nil {
		logger.Error("Failed to delete order", err, map[string]interface{}{
			"order_id": id,
		})
		return err
	}

	logger.Info("Order deleted", map[string]interface{}{
		"order_id": id,
	})
	return nil
}
