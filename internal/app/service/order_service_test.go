package service

import (
	"testing"

	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (OrderService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	orderRepo := repository.NewOrderRepository(testDB)
	return NewOrderService(orderRepo, testDB), testDB
}

func validShipping() ShippingInput {
	return ShippingInput{
		FullName:  "Marie Curie",
		Address:   "12 rue des Lilas",
		Telephone: "+33612345678",
		City:      "Paris",
		Country:   "France",
		Email:     "marie@example.com",
	}
}

func TestOrderTotal(t *testing.T) {
	tests := []struct {
		name  string
		lines []OrderLineInput
		want  float64
	}{
		{
			name: "Single line",
			lines: []OrderLineInput{
				{Price: 100, Quantity: 2},
			},
			want: 200,
		},
		{
			name: "Discount applied per unit",
			lines: []OrderLineInput{
				{Price: 100, Discount: 20, Quantity: 3},
			},
			want: 240,
		},
		{
			name: "Discount larger than price clamps the line to zero",
			lines: []OrderLineInput{
				{Price: 100, Discount: 120, Quantity: 2},
			},
			want: 0,
		},
		{
			name: "Clamp is per line, not global",
			lines: []OrderLineInput{
				{Price: 100, Discount: 120, Quantity: 2},
				{Price: 50, Quantity: 1},
			},
			want: 50,
		},
		{
			name: "Float-unfriendly prices stay exact",
			lines: []OrderLineInput{
				{Price: 0.1, Quantity: 3},
			},
			want: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderTotal(tt.lines))
		})
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)

	order, err := svc.CreateOrder(OrderInput{
		Lines: []OrderLineInput{
			{ProductID: 1, Quantity: 2, Price: 100, Discount: 10},
			{ProductID: 2, Quantity: 1, Price: 50},
		},
		Shipping: validShipping(),
	})
	require.NoError(t, err)

	assert.Equal(t, float64(230), order.Total)
	assert.Nil(t, order.UserID)

	// composite write: order, shipping snapshot and line rows all landed
	var shipping model.Shipping
	require.NoError(t, testDB.Where("order_id = ?", order.ID).First(&shipping).Error)
	assert.Equal(t, "Marie Curie", shipping.FullName)

	var items int64
	require.NoError(t, testDB.Model(&model.OrderItem{}).Where("order_id = ?", order.ID).Count(&items).Error)
	assert.Equal(t, int64(2), items)
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	_, err := svc.CreateOrder(OrderInput{Shipping: validShipping()})
	assert.ErrorIs(t, err, ErrOrderEmpty)

	incomplete := validShipping()
	incomplete.City = " "
	_, err = svc.CreateOrder(OrderInput{
		Lines:    []OrderLineInput{{ProductID: 1, Quantity: 1, Price: 10}},
		Shipping: incomplete,
	})
	assert.ErrorIs(t, err, ErrOrderShippingIncomplete)
}

func TestOrderService_GetUserOrders(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	userID := uint(7)
	_, err := svc.CreateOrder(OrderInput{
		UserID:   &userID,
		Lines:    []OrderLineInput{{ProductID: 1, Quantity: 1, Price: 10}},
		Shipping: validShipping(),
	})
	require.NoError(t, err)

	_, err = svc.CreateOrder(OrderInput{
		Lines:    []OrderLineInput{{ProductID: 2, Quantity: 1, Price: 20}},
		Shipping: validShipping(),
	})
	require.NoError(t, err)

	mine, err := svc.GetUserOrders(userID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.ListOrders()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)

	order, err := svc.CreateOrder(OrderInput{
		Lines:    []OrderLineInput{{ProductID: 1, Quantity: 1, Price: 10}},
		Shipping: validShipping(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(order.ID))

	_, err = svc.GetOrderByID(order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// no orphan rows left behind
	var items, shippings int64
	require.NoError(t, testDB.Model(&model.OrderItem{}).Count(&items).Error)
	require.NoError(t, testDB.Model(&model.Shipping{}).Count(&shippings).Error)
	assert.Zero(t, items)
	assert.Zero(t, shippings)

	assert.ErrorIs(t, svc.DeleteOrder(9999), ErrOrderNotFound)
}
