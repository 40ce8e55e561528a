package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karimelh/vitrine-backend/internal/app/service"
	apperrors "github.com/karimelh/vitrine-backend/internal/errors"
	"github.com/karimelh/vitrine-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type OrderLineRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price" binding:"required,gte=0"`
	Discount  float64 `json:"discount" binding:"gte=0"`
}

type ShippingRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	Address   string `json:"address" binding:"required"`
	Telephone string `json:"telephone" binding:"required"`
	City      string `json:"city" binding:"required"`
	Country   string `json:"country" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

type CreateOrderRequest struct {
	Lines    []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
	Shipping ShippingRequest    `json:"shipping" binding:"required"`
}

// CreateOrder places an order; guests may order without an account
// POST /api/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	input := service.OrderInput{
		Shipping: service.ShippingInput{
			FullName:  req.Shipping.FullName,
			Address:   req.Shipping.Address,
			Telephone: req.Shipping.Telephone,
			City:      req.Shipping.City,
			Country:   req.Shipping.Country,
			Email:     req.Shipping.Email,
		},
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, service.OrderLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Discount:  line.Discount,
		})
	}

	// attach the order to the account when the caller is logged in
	if userID, ok := middleware.GetUserID(c); ok {
		input.UserID = &userID
	}

	order, err := ctrl.orderService.CreateOrder(input)
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to create order")
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"order_id": order.ID,
		"total":    order.Total,
	})

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
	})
}

// ListOrders returns all orders (admin only)
// GET /api/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.ListOrders()
	if err != nil {
		log.Error("Failed to fetch orders", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetMyOrders returns the authenticated user's orders
// GET /api/orders/me
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderByID returns one order (admin only)
// GET /api/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := ctrl.orderService.GetOrderByID(id)
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// DeleteOrder removes an order (admin only)
// DELETE /api/orders/:id
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	if err := ctrl.orderService.DeleteOrder(id); err != nil {
		ctrl.respondOrderError(c, err, "Failed to delete order")
		return
	}

	log.Info("Order deleted", map[string]interface{}{
		"order_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted",
	})
}

func (ctrl *OrderController) respondOrderError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, service.ErrOrderEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": "An order needs at least one product"})
	case errors.Is(err, service.ErrOrderShippingIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping address is incomplete"})
	default:
		log.Error(fallback, err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, fallback)
	}
}
