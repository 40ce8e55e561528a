package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/internal/app/service"
	apperrors "github.com/karimelh/vitrine-backend/internal/errors"
	"github.com/karimelh/vitrine-backend/internal/middleware"
)

type BookingController struct {
	bookingService service.BookingService
}

func NewBookingController(bookingService service.BookingService) *BookingController {
	return &BookingController{
		bookingService: bookingService,
	}
}

type ServiceRequest struct {
	Title   string   `json:"title" binding:"required"`
	Details string   `json:"details"`
	Price   float64  `json:"price" binding:"required,gt=0"`
	Images  []string `json:"images" binding:"max=3"`
}

type ReservationRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	FullName  string `json:"full_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

type ValidateReservationRequest struct {
	Validated *bool `json:"validated" binding:"required"`
}

// ListServices returns all bookable services
// GET /api/services
func (ctrl *BookingController) ListServices(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	services, err := ctrl.bookingService.ListServices()
	if err != nil {
		log.Error("Failed to fetch services", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch services",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"count":    len(services),
	})
}

// GetServiceByID returns one service
// GET /api/services/:id
func (ctrl *BookingController) GetServiceByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	svc, err := ctrl.bookingService.GetServiceByID(id)
	if err != nil {
		ctrl.respondBookingError(c, err, "Failed to fetch service")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service": svc,
	})
}

// CreateService adds a bookable service (admin only)
// POST /api/services
func (ctrl *BookingController) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	svc, err := ctrl.bookingService.CreateService(service.ServiceInput{
		Title:   req.Title,
		Details: req.Details,
		Price:   req.Price,
		Images:  req.Images,
	})
	if err != nil {
		ctrl.respondBookingError(c, err, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"service": svc,
	})
}

// UpdateService edits a bookable service (admin only)
// PUT /api/services/:id
func (ctrl *BookingController) UpdateService(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	svc, err := ctrl.bookingService.UpdateService(id, service.ServiceInput{
		Title:   req.Title,
		Details: req.Details,
		Price:   req.Price,
		Images:  req.Images,
	})
	if err != nil {
		ctrl.respondBookingError(c, err, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service": svc,
	})
}

// DeleteServices removes services and their reservations (admin only)
// DELETE /api/services?id=1&id=2 or ?id=1,2
func (ctrl *BookingController) DeleteServices(c *gin.Context) {
	ids, err := parseIDList(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := ctrl.bookingService.DeleteServices(ids)
	if err != nil {
		ctrl.respondBookingError(c, err, "Failed to delete services")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
	})
}

// CreateReservation books a service slot for a customer
// POST /api/reservations
func (ctrl *BookingController) CreateReservation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	reservation, err := ctrl.bookingService.CreateReservation(service.ReservationInput{
		ServiceID: req.ServiceID,
		FullName:  req.FullName,
		Phone:     req.Phone,
	})
	if err != nil {
		ctrl.respondBookingError(c, err, "Failed to create reservation")
		return
	}

	log.Info("Reservation placed", map[string]interface{}{
		"reservation_id": reservation.ID,
		"service_id":     reservation.ServiceID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"reservation": reservation,
	})
}

// ListReservations returns reservations with optional filters (admin only)
// GET /api/reservations?from=2024-01-01&to=2024-12-31&search=marie
func (ctrl *BookingController) ListReservations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter, err := parseReservationFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservations, err := ctrl.bookingService.ListReservations(filter)
	if err != nil {
		log.Error("Failed to fetch reservations", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch reservations",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"count":        len(reservations),
	})
}

// ValidateReservation flips the validated flag (admin only)
// PATCH /api/reservations/:id/validate
func (ctrl *BookingController) ValidateReservation(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	var req ValidateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.bookingService.SetReservationValidated(id, *req.Validated); err != nil {
		ctrl.respondBookingError(c, err, "Failed to update reservation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reservation updated",
	})
}

// DeleteReservations bulk-deletes reservations (admin only)
// DELETE /api/reservations?id=1&id=2 or ?id=1,2
func (ctrl *BookingController) DeleteReservations(c *gin.Context) {
	ids, err := parseIDList(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := ctrl.bookingService.DeleteReservations(ids)
	if err != nil {
		ctrl.respondBookingError(c, err, "Failed to delete reservations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
	})
}

// parseReservationFilter reads from/to (YYYY-MM-DD) and search from the
// query string. The to date is inclusive: it covers the whole day.
func parseReservationFilter(c *gin.Context) (repository.ReservationFilter, error) {
	filter := repository.ReservationFilter{
		Search: c.Query("search"),
	}

	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errors.New("invalid from date, expected YYYY-MM-DD")
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errors.New("invalid to date, expected YYYY-MM-DD")
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	return filter, nil
}

func (ctrl *BookingController) respondBookingError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
	case errors.Is(err, service.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
	case errors.Is(err, service.ErrServiceTitleMissing),
		errors.Is(err, service.ErrServiceInvalidPrice),
		errors.Is(err, service.ErrServiceTooManyImages),
		errors.Is(err, service.ErrReservationIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error(fallback, err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, fallback)
	}
}
