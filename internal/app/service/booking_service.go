package service

import (
	"errors"
	"strings"

	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound       = errors.New("service not found")
	ErrServiceTitleMissing   = errors.New("service title is required")
	ErrServiceInvalidPrice   = errors.New("service price must be positive")
	ErrServiceTooManyImages  = errors.New("a service accepts at most 3 images")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrReservationIncomplete = errors.New("full name and phone are required")
)

type ServiceInput struct {
	Title   string
	Details string
	Price   float64
	Images  []string
}

type ReservationInput struct {
	ServiceID uint
	FullName  string
	Phone     string
}

type BookingService interface {
	ListServices() ([]model.Service, error)
	GetServiceByID(id uint) (*model.Service, error)
	CreateService(input ServiceInput) (*model.Service, error)
	UpdateService(id uint, input ServiceInput) (*model.Service, error)
	DeleteServices(ids []uint) (int64, error)

	CreateReservation(input ReservationInput) (*model.Reservation, error)
	ListReservations(filter repository.ReservationFilter) ([]model.Reservation, error)
	SetReservationValidated(id uint, validated bool) error
	DeleteReservations(ids []uint) (int64, error)
}

type bookingService struct {
	serviceRepo     repository.ServiceRepository
	reservationRepo repository.ReservationRepository
	db              *gorm.DB
}

func NewBookingService(
	serviceRepo repository.ServiceRepository,
	reservationRepo repository.ReservationRepository,
	db *gorm.DB,
) BookingService {
	return &bookingService{
		serviceRepo:     serviceRepo,
		reservationRepo: reservationRepo,
		db:              db,
	}
}

func (s *bookingService) ListServices() ([]model.Service, error) {
	return s.serviceRepo.FindAll()
}

func (s *bookingService) GetServiceByID(id uint) (*model.Service, error) {
	svc, err := s.serviceRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}

func validateServiceInput(input ServiceInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrServiceTitleMissing
	}
	if input.Price <= 0 {
		return ErrServiceInvalidPrice
	}
	if len(input.Images) > model.MaxServiceImages {
		return ErrServiceTooManyImages
	}
	return nil
}

func (s *bookingService) CreateService(input ServiceInput) (*model.Service, error) {
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}

	svc := &model.Service{
		Title:   strings.TrimSpace(input.Title),
		Details: input.Details,
		Price:   input.Price,
	}
	for i, url := range input.Images {
		svc.Images = append(svc.Images, model.ServiceImage{URL: url, Position: i})
	}

	if err := s.serviceRepo.Create(svc); err != nil {
		return nil, err
	}

	logger.Info("Service created", map[string]interface{}{
		"service_id": svc.ID,
		"title":      svc.Title,
	})
	return svc, nil
}

func (s *bookingService) UpdateService(id uint, input ServiceInput) (*model.Service, error) {
	svc, err := s.GetServiceByID(id)
	if err != nil {
		return nil, err
	}

	if err := validateServiceInput(input); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		svc.Title = strings.TrimSpace(input.Title)
		svc.Details = input.Details
		svc.Price = input.Price

		if input.Images != nil {
			if err := tx.Where("service_id = ?", id).Delete(&model.ServiceImage{}).Error; err != nil {
				return err
			}
			for i, url := range input.Images {
				img := model.ServiceImage{ServiceID: id, URL: url, Position: i}
				if err := tx.Create(&img).Error; err != nil {
					return err
				}
			}
		}

		return tx.Omit("Images").Save(svc).Error
	})
	if err != nil {
		logger.Error("Failed to update service", err, map[string]interface{}{
			"service_id": id,
		})
		return nil, err
	}

	return s.GetServiceByID(id)
}

// DeleteServices removes services together with their reservations.
func (s *bookingService) DeleteServices(ids []uint) (int64, error) {
	if err := s.db.Where("service_id IN ?", ids).Delete(&model.Reservation{}).Error; err != nil {
		return 0, err
	}

	deleted, err := s.serviceRepo.DeleteByIDs(ids)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrServiceNotFound
	}

	logger.Info("Services deleted", map[string]interface{}{
		"deleted": deleted,
	})
	return deleted, nil
}

func (s *bookingService) CreateReservation(input ReservationInput) (*model.Reservation, error) {
	if strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.Phone) == "" {
		return nil, ErrReservationIncomplete
	}

	if _, err := s.GetServiceByID(input.ServiceID); err != nil {
		return nil, err
	}

	reservation := &model.Reservation{
		ServiceID: input.ServiceID,
		FullName:  strings.TrimSpace(input.FullName),
		Phone:     strings.TrimSpace(input.Phone),
	}
	if err := s.reservationRepo.Create(reservation); err != nil {
		return nil, err
	}

	logger.Info("Reservation created", map[string]interface{}{
		"reservation_id": reservation.ID,
		"service_id":     reservation.ServiceID,
	})
	return reservation, nil
}

func (s *bookingService) ListReservations(filter repository.ReservationFilter) ([]model.Reservation, error) {
	return s.reservationRepo.FindWithFilter(filter)
}

func (s *bookingService) SetReservationValidated(id uint, validated bool) error {
	if err := s.reservationRepo.SetValidated(id, validated); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		return err
	}

	logger.Info("Reservation validation updated", map[string]interface{}{
		"reservation_id": id,
		"validated":      validated,
	})
	return nil
}

func (s *bookingService) DeleteReservations(ids []uint) (int64, error) {
	deleted, err := s.reservationRepo.DeleteByIDs(ids)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrReservationNotFound
	}

	logger.Info("Reservations deleted", map[string]interface{}{
		"deleted": deleted,
	})
	return deleted, nil
}
