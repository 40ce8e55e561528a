package repository

import (
	"strings"
	"time"

	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReservationFilter struct {
	From   *time.Time
	To     *time.Time
	Search string // matched against full name and phone
}

type ServiceRepository interface {
	Create(service *model.Service) error
	FindAll() ([]model.Service, error)
	FindByID(id uint) (*model.Service, error)
	Update(service *model.Service) error
	DeleteByIDs(ids []uint) (int64, error)
}

type ReservationRepository interface {
	Create(reservation *model.Reservation) error
	FindWithFilter(filter ReservationFilter) ([]model.Reservation, error)
	FindByID(id uint) (*model.Reservation, error)
	SetValidated(id uint, validated bool) error
	DeleteByIDs(ids []uint) (int64, error)
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(service *model.Service) error {
	if err := r.db.Create(service).Error; err != nil {
		logger.Error("Failed to create service in database", err, map[string]interface{}{
			"title": service.Title,
		})
		return err
	}
	return nil
}

func (r *serviceRepository) FindAll() ([]model.Service, error) {
	var services []model.Service
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("created_at DESC").Find(&services).Error
	if err != nil {
		logger.Error("Failed to list services in database", err)
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) FindByID(id uint) (*model.Service, error) {
	var service model.Service
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&service, id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) Update(service *model.Service) error {
	if err := r.db.Save(service).Error; err != nil {
		logger.Error("Failed to update service in database", err, map[string]interface{}{
			"service_id": service.ID,
		})
		return err
	}
	return nil
}

func (r *serviceRepository) DeleteByIDs(ids []uint) (int64, error) {
	if err := r.db.Where("service_id IN ?", ids).Delete(&model.ServiceImage{}).Error; err != nil {
		return 0, err
	}

	result := r.db.Where("id IN ?", ids).Delete(&model.Service{})
	if result.Error != nil {
		logger.Error("Failed to delete services in database", result.Error, map[string]interface{}{
			"ids": ids,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(reservation *model.Reservation) error {
	if err := r.db.Create(reservation).Error; err != nil {
		logger.Error("Failed to create reservation in database", err, map[string]interface{}{
			"service_id": reservation.ServiceID,
		})
		return err
	}
	return nil
}

func (r *reservationRepository) FindWithFilter(filter ReservationFilter) ([]model.Reservation, error) {
	query := r.db.Preload("Service")

	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR phone LIKE ?", term, term)
	}

	var reservations []model.Reservation
	if err := query.Order("created_at DESC").Find(&reservations).Error; err != nil {
		logger.Error("Failed to list reservations in database", err)
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindByID(id uint) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := r.db.Preload("Service").First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) SetValidated(id uint, validated bool) error {
	result := r.db.Model(&model.Reservation{}).Where("id = ?", id).Update("validated", validated)
	if result.Error != nil {
		logger.Error("Failed to update reservation in database", result.Error, map[string]interface{}{
			"reservation_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reservationRepository) DeleteByIDs(ids []uint) (int64, error) {
	result := r.db.Where("id IN ?", ids).Delete(&model.Reservation{})
	if result.Error != nil {
		logger.Error("Failed to delete reservations in database", result.Error, map[string]interface{}{
			"ids": ids,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
