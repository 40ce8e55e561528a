package service

import (
	"testing"
	"time"

	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBookingServiceTest(t *testing.T) (BookingService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	serviceRepo := repository.NewServiceRepository(testDB)
	reservationRepo := repository.NewReservationRepository(testDB)
	return NewBookingService(serviceRepo, reservationRepo, testDB), testDB
}

func validServiceInput() ServiceInput {
	return ServiceInput{
		Title:  "Styling session",
		Price:  50,
		Images: []string{"/uploads/services/a.jpg"},
	}
}

func TestBookingService_CreateService(t *testing.T) {
	svc, _ := setupBookingServiceTest(t)

	created, err := svc.CreateService(validServiceInput())
	require.NoError(t, err)
	assert.Equal(t, "Styling session", created.Title)
	require.Len(t, created.Images, 1)
	assert.Equal(t, 0, created.Images[0].Position)
}

func TestBookingService_CreateService_Validation(t *testing.T) {
	svc, _ := setupBookingServiceTest(t)

	noTitle := validServiceInput()
	noTitle.Title = "  "
	_, err := svc.CreateService(noTitle)
	assert.ErrorIs(t, err, ErrServiceTitleMissing)

	freebie := validServiceInput()
	freebie.Price = 0
	_, err = svc.CreateService(freebie)
	assert.ErrorIs(t, err, ErrServiceInvalidPrice)

	tooMany := validServiceInput()
	tooMany.Images = []string{"/a.jpg", "/b.jpg", "/c.jpg", "/d.jpg"}
	_, err = svc.CreateService(tooMany)
	assert.ErrorIs(t, err, ErrServiceTooManyImages)
}

func TestBookingService_UpdateService_ReplacesImages(t *testing.T) {
	svc, _ := setupBookingServiceTest(t)

	created, err := svc.CreateService(validServiceInput())
	require.NoError(t, err)

	update := validServiceInput()
	update.Images = []string{"/new-1.jpg", "/new-2.jpg"}

	updated, err := svc.UpdateService(created.ID, update)
	require.NoError(t, err)
	require.Len(t, updated.Images, 2)
	assert.Equal(t, "/new-1.jpg", updated.Images[0].URL)
}

func TestBookingService_DeleteServices_RemovesReservations(t *testing.T) {
	svc, testDB := setupBookingServiceTest(t)

	created, err := svc.CreateService(validServiceInput())
	require.NoError(t, err)

	_, err = svc.CreateReservation(ReservationInput{
		ServiceID: created.ID,
		FullName:  "Marie Curie",
		Phone:     "+33612345678",
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteServices([]uint{created.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var reservations int64
	require.NoError(t, testDB.Model(&model.Reservation{}).Count(&reservations).Error)
	assert.Zero(t, reservations)
}

func TestBookingService_CreateReservation(t *testing.T) {
	svc, _ := setupBookingServiceTest(t)

	created, err := svc.CreateService(validServiceInput())
	require.NoError(t, err)

	reservation, err := svc.CreateReservation(ReservationInput{
		ServiceID: created.ID,
		FullName:  "  Marie Curie  ",
		Phone:     "+33612345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "Marie Curie", reservation.FullName)
	assert.False(t, reservation.Validated)

	t.Run("Unknown service", func(t *testing.T) {
		_, err := svc.CreateReservation(ReservationInput{
			ServiceID: 9999,
			FullName:  "Marie",
			Phone:     "+33600000000",
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("Missing contact details", func(t *testing.T) {
		_, err := svc.CreateReservation(ReservationInput{ServiceID: created.ID, FullName: "Marie"})
		assert.ErrorIs(t, err, ErrReservationIncomplete)
	})
}

func TestBookingService_SetReservationValidated(t *testing.T) {
	svc, _ := setupBookingServiceTest(t)

	created, err := svc.CreateService(validServiceInput())
	require.NoError(t, err)

	reservation, err := svc.CreateReservation(ReservationInput{
		ServiceID: created.ID,
		FullName:  "Marie Curie",
		Phone:     "+33612345678",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetReservationValidated(reservation.ID, true))

	listed, err := svc.ListReservations(repository.ReservationFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].Validated)

	assert.ErrorIs(t, svc.SetReservationValidated(9999, true), ErrReservationNotFound)
}

func TestBookingService_ListReservations_Filters(t *testing.T) {
	svc, testDB := setupBookingServiceTest(t)

	created, err := svc.CreateService(validServiceInput())
	require.NoError(t, err)

	old := model.Reservation{
		ServiceID: created.ID,
		FullName:  "Old Booking",
		Phone:     "+33611111111",
		CreatedAt: time.Date(2023, 1, 10, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, testDB.Create(&old).Error)

	_, err = svc.CreateReservation(ReservationInput{
		ServiceID: created.ID,
		FullName:  "Marie Curie",
		Phone:     "+33612345678",
	})
	require.NoError(t, err)

	t.Run("Date range", func(t *testing.T) {
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		listed, err := svc.ListReservations(repository.ReservationFilter{From: &from})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "Marie Curie", listed[0].FullName)
	})

	t.Run("Text search on name", func(t *testing.T) {
		listed, err := svc.ListReservations(repository.ReservationFilter{Search: "marie"})
		require.NoError(t, err)
		require.Len(t, listed, 1)
	})

	t.Run("Text search on phone", func(t *testing.T) {
		listed, err := svc.ListReservations(repository.ReservationFilter{Search: "33611"})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "Old Booking", listed[0].FullName)
	})
}

func TestBookingService_DeleteReservations(t *testing.T) {
	svc, _ := setupBookingServiceTest(t)

	created, err := svc.CreateService(validServiceInput())
	require.NoError(t, err)

	first, err := svc.CreateReservation(ReservationInput{ServiceID: created.ID, FullName: "A", Phone: "1"})
	require.NoError(t, err)
	second, err := svc.CreateReservation(ReservationInput{ServiceID: created.ID, FullName: "B", Phone: "2"})
	require.NoError(t, err)

	deleted, err := svc.DeleteReservations([]uint{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = svc.DeleteReservations([]uint{9999})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
