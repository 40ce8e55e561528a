package service

import (
	"testing"
	"time"

	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_ExportOrders(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	categoryRepo := repository.NewCategoryRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	hashtagRepo := repository.NewHashtagRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	categories := NewCategoryService(categoryRepo)
	products := NewProductService(productRepo, categoryRepo, hashtagRepo, testDB)
	orders := NewOrderService(orderRepo, testDB)

	root := mustCreateCategory(t, categories, "Women", nil)
	child := mustCreateCategory(t, categories, "Clothing", &root.ID)
	leaf := mustCreateCategory(t, categories, "Dresses", &child.ID)

	product, err := products.CreateProduct(validProductInput("Linen Dress", leaf.ID))
	require.NoError(t, err)

	_, err = orders.CreateOrder(OrderInput{
		Lines:    []OrderLineInput{{ProductID: product.ID, Quantity: 2, Price: 49.90}},
		Shipping: validShipping(),
	})
	require.NoError(t, err)

	buf, err := NewExportService(orderRepo, repository.NewReservationRepository(testDB)).ExportOrders()
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, validShipping().FullName, rows[1][1])
}

func TestExportService_ExportReservations(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	serviceRepo := repository.NewServiceRepository(testDB)
	reservationRepo := repository.NewReservationRepository(testDB)
	booking := NewBookingService(serviceRepo, reservationRepo, testDB)

	svc, err := booking.CreateService(validServiceInput())
	require.NoError(t, err)

	reservation, err := booking.CreateReservation(ReservationInput{
		ServiceID: svc.ID,
		FullName:  "Marie Curie",
		Phone:     "+33612345678",
	})
	require.NoError(t, err)
	require.NoError(t, booking.SetReservationValidated(reservation.ID, true))

	buf, err := NewExportService(repository.NewOrderRepository(testDB), reservationRepo).ExportReservations(repository.ReservationFilter{})
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Reservations")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Marie Curie", rows[1][2])
	assert.Equal(t, "yes", rows[1][4])
}

func TestExportFilename(t *testing.T) {
	expected := "orders-" + time.Now().Format("2006-01-02") + ".xlsx"
	assert.Equal(t, expected, ExportFilename("orders"))
}
