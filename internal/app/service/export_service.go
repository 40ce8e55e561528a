package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ExportService renders admin data as xlsx workbooks for download.
type ExportService interface {
	ExportOrders() (*bytes.Buffer, error)
	ExportReservations(filter repository.ReservationFilter) (*bytes.Buffer, error)
}

type exportService struct {
	orderRepo       repository.OrderRepository
	reservationRepo repository.ReservationRepository
}

func NewExportService(
	orderRepo repository.OrderRepository,
	reservationRepo repository.ReservationRepository,
) ExportService {
	return &exportService{
		orderRepo:       orderRepo,
		reservationRepo: reservationRepo,
	}
}

func (s *exportService) ExportOrders() (*bytes.Buffer, error) {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Customer", "Email", "Telephone", "City", "Country", "Address", "Items", "Total", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, order := range orders {
		itemCount := 0
		for _, item := range order.Items {
			itemCount += item.Quantity
		}
		values := []interface{}{
			order.ID,
			order.Shipping.FullName,
			order.Shipping.Email,
			order.Shipping.Telephone,
			order.Shipping.City,
			order.Shipping.Country,
			order.Shipping.Address,
			itemCount,
			order.Total,
			order.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to render orders workbook", err, nil)
		return nil, err
	}

	logger.Info("Orders exported", map[string]interface{}{
		"count": len(orders),
	})
	return buf, nil
}

func (s *exportService) ExportReservations(filter repository.ReservationFilter) (*bytes.Buffer, error) {
	reservations, err := s.reservationRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Reservations"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Service", "Full name", "Phone", "Validated", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, r := range reservations {
		validated := "no"
		if r.Validated {
			validated = "yes"
		}
		values := []interface{}{
			r.ID,
			r.Service.Title,
			r.FullName,
			r.Phone,
			validated,
			r.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to render reservations workbook", err, nil)
		return nil, err
	}

	logger.Info("Reservations exported", map[string]interface{}{
		"count": len(reservations),
	})
	return buf, nil
}

// ExportFilename builds a dated attachment name like orders-2024-05-01.xlsx.
func ExportFilename(prefix string) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, time.Now().Format("2006-01-02"))
}
