package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karimelh/vitrine-backend/internal/app/service"
	"github.com/karimelh/vitrine-backend/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportController struct {
	exportService service.ExportService
}

func NewExportController(exportService service.ExportService) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

// ExportOrders downloads all orders as an xlsx workbook (admin only)
// GET /api/export/orders
func (ctrl *ExportController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	buf, err := ctrl.exportService.ExportOrders()
	if err != nil {
		log.Error("Failed to export orders", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to export orders",
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFilename("orders")+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportReservations downloads reservations as an xlsx workbook, honoring
// the same filters as the list endpoint (admin only)
// GET /api/export/reservations?from=&to=&search=
func (ctrl *ExportController) ExportReservations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter, err := parseReservationFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	buf, err := ctrl.exportService.ExportReservations(filter)
	if err != nil {
		log.Error("Failed to export reservations", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to export reservations",
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFilename("reservations")+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
