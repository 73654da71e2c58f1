package handlers

import (
	"bytes"
	"net/http"
	"time"

	"warehouse_backend/internal/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// ExportInventory streams the inventory and sales workbook.
func (h *ReportHandler) ExportInventory(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.reportService.ExportWorkbook(&buf); err != nil {
		respondServiceError(c, err, "ExportInventory: Error from reportService.ExportWorkbook", "Failed to export inventory.")
		return
	}
	filename := "inventory-" + time.Now().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
