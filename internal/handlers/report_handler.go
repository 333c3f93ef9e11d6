package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stationpro-api/internal/services"
)

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// parsePeriod reads start/end query parameters as calendar dates. The end of
// the period is extended to the end of its day downstream.
func parsePeriod(c *gin.Context) (time.Time, time.Time, error) {
	const layout = "2006-01-02"

	start, err := time.ParseInLocation(layout, c.Query("start"), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.ParseInLocation(layout, c.Query("end"), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period: end date before start date")
	}
	return start, end, nil
}

// @Summary Get dashboard
// @Description Get the KPI summary, tank status and stock alerts for the whole history
// @Tags reports
// @Produce json
// @Success 200 {object} services.Dashboard
// @Router /reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportService.Dashboard(c.Request.Context()))
}

// @Summary Get period report
// @Description Get revenue, expense and rollup figures for an inclusive date range
// @Tags reports
// @Produce json
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} reports.PeriodReport
// @Failure 400 {object} ErrorResponse
// @Router /reports/period [get]
func (h *ReportHandler) GetPeriodReport(c *gin.Context) {
	start, end, err := parsePeriod(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid period",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, h.reportService.PeriodReport(c.Request.Context(), start, end))
}

// @Summary Export period report
// @Description Download the period report as an Excel workbook or PDF document
// @Tags reports
// @Produce application/octet-stream
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Param format query string true "Export format" Enums(xlsx, pdf)
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Router /reports/period/export [get]
func (h *ReportHandler) ExportPeriodReport(c *gin.Context) {
	start, end, err := parsePeriod(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid period",
			Message: err.Error(),
		})
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	data, contentType, err := h.reportService.ExportReport(c.Request.Context(), start, end, format)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid export format",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to export report",
			Message: err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("rapport_%s_%s.%s", c.Query("start"), c.Query("end"), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}
