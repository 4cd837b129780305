package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafebill-api/internal/application/service"
	"github.com/sangkips/cafebill-api/internal/presentation/http/dto/response"
)

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard returns aggregated billing activity for a period or an
// explicit date range.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	report, err := h.reportService.Dashboard(
		c.Request.Context(),
		c.Query("period"),
		c.Query("startDate"),
		c.Query("endDate"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", report)
}
