package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"notaryflow/internal/service"
)

// ReportHandler handles back-office listing and export endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return offset, limit
}

// List handles GET /api/v1/admin/submissions
func (h *ReportHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	subs, total, err := h.reportService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, subs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ExportCSV handles GET /api/v1/admin/submissions/export.csv
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	filename := fmt.Sprintf("submissions-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.reportService.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ExportXLSX handles GET /api/v1/admin/submissions/export.xlsx
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	filename := fmt.Sprintf("submissions-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.reportService.ExportXLSX(c.Request.Context(), c.Writer); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
