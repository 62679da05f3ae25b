package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jamaicasolina/ClassSync/internal/dto"
	"github.com/jamaicasolina/ClassSync/internal/service"
	"github.com/jamaicasolina/ClassSync/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// Timetable 导出周课表 XLSX
// GET /api/v1/schedules/export?year_level=3&section=A
func (h *ExportHandler) Timetable(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var q dto.SectionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 13001, bindErrorMessage(err))
		return
	}

	buf, filename, err := h.exportSvc.ExportTimetable(c.Request.Context(), &q, caller)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// Calendar 导出本人课时 iCalendar
// GET /api/v1/schedules/calendar
func (h *ExportHandler) Calendar(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	data, filename, err := h.exportSvc.ExportCalendar(c.Request.Context(), caller, time.Now())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, contentTypeICS, data)
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportEmpty):
		response.NotFound(c, 13401, "No schedules to export")
	case errors.Is(err, service.ErrSectionRequired):
		response.BadRequest(c, 13006, "Year level and section required")
	case errors.Is(err, service.ErrForbiddenAction):
		response.Forbidden(c, 13302, "Access denied")
	default:
		response.InternalError(c)
	}
}
