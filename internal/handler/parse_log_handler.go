package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"paynlp/internal/domain"
	"paynlp/internal/export"
	"paynlp/internal/service"
)

// ParseLogHandler serves recorded parses.
type ParseLogHandler struct {
	parseLogService service.ParseLogService
}

// NewParseLogHandler creates a new ParseLogHandler.
func NewParseLogHandler(parseLogService service.ParseLogService) *ParseLogHandler {
	return &ParseLogHandler{parseLogService: parseLogService}
}

// List handles GET /api/v1/parse-logs
// @Summary List parse log entries
// @Description Newest first. Requires parse log storage.
// @Tags parse-logs
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ParseLogEntry} "Parse log page"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 501 {object} ErrorResponseBody "Parse log disabled"
// @Security BearerAuth
// @Router /parse-logs [get]
func (h *ParseLogHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	entries, total, err := h.parseLogService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Export handles GET /api/v1/parse-logs/export
// @Summary Export the parse log
// @Description Download every parse log entry as CSV (UTF-8 with BOM) or XLSX.
// @Tags parse-logs
// @Produce octet-stream
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 501 {object} ErrorResponseBody "Parse log disabled"
// @Security BearerAuth
// @Router /parse-logs/export [get]
func (h *ParseLogHandler) Export(c *gin.Context) {
	format := domain.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ExportFormatCSV))))

	// Buffer so a failure can still be reported as a JSON envelope.
	var buf bytes.Buffer
	if err := h.parseLogService.Export(c.Request.Context(), format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("parse_logs", format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
