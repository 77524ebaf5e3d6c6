package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"paynlp/internal/service"
)

// ParseHandler handles payment sentence parsing.
type ParseHandler struct {
	parseService service.ParseService
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(parseService service.ParseService) *ParseHandler {
	return &ParseHandler{parseService: parseService}
}

// Parse handles POST /api/v1/parse
// @Summary Parse a payment sentence
// @Description Extract intent, amount, currency and recipient from one English or Spanish sentence. Fields that cannot be extracted are null. A null, missing or blank text yields all-null data.
// @Tags parse
// @Accept json
// @Produce json
// @Param request body ParseRequest true "Sentence to parse"
// @Param debug query bool false "Include dependency rendering and strategy trace"
// @Success 200 {object} Response{data=domain.ParseResult} "Extracted fields"
// @Failure 400 {object} ErrorResponseBody "Malformed JSON body"
// @Failure 429 {object} ErrorResponseBody "Rate limited"
// @Router /parse [post]
func (h *ParseHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be JSON of the form {\"text\": string|null}")
		return
	}

	text := ""
	if req.Text != nil {
		text = *req.Text
	}
	debug, _ := strconv.ParseBool(c.DefaultQuery("debug", "false"))

	result := h.parseService.Parse(c.Request.Context(), text, debug)
	RespondOK(c, result)
}
