package handler_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"paynlp/internal/domain"
	"paynlp/internal/handler"
	"paynlp/mocks"
)

func newGetContext(url string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, url, http.NoBody)
	return c, w
}

func TestParseLogHandler_List_Success(t *testing.T) {
	svc := new(mocks.MockParseLogService)
	h := handler.NewParseLogHandler(svc)

	entries := []domain.ParseLogEntry{
		{ID: uuid.New(), InputText: "send $5 to bob"},
		{ID: uuid.New(), InputText: "pay ana 10 euros"},
	}
	svc.On("List", mock.Anything, 10, 2).Return(entries, 42, nil)

	c, w := newGetContext("/api/v1/parse-logs?offset=10&limit=2")
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 42, resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.Offset)
	assert.Equal(t, 2, resp.Meta.Limit)
	svc.AssertExpectations(t)
}

func TestParseLogHandler_List_ClampsPagination(t *testing.T) {
	svc := new(mocks.MockParseLogService)
	h := handler.NewParseLogHandler(svc)
	svc.On("List", mock.Anything, 0, 20).Return([]domain.ParseLogEntry{}, 0, nil)

	c, w := newGetContext("/api/v1/parse-logs?offset=-4&limit=1000")
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestParseLogHandler_List_Disabled(t *testing.T) {
	svc := new(mocks.MockParseLogService)
	h := handler.NewParseLogHandler(svc)
	svc.On("List", mock.Anything, 0, 20).Return(nil, 0, domain.ErrParseLogDisabled)

	c, w := newGetContext("/api/v1/parse-logs")
	h.List(c)

	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Contains(t, w.Body.String(), "PARSE_LOG_DISABLED")
}

func TestParseLogHandler_Export_CSV(t *testing.T) {
	svc := new(mocks.MockParseLogService)
	h := handler.NewParseLogHandler(svc)
	svc.On("Export", mock.Anything, domain.ExportFormatCSV, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(2).(io.Writer), "ID,Input\n")
		}).
		Return(nil)

	c, w := newGetContext("/api/v1/parse-logs/export")
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="parse_logs_`)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `.csv"`)
	assert.Equal(t, "ID,Input\n", w.Body.String())
}

func TestParseLogHandler_Export_XLSXUppercase(t *testing.T) {
	svc := new(mocks.MockParseLogService)
	h := handler.NewParseLogHandler(svc)
	svc.On("Export", mock.Anything, domain.ExportFormatXLSX, mock.Anything).Return(nil)

	c, w := newGetContext("/api/v1/parse-logs/export?format=XLSX")
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `.xlsx"`)
	svc.AssertExpectations(t)
}

func TestParseLogHandler_Export_UnsupportedFormat(t *testing.T) {
	svc := new(mocks.MockParseLogService)
	h := handler.NewParseLogHandler(svc)
	svc.On("Export", mock.Anything, domain.ExportFormat("pdf"), mock.Anything).Return(domain.ErrUnsupportedFormat)

	c, w := newGetContext("/api/v1/parse-logs/export?format=pdf")
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_FORMAT")
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestParseLogHandler_Export_InternalError(t *testing.T) {
	svc := new(mocks.MockParseLogService)
	h := handler.NewParseLogHandler(svc)
	svc.On("Export", mock.Anything, domain.ExportFormatCSV, mock.Anything).Return(errors.New("connection reset"))

	c, w := newGetContext("/api/v1/parse-logs/export")
	h.Export(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}
