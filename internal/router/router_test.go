package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paynlp/internal/annotator/simple"
	"paynlp/internal/auth"
	"paynlp/internal/config"
	"paynlp/internal/extract"
	"paynlp/internal/handler"
	"paynlp/internal/repository/noop"
	"paynlp/internal/router"
	"paynlp/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine *gin.Engine
	tokens *auth.TokenService
}

func newTestServer(t *testing.T, rateLimit bool) *testServer {
	t.Helper()
	cfg := &config.Config{
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimit: config.RateLimitConfig{Enabled: rateLimit, RequestsPerSecond: 0.001, Burst: 1},
		Auth:      config.AuthConfig{JWTSecret: "test-secret", Issuer: "paynlp"},
	}
	logger := zap.NewNop()
	ann := simple.New()
	repo := noop.NewParseLogRepo()
	tokens := auth.NewTokenService(&cfg.Auth)

	parseSvc := service.NewParseService(extract.NewExtractor(ann, []string{"to", "a", "para"}, logger), repo, ann.Name(), logger)
	engine := router.Setup(cfg, logger, tokens,
		handler.NewParseHandler(parseSvc),
		handler.NewParseLogHandler(service.NewParseLogService(repo)),
		handler.NewHealthHandler(repo),
	)
	return &testServer{engine: engine, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, http.NoBody)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.RemoteAddr = "192.0.2.1:5555"
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_ParseEndToEnd(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodPost, "/api/v1/parse", `{"text":"could you please send $15 to gaby?"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Intent      *string  `json:"intent"`
			AmountText  *string  `json:"amountText"`
			AmountValue *float64 `json:"amountValue"`
			Currency    *string  `json:"currency"`
			Recipient   *string  `json:"recipient"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data.Intent)
	assert.Equal(t, "send", *resp.Data.Intent)
	require.NotNil(t, resp.Data.AmountValue)
	assert.Equal(t, 15.0, *resp.Data.AmountValue)
	require.NotNil(t, resp.Data.Currency)
	assert.Equal(t, "USD", *resp.Data.Currency)
	require.NotNil(t, resp.Data.Recipient)
	assert.Equal(t, "gaby", *resp.Data.Recipient)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.NotContains(t, w.Body.String(), "trace")
}

func TestRouter_ParseDebug(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodPost, "/api/v1/parse?debug=true", `{"text":"pay bob 5 dollars"}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "trace")
}

func TestRouter_ParseRateLimited(t *testing.T) {
	s := newTestServer(t, true)

	first := s.do(t, http.MethodPost, "/api/v1/parse", `{"text":"pay bob"}`, "")
	second := s.do(t, http.MethodPost, "/api/v1/parse", `{"text":"pay bob"}`, "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRouter_ParseLogsRequireToken(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodGet, "/api/v1/parse-logs", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := s.tokens.IssueToken("ops", time.Hour)
	require.NoError(t, err)

	// storage is disabled in this server
	w = s.do(t, http.MethodGet, "/api/v1/parse-logs", "", token)
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/parse-logs/export?format=pdf", "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t, false)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/readyz", "", "").Code)

	s.do(t, http.MethodPost, "/api/v1/parse", `{"text":"send 5 euros to ana"}`, "")
	w := s.do(t, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "paynlp_")
}
