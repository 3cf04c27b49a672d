package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHealthHandler(t *testing.T) {
	dir := t.TempDir()
	ok := map[string]HealthChecker{"uploads": DirHealthChecker{Path: dir}}

	rec := httptest.NewRecorder()
	HealthHandler(ok)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body HealthStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks["uploads"].Status)

	bad := map[string]HealthChecker{
		"uploads":  DirHealthChecker{Path: filepath.Join(dir, "missing")},
		"database": CheckerFunc(func(context.Context) error { return errors.New("connection refused") }),
	}
	rec = httptest.NewRecorder()
	HealthHandler(bad)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "connection refused", body.Checks["database"].Message)
}

func TestDirHealthCheckerRejectsFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, nil, 0o600))
	assert.Error(t, DirHealthChecker{Path: f}.Check(context.Background()))
}

func TestReadinessAndLiveness(t *testing.T) {
	rec := httptest.NewRecorder()
	ReadinessHandler(nil)(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	down := map[string]HealthChecker{"db": CheckerFunc(func(context.Context) error { return errors.New("x") })}
	rec = httptest.NewRecorder()
	ReadinessHandler(down)(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	LivenessHandler(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStatusHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	StatusHandler(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "CV Processor API is running", body["message"])
	_, err := time.Parse(time.RFC3339Nano, body["timestamp"])
	assert.NoError(t, err)
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	m := NewMetrics()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/history/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) })
	r.Handle("/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/history/42", nil))
	m.ObserveAnalysis("fallback", 1500*time.Millisecond)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	assert.Contains(t, out, `cvp_http_requests_total{method="GET",route="/api/history/{id}",status="404"} 1`)
	assert.Contains(t, out, `cvp_cv_analyses_total{outcome="fallback"} 1`)
	assert.Contains(t, out, "cvp_cv_pipeline_duration_seconds_count 1")
	assert.NotContains(t, out, "/api/history/42")
}

func TestLoggingLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "boom") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("hello"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.EqualValues(t, 5, entries[0].ContextMap()["bytes"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.EqualValues(t, 500, entries[1].ContextMap()["status"])
}

func TestParseID(t *testing.T) {
	id, err := ParseID("12")
	require.NoError(t, err)
	assert.EqualValues(t, 12, id)

	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "cv.pdf", SanitizeFilename("../../etc/cv.pdf"))
	assert.Equal(t, "cv.docx", SanitizeFilename(`C:\Users\budi\cv.docx`))
	assert.Equal(t, "cv.pdf", SanitizeFilename("c\x00v\x07.pdf"))
	assert.Equal(t, "", SanitizeFilename(""))

	long := strings.Repeat("a", 300) + ".pdf"
	got := SanitizeFilename(long)
	assert.Len(t, got, 255)
	assert.True(t, strings.HasSuffix(got, ".pdf"))
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 1, ValidatePage(0))
	assert.Equal(t, 3, ValidatePage(3))
	assert.Equal(t, 1_000_000, ValidatePage(math.MaxInt))
	assert.Equal(t, 20, ValidateLimit(0))
	assert.Equal(t, 100, ValidateLimit(1000))
	assert.Equal(t, 7, ValidateLimit(7))
}
