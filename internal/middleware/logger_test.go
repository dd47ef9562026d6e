package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := zerolog.New(&buf)

	server := gin.New()
	server.Use(RequestLogger(logger))
	server.GET("/cashcards/:id", func(gctx *gin.Context) {
		gctx.Set(AuthPrincipalKey, domain.Principal{Username: "lemuk"})
		zerolog.Ctx(gctx.Request.Context()).Info().Msg("inner")
		gctx.Status(http.StatusNotFound)
	})

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/cashcards/1000", nil))

	requestID := recorder.Header().Get(RequestIDHeader)
	if requestID == "" {
		t.Fatalf("%s response header is empty", RequestIDHeader)
	}

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2: %s", len(lines), buf.String())
	}

	var inner, access map[string]any
	if err := json.Unmarshal(lines[0], &inner); err != nil {
		t.Fatalf("json.Unmarshal(%s) returned error: %v", lines[0], err)
	}

	if err := json.Unmarshal(lines[1], &access); err != nil {
		t.Fatalf("json.Unmarshal(%s) returned error: %v", lines[1], err)
	}

	if inner["request_id"] != requestID {
		t.Errorf("inner request_id = %v, want %v", inner["request_id"], requestID)
	}

	want := map[string]any{
		"request_id":  requestID,
		"method":      http.MethodGet,
		"path":        "/cashcards/1000",
		"status_code": float64(http.StatusNotFound),
		"principal":   "lemuk",
	}

	for k, v := range want {
		if access[k] != v {
			t.Errorf("access log %s = %v, want %v", k, access[k], v)
		}
	}
}

func TestRequestLoggerKeepsIncomingID(t *testing.T) {
	var buf bytes.Buffer

	server := gin.New()
	server.Use(RequestLogger(zerolog.New(&buf)))
	server.GET("/health", func(gctx *gin.Context) { gctx.Status(http.StatusOK) })

	request := httptest.NewRequest(http.MethodGet, "/health", nil)
	request.Header.Set(RequestIDHeader, "req-1")

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	if got := recorder.Header().Get(RequestIDHeader); got != "req-1" {
		t.Errorf("%s = %q, want %q", RequestIDHeader, got, "req-1")
	}

	// A second request must not inherit the first one's id.
	recorder = httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	if got := recorder.Header().Get(RequestIDHeader); got == "req-1" || got == "" {
		t.Errorf("%s = %q, want a fresh id", RequestIDHeader, got)
	}
}
