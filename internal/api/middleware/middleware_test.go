package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("generates an ID when none is provided", func(t *testing.T) {
		router := gin.New()
		router.Use(CorrelationID())
		var capturedContextID string
		router.GET("/test", func(c *gin.Context) {
			capturedContextID = GetCorrelationID(c)
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		respHeaderID := rr.Header().Get(CorrelationIDHeader)
		assert.NotEmpty(t, respHeaderID)
		_, err := uuid.Parse(respHeaderID)
		assert.NoError(t, err)
		assert.Equal(t, respHeaderID, capturedContextID)
	})

	t.Run("keeps a provided ID", func(t *testing.T) {
		router := gin.New()
		router.Use(CorrelationID())
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		providedID := uuid.New().String()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(CorrelationIDHeader, providedID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, providedID, rr.Header().Get(CorrelationIDHeader))
	})
}

func TestIdentityMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("stores the header value", func(t *testing.T) {
		router := gin.New()
		router.Use(Identity("X-User-ID"))
		var captured string
		router.GET("/test", func(c *gin.Context) {
			captured = GetUserIDHeader(c)
			c.Status(http.StatusOK)
		})

		userID := uuid.New().String()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-User-ID", userID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, userID, captured)
	})

	t.Run("absent header leaves the context empty", func(t *testing.T) {
		router := gin.New()
		router.Use(Identity("X-User-ID"))
		var captured string
		router.GET("/test", func(c *gin.Context) {
			captured = GetUserIDHeader(c)
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Empty(t, captured)
	})
}

func TestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logBuffer bytes.Buffer
	testLogger := slog.New(slog.NewJSONHandler(&logBuffer, nil))

	router := gin.New()
	router.Use(CorrelationID())
	router.Use(Logger(testLogger))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	correlationID := uuid.New().String()
	req, _ := http.NewRequest(http.MethodGet, "/test?verbose=1", nil)
	req.Header.Set(CorrelationIDHeader, correlationID)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(logBuffer.Bytes(), &entry))
	assert.Equal(t, "HTTP request", entry["msg"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/test?verbose=1", entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, correlationID, entry["correlation_id"])
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logBuffer bytes.Buffer
	testLogger := slog.New(slog.NewJSONHandler(&logBuffer, &slog.HandlerOptions{Level: slog.LevelError}))

	router := gin.New()
	router.Use(CorrelationID())
	router.Use(Recovery(testLogger))
	router.GET("/panic_test", func(c *gin.Context) {
		panic("test panic")
	})

	correlationID := uuid.New().String()
	req, _ := http.NewRequest(http.MethodGet, "/panic_test", nil)
	req.Header.Set(CorrelationIDHeader, correlationID)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var jsonResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &jsonResponse))
	errorField, ok := jsonResponse["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", errorField["code"])
	assert.Equal(t, correlationID, jsonResponse["correlation_id"])

	assert.Contains(t, logBuffer.String(), "Panic recovered")
	assert.Contains(t, logBuffer.String(), "test panic")
}
