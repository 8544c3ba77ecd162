package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/investbuddy/circles-api/internal/notify"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, key string, event interface{}) error {
	args := m.Called(ctx, key, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestDemoHandler_TriggerScenario(t *testing.T) {
	logger := newHandlerLogger()

	newRouter := func(events *MockEventPublisher) *gin.Engine {
		handler := NewDemoHandler(logger, events)
		router := setupTestRouter()
		router.POST("/demo/scenario", handler.TriggerScenario)
		return router
	}

	t.Run("publishes the named scene", func(t *testing.T) {
		events := new(MockEventPublisher)
		events.On("Publish", mock.Anything, "compounding", notify.NewScenario("compounding")).Return(nil).Once()

		req, _ := http.NewRequest(http.MethodPost, "/demo/scenario", bytes.NewBufferString(`{"name": "compounding"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		newRouter(events).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		events.AssertExpectations(t)
	})

	t.Run("publish failure still returns ok", func(t *testing.T) {
		events := new(MockEventPublisher)
		events.On("Publish", mock.Anything, "compounding", mock.Anything).Return(assert.AnError).Once()

		req, _ := http.NewRequest(http.MethodPost, "/demo/scenario", bytes.NewBufferString(`{"name": "compounding"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		newRouter(events).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		events := new(MockEventPublisher)

		req, _ := http.NewRequest(http.MethodPost, "/demo/scenario", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		newRouter(events).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}
