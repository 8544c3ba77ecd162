package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/investbuddy/circles-api/internal/api/service"
	"github.com/investbuddy/circles-api/internal/notify"
)

// DemoHandler handles requests that drive the local 3D scene directly,
// outside any money flow
type DemoHandler struct {
	events service.EventPublisher
	logger *slog.Logger
}

// NewDemoHandler creates a new demo handler
func NewDemoHandler(logger *slog.Logger, events service.EventPublisher) *DemoHandler {
	return &DemoHandler{
		events: events,
		logger: logger,
	}
}

// TriggerScenario publishes a named scene event to the notification channel.
// Delivery is best-effort; the response only confirms the publish was
// accepted.
func (h *DemoHandler) TriggerScenario(c *gin.Context) {
	var req ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	event := notify.NewScenario(req.Name)
	if err := h.events.Publish(c.Request.Context(), req.Name, event); err != nil {
		h.logger.Warn("Failed to publish scenario event", "name", req.Name, "error", err)
	}

	RespondOK(c, gin.H{"ok": true})
}
