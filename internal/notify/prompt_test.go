package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("embeds the goal title", func(t *testing.T) {
		prompt := BuildPrompt("Trip to Japan")
		assert.Contains(t, prompt, "Trip to Japan")
		assert.Contains(t, prompt, "3D model")
	})

	t.Run("normalizes whitespace", func(t *testing.T) {
		prompt := BuildPrompt("  New   Mountain\tBike ")
		assert.Contains(t, prompt, "New Mountain Bike")
		assert.NotContains(t, prompt, "  ")
	})

	t.Run("falls back for empty titles", func(t *testing.T) {
		prompt := BuildPrompt("   ")
		assert.Contains(t, prompt, fallbackSubject)
	})
}

func TestNewGoalComplete(t *testing.T) {
	event := NewGoalComplete("goal-123", "Emergency Fund")

	assert.Equal(t, TypeGoalComplete, event.Type)
	assert.Equal(t, "goal-123", event.ID)
	assert.Equal(t, "Emergency Fund", event.Name)
	assert.True(t, strings.Contains(event.Prompt, "Emergency Fund"))
}

func TestNewScenario(t *testing.T) {
	event := NewScenario("compounding")

	assert.Equal(t, TypeScenario, event.Type)
	assert.Equal(t, "compounding", event.Name)
}
