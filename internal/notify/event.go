// Package notify delivers goal events to interested listeners. The primary
// sink is a local WebSocket listener (the VR/3D scene process); deliveries are
// always best-effort and never surface as errors to the flows that emit them.
package notify

const (
	// TypeGoalComplete announces that a goal's running total first reached
	// its target.
	TypeGoalComplete = "goal_complete"

	// TypeScenario triggers a named demo scenario in the listener scene.
	TypeScenario = "scenario"
)

// GoalComplete is the wire message sent when a goal crosses its target.
// Prompt is a generated text-to-3D description the listener forwards to the
// model-generation service.
type GoalComplete struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// NewGoalComplete builds the completion message for a goal.
func NewGoalComplete(goalID, title string) GoalComplete {
	return GoalComplete{
		Type:   TypeGoalComplete,
		ID:     goalID,
		Name:   title,
		Prompt: BuildPrompt(title),
	}
}

// Scenario is the wire message for the manual demo trigger.
type Scenario struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// NewScenario builds a scenario trigger message.
func NewScenario(name string) Scenario {
	return Scenario{
		Type: TypeScenario,
		Name: name,
	}
}
