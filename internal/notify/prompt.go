package notify

import (
	"fmt"
	"strings"
)

const fallbackSubject = "a savings goal trophy"

// BuildPrompt turns a goal title into a text-to-3D prompt suitable for the
// model-generation service. Titles are free-form user text, so the subject is
// normalized before being embedded in the template.
func BuildPrompt(title string) string {
	subject := strings.Join(strings.Fields(title), " ")
	if subject == "" {
		subject = fallbackSubject
	}

	return fmt.Sprintf("A realistic, highly detailed 3D model of %s, centered on a plain background, studio lighting", subject)
}
