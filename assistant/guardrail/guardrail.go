// Package guardrail is the pre-flight content filter applied to every user
// message before any model or tool interaction.
package guardrail

import "strings"

// Result is the outcome of the check. A failed check is a normal
// short-circuit, not an error.
type Result struct {
	Passed  bool
	Message string
}

var denyList = []string{
	"politics",
	"religion",
	"medical advice",
}

const redirectMessage = "I can only assist with shopping-related queries."

// Check scans the raw user text case-insensitively against the deny list.
// Pure function; no side effects.
func Check(text string) Result {
	lowered := strings.ToLower(text)
	for _, topic := range denyList {
		if strings.Contains(lowered, topic) {
			return Result{Passed: false, Message: redirectMessage}
		}
	}
	return Result{Passed: true}
}
