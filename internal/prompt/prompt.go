// Package prompt handles the summarizer system prompt and speech templates.
package prompt

import (
	"os"
	"strings"
)

// Summarizer returns the system prompt for summary generation. A custom
// prompt file can override the default via SUMMARIZER_PROMPT_PATH.
func Summarizer() string {
	if path := os.Getenv("SUMMARIZER_PROMPT_PATH"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if custom := strings.TrimSpace(string(data)); custom != "" {
				return custom
			}
		}
	}
	return GetDefault()
}
