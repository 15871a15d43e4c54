// Package llm holds response plumbing shared by the OpenAI-backed
// capability packages.
package llm

import "strings"

// StripCodeFence unwraps a JSON body the model wrapped in a markdown fence.
func StripCodeFence(text string) string {
	if i := strings.Index(text, "```json"); i != -1 {
		text = text[i+len("```json"):]
		if j := strings.Index(text, "```"); j != -1 {
			text = text[:j]
		}
	} else if i := strings.Index(text, "```"); i != -1 {
		text = text[i+len("```"):]
		if j := strings.Index(text, "```"); j != -1 {
			text = text[:j]
		}
	}
	return strings.TrimSpace(text)
}
