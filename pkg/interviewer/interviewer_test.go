package interviewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCompletionSignal(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"That's all from me", true},
		{"I'm done", true},
		{"nothing else, thanks", true},
		{"ALL DONE", true},
		{"that's everything I noticed", true},
		{"the second line is weak", false},
		{"", false},
		{"I'm done... actually wait, one more thing", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCompletionSignal(tt.message), "message: %q", tt.message)
	}
}

func TestInitialGreetingEmbedsPoem(t *testing.T) {
	poem := "The dog waits by the door."
	greeting := InitialGreeting(poem)

	assert.Contains(t, greeting, poem)
	assert.Contains(t, greeting, "What are your initial thoughts?")
}

func TestBuildSummary(t *testing.T) {
	highlighted := "the door"
	items := []Item{
		{FeedbackType: "inline_comment", Content: "too static", HighlightedText: &highlighted},
		{FeedbackType: "overall", Content: "needs more energy"},
		{FeedbackType: "guide_suggestion", Content: "avoid passive verbs"},
		{FeedbackType: "rating", Content: "Rating: 3/5"},
	}

	summary := BuildSummary(items)

	assert.Contains(t, summary, "## Feedback Summary")
	assert.Contains(t, summary, "### Inline Comments (1)")
	assert.Contains(t, summary, `- On "the door": too static`)
	assert.Contains(t, summary, "### Overall Observations (1)")
	assert.Contains(t, summary, "- needs more energy")
	assert.Contains(t, summary, "### Guide Suggestions (1)")
	assert.Contains(t, summary, "### Rating")
	assert.Contains(t, summary, "- Rating: 3/5")
}

func TestBuildSummaryInlineWithoutHighlight(t *testing.T) {
	items := []Item{
		{FeedbackType: "inline_comment", Content: "unplaceable note"},
	}

	summary := BuildSummary(items)
	assert.Contains(t, summary, `- On "N/A": unplaceable note`)
}
