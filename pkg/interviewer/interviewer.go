// Package interviewer drives the conversational feedback loop: it greets the
// reviewer with the poem, asks follow-up questions, and extracts structured
// feedback items from each exchange.
package interviewer

import (
	"context"
	"fmt"
	"strings"
)

const (
	RoleSME = "sme"
	RoleAI  = "ai"
)

// Item is one piece of structured feedback pulled out of the conversation.
// Offsets and highlighted text are set for inline comments only.
type Item struct {
	FeedbackType    string
	Content         string
	HighlightedText *string
	StartOffset     *int
	EndOffset       *int
	Confidence      float64
}

// Turn is the interviewer's reaction to one reviewer message.
type Turn struct {
	FollowUpQuestion string
	ExtractedItems   []Item
	IsComplete       bool
}

type Message struct {
	Role    string
	Content string
}

// Interviewer is stateless: callers replay the stored conversation history on
// every call. History passed to Respond excludes the new reviewer message.
type Interviewer interface {
	Respond(ctx context.Context, poem, guide string, history []Message, smeMessage string) (*Turn, error)
	ExtractAll(ctx context.Context, poem, guide string, history []Message) ([]Item, error)
}

var completionSignals = []string{
	"that's all", "i'm done", "nothing else", "that's it",
	"all done", "finished", "no more", "that's everything",
}

// IsCompletionSignal reports whether the reviewer indicated they are done.
func IsCompletionSignal(message string) bool {
	lower := strings.ToLower(message)
	for _, signal := range completionSignals {
		if strings.Contains(lower, signal) {
			return true
		}
	}
	return false
}

// InitialGreeting opens the session, embedding the poem under discussion.
func InitialGreeting(poem string) string {
	return fmt.Sprintf(`Hello! I'm here to help you provide feedback on this poem. Instead of filling out forms, let's just have a conversation about what you noticed.

I'll ask you questions to understand your thoughts, and I'll extract the specific feedback items as we talk. When we're done, you'll get a chance to review everything I've captured.

Here's the poem we'll be discussing:

%s

To start: What are your initial thoughts? What stands out to you most?`, poem)
}

// BuildSummary renders the captured items grouped by type for the reviewer
// to confirm.
func BuildSummary(items []Item) string {
	var inline, overall, guide, ratings []Item
	for _, item := range items {
		switch item.FeedbackType {
		case "inline_comment":
			inline = append(inline, item)
		case "overall":
			overall = append(overall, item)
		case "guide_suggestion":
			guide = append(guide, item)
		case "rating":
			ratings = append(ratings, item)
		}
	}

	var b strings.Builder
	b.WriteString("## Feedback Summary\n\n")

	if len(inline) > 0 {
		fmt.Fprintf(&b, "### Inline Comments (%d)\n", len(inline))
		for _, item := range inline {
			highlighted := "N/A"
			if item.HighlightedText != nil {
				highlighted = *item.HighlightedText
			}
			fmt.Fprintf(&b, "- On %q: %s\n", highlighted, item.Content)
		}
		b.WriteString("\n")
	}

	if len(overall) > 0 {
		fmt.Fprintf(&b, "### Overall Observations (%d)\n", len(overall))
		for _, item := range overall {
			fmt.Fprintf(&b, "- %s\n", item.Content)
		}
		b.WriteString("\n")
	}

	if len(guide) > 0 {
		fmt.Fprintf(&b, "### Guide Suggestions (%d)\n", len(guide))
		for _, item := range guide {
			fmt.Fprintf(&b, "- %s\n", item.Content)
		}
		b.WriteString("\n")
	}

	if len(ratings) > 0 {
		b.WriteString("### Rating\n")
		for _, item := range ratings {
			fmt.Fprintf(&b, "- %s\n", item.Content)
		}
	}

	return b.String()
}
