package interviewer

import (
	"context"
	"strconv"
	"strings"
)

// MockInterviewer answers deterministically by conversation turn: first it
// probes for specifics, then for guide rules, then keeps asking until the
// reviewer signals completion.
type MockInterviewer struct{}

func NewMockInterviewer() *MockInterviewer {
	return &MockInterviewer{}
}

func (m *MockInterviewer) Respond(_ context.Context, poem, _ string, history []Message, smeMessage string) (*Turn, error) {
	turn := countSMEMessages(history) + 1
	return mockTurn(poem, smeMessage, turn), nil
}

// ExtractAll replays the per-turn extraction over the stored transcript, for
// sessions whose items are pulled out after the call ends.
func (m *MockInterviewer) ExtractAll(_ context.Context, poem, _ string, history []Message) ([]Item, error) {
	var items []Item
	turn := 0
	for _, msg := range history {
		if msg.Role != RoleSME {
			continue
		}
		turn++
		items = append(items, mockTurn(poem, msg.Content, turn).ExtractedItems...)
	}
	return items, nil
}

func countSMEMessages(history []Message) int {
	n := 0
	for _, msg := range history {
		if msg.Role == RoleSME {
			n++
		}
	}
	return n
}

func mockTurn(poem, smeMessage string, turn int) *Turn {
	messageLower := strings.ToLower(smeMessage)

	switch {
	case turn == 1:
		var items []Item

		if containsAnyWord(messageLower, "line", "phrase", "word", "part", "section") {
			firstLine := "sample text"
			if lines := strings.Split(poem, "\n"); poem != "" && len(lines) > 0 {
				firstLine = lines[0]
			}
			start, end := 0, len(firstLine)
			items = append(items, Item{
				FeedbackType:    "inline_comment",
				Content:         "[Mock] SME mentioned: " + truncate(smeMessage, 50) + "...",
				HighlightedText: &firstLine,
				StartOffset:     &start,
				EndOffset:       &end,
				Confidence:      0.7,
			})
		}

		if containsAnyWord(messageLower, "overall", "general", "whole", "entire") {
			items = append(items, Item{
				FeedbackType: "overall",
				Content:      "[Mock] Overall observation: " + truncate(smeMessage, 100),
				Confidence:   0.8,
			})
		}

		return &Turn{
			FollowUpQuestion: "That's helpful! Can you tell me more specifically which parts of the poem stood out to you? Are there specific words or phrases that don't work?",
			ExtractedItems:   items,
			IsComplete:       false,
		}

	case turn == 2:
		var items []Item

		if strings.Contains(messageLower, "line") || strings.Contains(messageLower, "word") {
			lines := strings.Split(poem, "\n")
			if len(lines) > 1 {
				secondLine := lines[1]
				start := len(lines[0]) + 1 // +1 for the newline
				end := start + len(secondLine)
				items = append(items, Item{
					FeedbackType:    "inline_comment",
					Content:         "[Mock] Issue with this section: " + truncate(smeMessage, 50),
					HighlightedText: &secondLine,
					StartOffset:     &start,
					EndOffset:       &end,
					Confidence:      0.75,
				})
			}
		}

		if containsAnyWord(messageLower, "never", "don't", "avoid", "rule", "should") {
			items = append(items, Item{
				FeedbackType: "guide_suggestion",
				Content:      "[Mock] Suggested rule based on feedback: " + truncate(smeMessage, 80),
				Confidence:   0.8,
			})
		}

		return &Turn{
			FollowUpQuestion: "Good points. Based on what you're seeing, are there any rules you think should be added to the poetry guide to prevent similar issues in the future?",
			ExtractedItems:   items,
			IsComplete:       false,
		}

	default:
		var items []Item
		for rating := 1; rating <= 5; rating++ {
			if strings.Contains(smeMessage, strconv.Itoa(rating)) {
				items = append(items, Item{
					FeedbackType: "rating",
					Content:      "Rating: " + strconv.Itoa(rating) + "/5",
					Confidence:   0.9,
				})
				break
			}
		}

		if IsCompletionSignal(smeMessage) {
			return &Turn{
				FollowUpQuestion: "Thank you for your feedback! I've captured everything you mentioned. You can now review the summary and confirm which items to include.",
				ExtractedItems:   items,
				IsComplete:       true,
			}
		}

		questions := []string{
			"Is there anything else about this poem that concerns you?",
			"How would you rate this poem overall on a scale of 1-5?",
			"Any other thoughts or suggestions?",
			"What would you say is the main thing that needs improvement?",
		}
		idx := turn - 3
		if idx >= len(questions) {
			idx = len(questions) - 1
		}
		if idx < 0 {
			idx = 0
		}

		return &Turn{
			FollowUpQuestion: questions[idx],
			ExtractedItems:   items,
			IsComplete:       false,
		}
	}
}

func containsAnyWord(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
