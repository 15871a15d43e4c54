package reviser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-poemreview-be/internal/pkg/apperr"
	"ai-poemreview-be/pkg/llm"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const reviserSystemPrompt = `You are a poetry revision specialist working with SME (Subject Matter Expert) feedback.

Your job is to:
1. REVISE THE POEM based on the SME's feedback - make REAL changes that address their concerns
2. PROPOSE GUIDE CHANGES that would prevent similar issues in future poems

CRITICAL INSTRUCTIONS:
- If the SME says "never use [word]" or "remove [word]" or "don't use [word]" - you MUST remove/replace that word in the revised poem
- If the SME criticizes something as "cliche" or "overused" - replace it with fresh language
- If the SME asks for more energy/active language - make verbs more active
- If the SME asks for more concrete/sensory details - add specific imagery
- The revised poem should be NOTICEABLY DIFFERENT from the original, addressing ALL feedback points
- Pay close attention to the EXACT words the SME mentions - if they say "never use heartbeats", the word "heartbeats" must NOT appear in your revision

For guide changes, extract rules like:
- "Never use the word X" if they said to avoid a word
- Style preferences they expressed
- Any recurring issues to prevent

You MUST respond in this EXACT JSON format (no markdown code blocks, just raw JSON):
{
    "revised_poem": "the complete revised poem with all feedback applied",
    "proposed_guide_changes": "markdown text with new rules to add to the guide, or null if none needed",
    "rationale": "explain each specific change you made and why"
}`

type revisionPayload struct {
	RevisedPoem          string  `json:"revised_poem"`
	ProposedGuideChanges *string `json:"proposed_guide_changes"`
	Rationale            string  `json:"rationale"`
}

// OpenAIReviser asks the chat API for a revision. A malformed response
// degrades to the original poem rather than failing the whole revision.
type OpenAIReviser struct {
	model string
	opts  []option.RequestOption
}

func NewOpenAIReviser(apiKey, model string) *OpenAIReviser {
	return &OpenAIReviser{
		model: model,
		opts:  []option.RequestOption{option.WithAPIKey(apiKey)},
	}
}

func (r *OpenAIReviser) Revise(ctx context.Context, originalPoem, overallFeedback string, comments []CommentInput, guide string) (*Result, error) {
	client := openai.NewClient(r.opts...)

	var commentsText strings.Builder
	if len(comments) > 0 {
		commentsText.WriteString("\n\n## Inline Comments from SME:\n")
		for _, c := range comments {
			commentsText.WriteString(fmt.Sprintf("- On the text %q: %s\n", c.HighlightedText, c.Comment))
		}
	}

	feedback := overallFeedback
	if feedback == "" {
		feedback = "No overall feedback provided"
	}

	userMessage := fmt.Sprintf(`## Current Poetry Guide:
%s

## Original Poem:
%s

## Overall SME Feedback:
%s
%s
Please revise the poem to address ALL the feedback, and propose any guide changes. Remember to respond with ONLY valid JSON.`,
		guide, originalPoem, feedback, commentsText.String())

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(r.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(reviserSystemPrompt),
			openai.UserMessage(userMessage),
		},
	})
	if err != nil {
		return nil, apperr.ExternalCapability("poem revision", err)
	}
	if len(resp.Choices) == 0 {
		return nil, apperr.ExternalCapability("poem revision", fmt.Errorf("empty choices"))
	}

	var payload revisionPayload
	if err := json.Unmarshal([]byte(llm.StripCodeFence(resp.Choices[0].Message.Content)), &payload); err != nil {
		return &Result{
			RevisedPoem:          originalPoem,
			ProposedGuideChanges: nil,
			Rationale:            fmt.Sprintf("Failed to parse AI response: %v", err),
		}, nil
	}

	if payload.RevisedPoem == "" {
		payload.RevisedPoem = originalPoem
	}
	if payload.Rationale == "" {
		payload.Rationale = "Changes applied based on SME feedback."
	}

	return &Result{
		RevisedPoem:          payload.RevisedPoem,
		ProposedGuideChanges: payload.ProposedGuideChanges,
		Rationale:            payload.Rationale,
	}, nil
}
