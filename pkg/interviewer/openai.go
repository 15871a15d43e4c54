package interviewer

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

const respondPromptFormat = `You are an expert poetry editor conducting a feedback session with a Subject Matter Expert (SME). Your goal is to extract structured feedback through natural conversation.

## The Poem Being Reviewed:
%s

## The Poetry Guide:
%s

## Your Behavior:
- Ask clarifying questions to understand specific issues
- Probe for WHY something doesn't work
- When they mention a specific part of the poem, ask them to elaborate
- Ask "what would make this better?" to get actionable suggestions
- If they mention guide violations, dig into what rule should be added
- Keep questions conversational and natural
- Don't repeat questions - build on what they've already said
- Recognize when they're done (e.g., "that's all", "I'm finished", "nothing else")

## Extraction Rules:
You must extract feedback items in these categories:

1. **inline_comment**: Specific critique of a section of the poem
   - Extract the EXACT text from the poem they're referring to
   - Calculate start_offset and end_offset (character positions in poem text)
   - Include their comment/critique

2. **overall**: General observations about the whole poem
   - Synthesize their overall impressions

3. **guide_suggestion**: New rules to add to the guide
   - Extract as specific rules (e.g., "Never use the word 'heartbeat'")

4. **rating**: Numeric rating (1-5)
   - Only extract if they give a clear numeric rating

## CRITICAL: Text Offset Calculation
When extracting inline comments:
- Find the EXACT highlighted_text in the poem
- Calculate start_offset: number of characters from start of poem to start of highlighted text
- Calculate end_offset: start_offset + length of highlighted text
- If you can't find exact match, try case-insensitive
- If still no match, set offsets to null

## Response Format:
You MUST respond with ONLY valid JSON (no markdown code blocks):
{
    "follow_up_question": "Your next question to the SME, or a summary if complete",
    "extracted_items": [
        {
            "feedback_type": "inline_comment|overall|guide_suggestion|rating",
            "content": "The feedback content or comment",
            "highlighted_text": "exact text from poem (inline_comment only)",
            "start_offset": 123,
            "end_offset": 145,
            "confidence": 0.9
        }
    ],
    "is_complete": false
}

## Conversation So Far:
%s

Based on this exchange, extract any feedback items and formulate your next question.`

const extractAllPromptFormat = `You are an expert poetry editor. You have just finished a voice feedback session with a Subject Matter Expert (SME). Your task is to extract ALL structured feedback items from the complete conversation transcript.

## The Poem Being Reviewed:
%s

## The Poetry Guide:
%s

## Extraction Rules:
Extract feedback items in these categories:

1. **inline_comment**: Specific critique of a section of the poem
2. **overall**: General observations about the whole poem
3. **guide_suggestion**: New rules to add to the guide
4. **rating**: Numeric rating (1-5), only if clearly given

## CRITICAL: Text Offset Calculation
When extracting inline comments:
- Find the EXACT highlighted_text in the poem
- Calculate start_offset: number of characters from start of poem to start of highlighted text
- Calculate end_offset: start_offset + length of highlighted text
- If you can't find exact match, try case-insensitive
- If still no match, set offsets to null

## Complete Conversation Transcript:
%s

## Response Format:
You MUST respond with ONLY valid JSON (no markdown code blocks):
{
    "extracted_items": [
        {
            "feedback_type": "inline_comment|overall|guide_suggestion|rating",
            "content": "The feedback content or comment",
            "highlighted_text": "exact text from poem (inline_comment only)",
            "start_offset": 123,
            "end_offset": 145,
            "confidence": 0.9
        }
    ]
}

Extract every piece of actionable feedback from the conversation. Be thorough.`

type itemPayload struct {
	FeedbackType    string  `json:"feedback_type"`
	Content         string  `json:"content"`
	HighlightedText *string `json:"highlighted_text"`
	StartOffset     *int    `json:"start_offset"`
	EndOffset       *int    `json:"end_offset"`
	Confidence      float64 `json:"confidence"`
}

type turnPayload struct {
	FollowUpQuestion string        `json:"follow_up_question"`
	ExtractedItems   []itemPayload `json:"extracted_items"`
	IsComplete       bool          `json:"is_complete"`
}

// OpenAIInterviewer conducts the conversation through the chat API. A
// malformed model response degrades to a generic follow-up question instead
// of failing the exchange.
type OpenAIInterviewer struct {
	model string
	opts  []option.RequestOption
}

func NewOpenAIInterviewer(apiKey, model string) *OpenAIInterviewer {
	return &OpenAIInterviewer{
		model: model,
		opts:  []option.RequestOption{option.WithAPIKey(apiKey)},
	}
}

func (o *OpenAIInterviewer) Respond(ctx context.Context, poem, guide string, history []Message, smeMessage string) (*Turn, error) {
	transcript := renderTranscript(append(append([]Message{}, history...), Message{Role: RoleSME, Content: smeMessage}))
	prompt := fmt.Sprintf(respondPromptFormat, poem, guide, transcript)

	text, err := o.complete(ctx, prompt)
	if err != nil {
		return nil, apperr.ExternalCapability("interview response", err)
	}

	var payload turnPayload
	if err := json.Unmarshal([]byte(llm.StripCodeFence(text)), &payload); err != nil {
		return &Turn{
			FollowUpQuestion: "Could you elaborate on that?",
			ExtractedItems:   nil,
			IsComplete:       false,
		}, nil
	}
	if payload.FollowUpQuestion == "" {
		payload.FollowUpQuestion = "Could you tell me more?"
	}

	return &Turn{
		FollowUpQuestion: payload.FollowUpQuestion,
		ExtractedItems:   toItems(payload.ExtractedItems),
		IsComplete:       payload.IsComplete,
	}, nil
}

func (o *OpenAIInterviewer) ExtractAll(ctx context.Context, poem, guide string, history []Message) ([]Item, error) {
	if len(history) == 0 {
		return nil, nil
	}

	prompt := fmt.Sprintf(extractAllPromptFormat, poem, guide, renderTranscript(history))

	text, err := o.complete(ctx, prompt)
	if err != nil {
		return nil, apperr.ExternalCapability("feedback extraction", err)
	}

	var payload turnPayload
	if err := json.Unmarshal([]byte(llm.StripCodeFence(text)), &payload); err != nil {
		return nil, nil
	}
	return toItems(payload.ExtractedItems), nil
}

func (o *OpenAIInterviewer) complete(ctx context.Context, systemPrompt string) (string, error) {
	client := openai.NewClient(o.opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func renderTranscript(history []Message) string {
	var lines []string
	for _, msg := range history {
		speaker := "AI"
		if msg.Role == RoleSME {
			speaker = "SME"
		}
		lines = append(lines, speaker+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

func toItems(payloads []itemPayload) []Item {
	var items []Item
	for _, p := range payloads {
		items = append(items, Item{
			FeedbackType:    p.FeedbackType,
			Content:         p.Content,
			HighlightedText: p.HighlightedText,
			StartOffset:     p.StartOffset,
			EndOffset:       p.EndOffset,
			Confidence:      p.Confidence,
		})
	}
	return items
}
