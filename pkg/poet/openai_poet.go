package poet

import (
	"context"
	"fmt"
	"strings"

	"ai-poemreview-be/internal/pkg/apperr"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const poetSystemPromptFormat = `You are a poet. Generate poems following this guide EXACTLY:

%s

CRITICAL RULES:
1. Follow ALL rules in the guide, especially any "never use" or "avoid" instructions
2. If the guide says to never use a word, DO NOT use that word under any circumstances
3. Apply all style guidance from the guide
4. Generate only the poem itself - no titles, no explanations, no meta-commentary
5. Keep poems concise (6-12 lines typically)`

// OpenAIPoet generates poems through the chat completions API.
type OpenAIPoet struct {
	model string
	opts  []option.RequestOption
}

func NewOpenAIPoet(apiKey, model string) *OpenAIPoet {
	return &OpenAIPoet{
		model: model,
		opts:  []option.RequestOption{option.WithAPIKey(apiKey)},
	}
}

func (p *OpenAIPoet) GeneratePoem(ctx context.Context, prompt, guide string) (string, error) {
	client := openai.NewClient(p.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(poetSystemPromptFormat, guide)),
			openai.UserMessage("Write a poem about: " + prompt),
		},
	})
	if err != nil {
		return "", apperr.ExternalCapability("poem generation", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperr.ExternalCapability("poem generation", fmt.Errorf("empty choices"))
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
