package poet

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSubject(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"Write a poem about a dog", "dog"},
		{"a poem about the rain", "rain"},
		{"poem about an old tree", "old"},
		{"cat", "cat"},
		{"", "moment"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractSubject(tt.prompt), "prompt: %q", tt.prompt)
	}
}

func TestGeneratePoemUsesSubject(t *testing.T) {
	p := NewMockPoet()

	poem, err := p.GeneratePoem(context.Background(), "Write a poem about a dog", "")
	require.NoError(t, err)

	assert.Contains(t, poem, "dog")
}

func TestGeneratePoemIsDeterministic(t *testing.T) {
	p := NewMockPoet()

	first, err := p.GeneratePoem(context.Background(), "Write a poem about a dog", "")
	require.NoError(t, err)
	second, err := p.GeneratePoem(context.Background(), "Write a poem about a dog", "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGeneratePoemActiveGuide(t *testing.T) {
	p := NewMockPoet()

	quiet, err := p.GeneratePoem(context.Background(), "a poem about a cat", "")
	require.NoError(t, err)
	active, err := p.GeneratePoem(context.Background(), "a poem about a cat", "Use active verbs throughout.")
	require.NoError(t, err)

	assert.NotEqual(t, quiet, active)
}

func TestGeneratePoemHonorsForbiddenWords(t *testing.T) {
	p := NewMockPoet()

	guide := `Never use the word "silence".`
	poem, err := p.GeneratePoem(context.Background(), "a poem about a bird", guide)
	require.NoError(t, err)

	assert.NotContains(t, strings.ToLower(poem), "silence")
}

func TestGuideForbiddenWords(t *testing.T) {
	guide := strings.ToLower("Never use the word \"heartbeats\".\nAvoid 'sacred' imagery.\nUse concrete detail.")

	forbidden := guideForbiddenWords(guide)

	_, hasHeartbeats := forbidden["heartbeats"]
	assert.True(t, hasHeartbeats)
	_, hasConcrete := forbidden["concrete"]
	assert.False(t, hasConcrete, "non-prohibition lines should not contribute words")
}
