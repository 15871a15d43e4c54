package reviser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMechanicalReviserForbiddenWordInOverall(t *testing.T) {
	r := NewMechanicalReviser()

	poem := "Two heartbeats in the hallway,\ncounting out the hours."
	result, err := r.Revise(context.Background(), poem, "Never use the word 'heartbeats'.", nil, "")
	require.NoError(t, err)

	assert.NotContains(t, strings.ToLower(result.RevisedPoem), "heartbeats")
	assert.Contains(t, result.RevisedPoem, "breaths")

	require.NotNil(t, result.ProposedGuideChanges)
	assert.Contains(t, *result.ProposedGuideChanges, "## SME Feedback Rules")
	assert.Contains(t, *result.ProposedGuideChanges, `- Never use the word "heartbeats"`)

	assert.Contains(t, result.Rationale, "Based on SME feedback")
}

func TestMechanicalReviserForbiddenWordInComment(t *testing.T) {
	r := NewMechanicalReviser()

	poem := "A quiet dog waits by the door."
	comments := []CommentInput{
		{HighlightedText: "quiet dog", Comment: "avoid quiet"},
	}

	result, err := r.Revise(context.Background(), poem, "", comments, "")
	require.NoError(t, err)

	assert.NotContains(t, strings.ToLower(result.RevisedPoem), "quiet")
	assert.Contains(t, result.RevisedPoem, "still")
}

func TestMechanicalReviserChangeTo(t *testing.T) {
	r := NewMechanicalReviser()

	poem := "The lamp hums in the corner."
	comments := []CommentInput{
		{HighlightedText: "The lamp", Comment: "change this to 'glow'"},
	}

	result, err := r.Revise(context.Background(), poem, "", comments, "")
	require.NoError(t, err)

	assert.Equal(t, "glow hums in the corner.", result.RevisedPoem)
	assert.Contains(t, result.Rationale, "Changed 'The lamp'")
}

func TestMechanicalReviserEnergy(t *testing.T) {
	r := NewMechanicalReviser()

	poem := "quiet water under the bridge"
	comments := []CommentInput{
		{HighlightedText: "quiet water", Comment: "this needs more energy"},
	}

	result, err := r.Revise(context.Background(), poem, "", comments, "")
	require.NoError(t, err)

	assert.Equal(t, "intent water under the bridge", result.RevisedPoem)
	require.NotNil(t, result.ProposedGuideChanges)
	assert.Contains(t, *result.ProposedGuideChanges, "- Use active verbs and dynamic imagery")
}

func TestMechanicalReviserGuideRulesDeduped(t *testing.T) {
	r := NewMechanicalReviser()

	poem := "quiet water, still air, nothing moves"
	comments := []CommentInput{
		{HighlightedText: "quiet water", Comment: "more energy here"},
		{HighlightedText: "still air", Comment: "needs more energy too"},
	}

	result, err := r.Revise(context.Background(), poem, "", comments, "")
	require.NoError(t, err)
	require.NotNil(t, result.ProposedGuideChanges)

	count := strings.Count(*result.ProposedGuideChanges, "- Use active verbs and dynamic imagery")
	assert.Equal(t, 1, count, "duplicate guide rules should collapse")
}

func TestMechanicalReviserBrevity(t *testing.T) {
	r := NewMechanicalReviser()

	poem := "one\ntwo\nthree\nfour\nfive\nsix\nseven\neight"
	result, err := r.Revise(context.Background(), poem, "Make it shorter please.", nil, "")
	require.NoError(t, err)

	lines := strings.Split(result.RevisedPoem, "\n")
	assert.Len(t, lines, 6)
	assert.Contains(t, result.Rationale, "Trimmed poem for conciseness")
	require.NotNil(t, result.ProposedGuideChanges)
	assert.Contains(t, *result.ProposedGuideChanges, "- Prefer brevity")
}

func TestMechanicalReviserNoApplicableFeedback(t *testing.T) {
	r := NewMechanicalReviser()

	poem := "The dog waits by the door."
	result, err := r.Revise(context.Background(), poem, "", nil, "")
	require.NoError(t, err)

	assert.Equal(t, poem, result.RevisedPoem)
	assert.Nil(t, result.ProposedGuideChanges)
	assert.Contains(t, result.Rationale, "no direct changes could be applied")
}

func TestMechanicalReviserIsDeterministic(t *testing.T) {
	r := NewMechanicalReviser()

	poem := "Two heartbeats in the quiet hallway."
	overall := "Never use the word 'heartbeats'. More energy overall."
	comments := []CommentInput{
		{HighlightedText: "quiet hallway", Comment: "needs more energy"},
	}

	first, err := r.Revise(context.Background(), poem, overall, comments, "")
	require.NoError(t, err)
	second, err := r.Revise(context.Background(), poem, overall, comments, "")
	require.NoError(t, err)

	assert.Equal(t, first.RevisedPoem, second.RevisedPoem)
	assert.Equal(t, first.Rationale, second.Rationale)
	require.NotNil(t, first.ProposedGuideChanges)
	require.NotNil(t, second.ProposedGuideChanges)
	assert.Equal(t, *first.ProposedGuideChanges, *second.ProposedGuideChanges)
}
