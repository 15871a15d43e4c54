package interviewer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPoem = "The dog waits by the door.\nIts breath fogs the glass."

func TestMockInterviewerFirstTurnInline(t *testing.T) {
	m := NewMockInterviewer()

	turn, err := m.Respond(context.Background(), testPoem, "", nil, "the first line feels flat")
	require.NoError(t, err)

	assert.False(t, turn.IsComplete)
	require.Len(t, turn.ExtractedItems, 1)

	item := turn.ExtractedItems[0]
	assert.Equal(t, "inline_comment", item.FeedbackType)
	require.NotNil(t, item.HighlightedText)
	assert.Equal(t, "The dog waits by the door.", *item.HighlightedText)
	require.NotNil(t, item.StartOffset)
	require.NotNil(t, item.EndOffset)
	assert.Equal(t, 0, *item.StartOffset)
	assert.Equal(t, len("The dog waits by the door."), *item.EndOffset)
}

func TestMockInterviewerFirstTurnOverall(t *testing.T) {
	m := NewMockInterviewer()

	turn, err := m.Respond(context.Background(), testPoem, "", nil, "overall it lacks energy")
	require.NoError(t, err)

	require.Len(t, turn.ExtractedItems, 1)
	assert.Equal(t, "overall", turn.ExtractedItems[0].FeedbackType)
	assert.Nil(t, turn.ExtractedItems[0].HighlightedText)
}

func TestMockInterviewerSecondTurnGuideSuggestion(t *testing.T) {
	m := NewMockInterviewer()

	history := []Message{
		{Role: RoleAI, Content: "greeting"},
		{Role: RoleSME, Content: "overall it lacks energy"},
		{Role: RoleAI, Content: "follow-up"},
	}

	turn, err := m.Respond(context.Background(), testPoem, "", history, "never use passive verbs")
	require.NoError(t, err)

	require.Len(t, turn.ExtractedItems, 1)
	assert.Equal(t, "guide_suggestion", turn.ExtractedItems[0].FeedbackType)
	assert.False(t, turn.IsComplete)
}

func TestMockInterviewerSecondTurnLineTargetsSecondLine(t *testing.T) {
	m := NewMockInterviewer()

	history := []Message{
		{Role: RoleSME, Content: "first impressions"},
	}

	turn, err := m.Respond(context.Background(), testPoem, "", history, "the second line drags")
	require.NoError(t, err)

	require.Len(t, turn.ExtractedItems, 1)
	item := turn.ExtractedItems[0]
	require.NotNil(t, item.HighlightedText)
	assert.Equal(t, "Its breath fogs the glass.", *item.HighlightedText)
	require.NotNil(t, item.StartOffset)
	assert.Equal(t, len("The dog waits by the door.")+1, *item.StartOffset)
}

func TestMockInterviewerRatingAndCompletion(t *testing.T) {
	m := NewMockInterviewer()

	history := []Message{
		{Role: RoleSME, Content: "first"},
		{Role: RoleAI, Content: "q1"},
		{Role: RoleSME, Content: "second"},
		{Role: RoleAI, Content: "q2"},
	}

	turn, err := m.Respond(context.Background(), testPoem, "", history, "I'd say 4 out of 5, that's all")
	require.NoError(t, err)

	assert.True(t, turn.IsComplete)
	require.Len(t, turn.ExtractedItems, 1)
	assert.Equal(t, "rating", turn.ExtractedItems[0].FeedbackType)
	assert.Equal(t, "Rating: 4/5", turn.ExtractedItems[0].Content)
	assert.InDelta(t, 0.9, turn.ExtractedItems[0].Confidence, 0.001)
}

func TestMockInterviewerKeepsAskingUntilDone(t *testing.T) {
	m := NewMockInterviewer()

	history := []Message{
		{Role: RoleSME, Content: "first"},
		{Role: RoleSME, Content: "second"},
	}

	turn, err := m.Respond(context.Background(), testPoem, "", history, "hmm let me think")
	require.NoError(t, err)

	assert.False(t, turn.IsComplete)
	assert.NotEmpty(t, turn.FollowUpQuestion)
}

func TestMockInterviewerExtractAllReplaysTranscript(t *testing.T) {
	m := NewMockInterviewer()

	history := []Message{
		{Role: RoleAI, Content: "greeting"},
		{Role: RoleSME, Content: "the first line feels flat"},
		{Role: RoleAI, Content: "q1"},
		{Role: RoleSME, Content: "never use passive verbs"},
		{Role: RoleAI, Content: "q2"},
		{Role: RoleSME, Content: "4 out of 5, that's all"},
	}

	items, err := m.ExtractAll(context.Background(), testPoem, "", history)
	require.NoError(t, err)

	var types []string
	for _, item := range items {
		types = append(types, item.FeedbackType)
	}
	assert.Equal(t, []string{"inline_comment", "guide_suggestion", "rating"}, types)
}

func TestMockInterviewerExtractAllEmptyHistory(t *testing.T) {
	m := NewMockInterviewer()

	items, err := m.ExtractAll(context.Background(), testPoem, "", nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
