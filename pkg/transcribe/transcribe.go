// Package transcribe turns stored audio files into text.
package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"ai-poemreview-be/internal/pkg/apperr"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Transcriber interface {
	Transcribe(ctx context.Context, filePath string) (string, error)
}

// MockTranscriber returns a canned transcription naming the file, so the
// voice flow is exercisable without an API key.
type MockTranscriber struct{}

func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

func (t *MockTranscriber) Transcribe(_ context.Context, filePath string) (string, error) {
	if _, err := os.Stat(filePath); err != nil {
		return "", apperr.NotFound("audio file")
	}
	return fmt.Sprintf("[Mock transcription of %s] This is a sample transcription. In production, this would contain actual speech-to-text from OpenAI Whisper.", filepath.Base(filePath)), nil
}

// WhisperTranscriber calls the OpenAI audio transcription API.
type WhisperTranscriber struct {
	model string
	opts  []option.RequestOption
}

func NewWhisperTranscriber(apiKey, model string) *WhisperTranscriber {
	return &WhisperTranscriber{
		model: model,
		opts:  []option.RequestOption{option.WithAPIKey(apiKey)},
	}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperr.NotFound("audio file")
		}
		return "", apperr.ExternalCapability("audio transcription", err)
	}
	defer file.Close()

	client := openai.NewClient(t.opts...)
	resp, err := client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model:    openai.AudioModel(t.model),
		File:     file,
		Language: openai.String("en"),
	})
	if err != nil {
		return "", apperr.ExternalCapability("audio transcription", err)
	}
	return resp.Text, nil
}
