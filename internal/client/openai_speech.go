package client

import (
	"context"
	"io"

	"audio-weaver/internal/domain"
	apperrors "audio-weaver/pkg/errors"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAISpeech is an alternative speech backend using the OpenAI TTS
// endpoint. The voice reads the text in whatever language it is written
// in, so the lang parameter is not sent.
type OpenAISpeech struct {
	client *openai.Client
	voice  openai.SpeechVoice
	logger domain.Logger
}

// NewOpenAISpeech creates an OpenAI-backed speech client
func NewOpenAISpeech(apiKey string, logger domain.Logger) *OpenAISpeech {
	return &OpenAISpeech{
		client: openai.NewClient(apiKey),
		voice:  openai.VoiceAlloy,
		logger: logger,
	}
}

// Synthesize requests MP3 audio for a single chunk of text
func (c *OpenAISpeech) Synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error) {
	speed := 1.0
	if slow {
		speed = 0.7
	}

	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          c.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          speed,
	})
	if err != nil {
		return nil, apperrors.NewServiceError("speech service request failed", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, apperrors.NewServiceError("failed to read speech response", err)
	}
	if len(audio) == 0 {
		return nil, apperrors.NewServiceError("speech service returned no audio", nil)
	}

	c.logger.Debug("speech chunk synthesized", "backend", "openai", "bytes", len(audio))
	return audio, nil
}
