package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"audio-weaver/internal/domain"
	apperrors "audio-weaver/pkg/errors"
)

const defaultSpeechURL = "https://translate.google.com/translate_tts"

// GoogleSpeech synthesizes speech through the Google Translate TTS
// endpoint. It accepts one chunk at a time and always returns MP3.
type GoogleSpeech struct {
	baseURL    string
	httpClient *http.Client
	logger     domain.Logger
}

// NewGoogleSpeech creates the default speech client
func NewGoogleSpeech(logger domain.Logger) *GoogleSpeech {
	return &GoogleSpeech{
		baseURL: defaultSpeechURL,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
		logger: logger,
	}
}

// Synthesize requests MP3 audio for a single chunk of text
func (c *GoogleSpeech) Synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error) {
	speed := "1"
	if slow {
		speed = "0.3"
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("q", text)
	q.Set("tl", lang)
	q.Set("ttsspeed", speed)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build speech request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewServiceError("speech service request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.NewServiceError(
			fmt.Sprintf("speech service returned %d", resp.StatusCode),
			fmt.Errorf("%s", strings.TrimSpace(string(body))),
		)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewServiceError("failed to read speech response", err)
	}
	if len(audio) == 0 {
		return nil, apperrors.NewServiceError("speech service returned no audio", nil)
	}

	c.logger.Debug("speech chunk synthesized", "lang", lang, "bytes", len(audio))
	return audio, nil
}
