package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"audio-weaver/internal/domain"
	apperrors "audio-weaver/pkg/errors"
)

const defaultTranslateURL = "https://translate.googleapis.com/translate_a/single"

// GoogleTranslate translates one chunk of text at a time through the
// public Google Translate endpoint.
type GoogleTranslate struct {
	baseURL    string
	httpClient *http.Client
	logger     domain.Logger
}

// NewGoogleTranslate creates the default translation client
func NewGoogleTranslate(logger domain.Logger) *GoogleTranslate {
	return &GoogleTranslate{
		baseURL: defaultTranslateURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// Translate translates a single chunk from sourceLang to targetLang
func (c *GoogleTranslate) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", sourceLang)
	q.Set("tl", targetLang)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", apperrors.NewInternalError("failed to build translation request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewServiceError("translation service request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", apperrors.NewServiceError(
			fmt.Sprintf("translation service returned %d", resp.StatusCode),
			fmt.Errorf("%s", strings.TrimSpace(string(body))),
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewServiceError("failed to read translation response", err)
	}

	translated, err := decodeTranslation(body)
	if err != nil {
		return "", apperrors.NewServiceError("failed to decode translation response", err)
	}

	c.logger.Debug("chunk translated", "source", sourceLang, "target", targetLang, "chars", len(translated))
	return translated, nil
}

// decodeTranslation unpacks the endpoint's nested-array payload:
// [[["<translated>","<original>",...],...],...]
func decodeTranslation(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translation payload")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(segment[0], &part); err != nil {
			continue
		}
		sb.WriteString(part)
	}
	return sb.String(), nil
}
