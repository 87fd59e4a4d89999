package service

import (
	"context"
	"strings"

	"audio-weaver/internal/domain"
	apperrors "audio-weaver/pkg/errors"

	"github.com/abadojack/whatlanggo"
)

// TranslationService rewrites text between languages by splitting it
// into chunks sized to the translation service's per-request limit and
// translating them sequentially.
type TranslationService struct {
	client domain.TranslationClient
	logger domain.Logger
}

// NewTranslationService creates a new translation service
func NewTranslationService(client domain.TranslationClient, logger domain.Logger) *TranslationService {
	return &TranslationService{
		client: client,
		logger: logger,
	}
}

// Translate returns the input unchanged when source equals target, with
// no network call. Otherwise it translates fixed-size chunks in order
// and rejoins them with a single space. Chunk boundaries are positional,
// so a word split across a seam may be rejoined with a space in the
// middle. Known limitation.
func (t *TranslationService) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if sourceLang == targetLang {
		return text, nil
	}
	if strings.TrimSpace(text) == "" {
		return "", apperrors.NewValidationError("nothing to translate", domain.ErrEmptyText.Error())
	}

	chunks := splitChunks(text, translateChunkSize)
	t.logger.Debug("translating text", "chunks", len(chunks), "source", sourceLang, "target", targetLang)

	translated := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out, err := t.client.Translate(ctx, chunk, sourceLang, targetLang)
		if err != nil {
			t.logger.Error("chunk translation failed", err, "chunk", i+1, "total", len(chunks))
			return "", err
		}
		translated = append(translated, strings.TrimSpace(out))
	}

	result := strings.Join(translated, " ")
	if strings.TrimSpace(result) == "" {
		return "", apperrors.NewValidationError("translation produced no text", domain.ErrEmptyTranslation.Error())
	}
	return result, nil
}

// DetectLanguage guesses the ISO 639-1 code of text. The second return
// value is false when detection is not reliable enough to act on.
func DetectLanguage(text string) (string, bool) {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return "", false
	}
	code := info.Lang.Iso6391()
	if code == "" {
		return "", false
	}
	return code, true
}
