package service

import (
	"context"
	"fmt"
	"strings"

	"audio-weaver/internal/domain"
	apperrors "audio-weaver/pkg/errors"
)

// Share of overall progress reserved for the translation stage when it runs
const translatePortion = 0.2

// Pipeline orchestrates one generation request: optional translation
// followed by speech synthesis. Fully sequential; any stage failure
// aborts with no partial output.
type Pipeline struct {
	translator  domain.Translator
	synthesizer domain.SpeechSynthesizer
	logger      domain.Logger
}

// NewPipeline creates a new generation pipeline
func NewPipeline(translator domain.Translator, synthesizer domain.SpeechSynthesizer, logger domain.Logger) *Pipeline {
	return &Pipeline{
		translator:  translator,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// Generate validates the input, translates it when source and target
// languages differ, then synthesizes speech in the target language.
// Progress for the two stages is scaled into adjacent sub-ranges so the
// reported fraction stays non-decreasing end to end.
func (p *Pipeline) Generate(ctx context.Context, text string, settings domain.Settings, progress domain.ProgressFunc) ([]byte, error) {
	if progress == nil {
		progress = func(float64, string) {}
	}
	if len([]rune(strings.TrimSpace(text))) < domain.MinTextLength {
		return nil, apperrors.NewValidationError(
			"please provide some text to convert",
			domain.ErrTextTooShort.Error(),
		)
	}
	if err := settings.Validate(); err != nil {
		return nil, apperrors.NewValidationError("invalid settings", err.Error())
	}

	sourceLang := settings.SourceLang
	if sourceLang == domain.LanguageAuto {
		detected, ok := DetectLanguage(text)
		if !ok {
			// Unreliable detection: skip translation rather than guess.
			p.logger.Warn("language detection unreliable, skipping translation")
			sourceLang = settings.TargetLang
		} else {
			p.logger.Info("detected source language", "lang", detected)
			sourceLang = detected
		}
	}

	synthOffset := 0.0
	if sourceLang != settings.TargetLang {
		progress(0.0, fmt.Sprintf("Translating %s -> %s...", sourceLang, settings.TargetLang))
		translated, err := p.translator.Translate(ctx, text, sourceLang, settings.TargetLang)
		if err != nil {
			return nil, err
		}
		text = translated
		synthOffset = translatePortion
		progress(translatePortion, "Translation complete")
	}

	scale := 1.0 - synthOffset
	offset := synthOffset
	return p.synthesizer.Synthesize(ctx, text, settings.TargetLang, settings.Slow(), settings.Format,
		func(fraction float64, message string) {
			progress(offset+scale*fraction, message)
		})
}
