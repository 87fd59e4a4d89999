package service

import (
	"context"
	"strings"
	"testing"

	"audio-weaver/internal/domain"
	apperrors "audio-weaver/pkg/errors"
)

// Mock translator for testing
type MockTranslator struct {
	calls []struct{ text, source, target string }
	err   error
}

func (m *MockTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	m.calls = append(m.calls, struct{ text, source, target string }{text, sourceLang, targetLang})
	if m.err != nil {
		return "", m.err
	}
	return "translated:" + text, nil
}

// Mock synthesizer for testing
type MockSynthesizer struct {
	calls []struct {
		text   string
		lang   string
		slow   bool
		format domain.AudioFormat
	}
	err error
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text, lang string, slow bool, format domain.AudioFormat, progress domain.ProgressFunc) ([]byte, error) {
	m.calls = append(m.calls, struct {
		text   string
		lang   string
		slow   bool
		format domain.AudioFormat
	}{text, lang, slow, format})
	if m.err != nil {
		return nil, m.err
	}
	if progress != nil {
		progress(0.5, "Processing chunk 1/2...")
		progress(1.0, "Complete!")
	}
	return []byte("audio"), nil
}

func defaultSettings() domain.Settings {
	return domain.Settings{
		SourceLang: "en",
		TargetLang: "en",
		Speed:      domain.SpeedNormal,
		Format:     domain.FormatMP3,
	}
}

func TestGenerate_TooShortTextFails(t *testing.T) {
	translator := &MockTranslator{}
	synth := &MockSynthesizer{}
	pipeline := NewPipeline(translator, synth, NewMockServiceLogger())

	_, err := pipeline.Generate(context.Background(), "hi", defaultSettings(), nil)
	if err == nil {
		t.Fatal("expected error for too-short text")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(translator.calls) != 0 || len(synth.calls) != 0 {
		t.Fatal("expected no stage invocations")
	}
}

func TestGenerate_SameLanguageSkipsTranslation(t *testing.T) {
	translator := &MockTranslator{}
	synth := &MockSynthesizer{}
	pipeline := NewPipeline(translator, synth, NewMockServiceLogger())

	data, err := pipeline.Generate(context.Background(), "Hello world out there", defaultSettings(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "audio" {
		t.Fatalf("unexpected output %q", data)
	}
	if len(translator.calls) != 0 {
		t.Fatalf("expected no translation, got %d calls", len(translator.calls))
	}
	if len(synth.calls) != 1 {
		t.Fatalf("expected one synthesis, got %d", len(synth.calls))
	}
	if synth.calls[0].text != "Hello world out there" {
		t.Fatalf("synthesizer got wrong text %q", synth.calls[0].text)
	}
}

func TestGenerate_TranslatesThenSynthesizesInTargetLanguage(t *testing.T) {
	translator := &MockTranslator{}
	synth := &MockSynthesizer{}
	pipeline := NewPipeline(translator, synth, NewMockServiceLogger())

	settings := defaultSettings()
	settings.TargetLang = "es"
	settings.Speed = domain.SpeedSlow
	settings.Format = domain.FormatWAV

	_, err := pipeline.Generate(context.Background(), "Hello world out there", settings, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(translator.calls) != 1 {
		t.Fatalf("expected one translation, got %d", len(translator.calls))
	}
	call := translator.calls[0]
	if call.source != "en" || call.target != "es" {
		t.Fatalf("unexpected translation languages %s -> %s", call.source, call.target)
	}
	if len(synth.calls) != 1 {
		t.Fatalf("expected one synthesis, got %d", len(synth.calls))
	}
	if synth.calls[0].text != "translated:Hello world out there" {
		t.Fatalf("synthesizer did not receive translated text: %q", synth.calls[0].text)
	}
	if synth.calls[0].lang != "es" {
		t.Fatalf("expected synthesis in target language, got %q", synth.calls[0].lang)
	}
	if !synth.calls[0].slow || synth.calls[0].format != domain.FormatWAV {
		t.Fatal("speed/format settings not forwarded")
	}
}

func TestGenerate_TranslationFailureAbortsPipeline(t *testing.T) {
	svcErr := apperrors.NewServiceError("translation service returned 500", nil)
	translator := &MockTranslator{err: svcErr}
	synth := &MockSynthesizer{}
	pipeline := NewPipeline(translator, synth, NewMockServiceLogger())

	settings := defaultSettings()
	settings.TargetLang = "fr"

	_, err := pipeline.Generate(context.Background(), "Hello world out there", settings, nil)
	if err != svcErr {
		t.Fatalf("expected translation error propagated unmodified, got %v", err)
	}
	if len(synth.calls) != 0 {
		t.Fatal("expected no synthesis after translation failure")
	}
}

func TestGenerate_ProgressScaledAcrossStages(t *testing.T) {
	translator := &MockTranslator{}
	synth := &MockSynthesizer{}
	pipeline := NewPipeline(translator, synth, NewMockServiceLogger())

	settings := defaultSettings()
	settings.TargetLang = "pt"

	var records []progressRecord
	_, err := pipeline.Generate(context.Background(), "Hello world out there", settings, recordProgress(&records))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertMonotonic(t, records)
	last := records[len(records)-1]
	if last.fraction != 1.0 {
		t.Fatalf("expected terminal fraction 1.0, got %.2f", last.fraction)
	}
	// The synthesizer's 0.5 milestone lands inside the post-translation
	// sub-range, above the translation share.
	found := false
	for _, r := range records {
		if strings.Contains(r.message, "chunk") && r.fraction > translatePortion {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected synthesis progress scaled above %.2f, got %+v", translatePortion, records)
	}
}

func TestGenerate_AutoSourceWithEnglishTarget(t *testing.T) {
	translator := &MockTranslator{}
	synth := &MockSynthesizer{}
	pipeline := NewPipeline(translator, synth, NewMockServiceLogger())

	settings := defaultSettings()
	settings.SourceLang = domain.LanguageAuto

	text := "This application converts written documents into spoken audio for accessibility."
	_, err := pipeline.Generate(context.Background(), text, settings, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Whether detection resolves to English or is deemed unreliable,
	// an English target means no translation happens.
	if len(translator.calls) != 0 {
		t.Fatalf("expected no translation, got %d calls", len(translator.calls))
	}
	if len(synth.calls) != 1 {
		t.Fatalf("expected one synthesis, got %d", len(synth.calls))
	}
}
