package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audio-weaver/internal/domain"
	apperrors "audio-weaver/pkg/errors"
)

// Mock speech client for testing
type MockSpeechClient struct {
	chunks []string
	langs  []string
	err    error
}

func (m *MockSpeechClient) Synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error) {
	m.chunks = append(m.chunks, text)
	m.langs = append(m.langs, lang)
	if m.err != nil {
		return nil, m.err
	}
	return []byte("mp3:" + text[:min(4, len(text))]), nil
}

// Mock media processor for testing. Concat and Transcode write real
// output files so the synthesizer's integrity checks pass.
type MockMediaProcessor struct {
	concatInputs  [][]string
	transcodeIn   []string
	concatErr     error
	transcodeErr  error
}

func (m *MockMediaProcessor) Concat(ctx context.Context, inputs []string, output string) error {
	m.concatInputs = append(m.concatInputs, append([]string(nil), inputs...))
	if m.concatErr != nil {
		return m.concatErr
	}
	var data []byte
	for _, in := range inputs {
		b, err := os.ReadFile(in)
		if err != nil {
			return err
		}
		data = append(data, b...)
	}
	return os.WriteFile(output, data, 0o644)
}

func (m *MockMediaProcessor) Transcode(ctx context.Context, input, output string) error {
	m.transcodeIn = append(m.transcodeIn, input)
	if m.transcodeErr != nil {
		return m.transcodeErr
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	return os.WriteFile(output, data, 0o644)
}

type progressRecord struct {
	fraction float64
	message  string
}

func recordProgress(records *[]progressRecord) domain.ProgressFunc {
	return func(fraction float64, message string) {
		*records = append(*records, progressRecord{fraction, message})
	}
}

func assertMonotonic(t *testing.T, records []progressRecord) {
	t.Helper()
	prev := -1.0
	for _, r := range records {
		if r.fraction < prev {
			t.Fatalf("progress went backwards: %.3f after %.3f (%s)", r.fraction, prev, r.message)
		}
		if r.fraction < 0 || r.fraction > 1 {
			t.Fatalf("progress fraction out of range: %.3f", r.fraction)
		}
		prev = r.fraction
	}
}

func TestSynthesize_WhitespaceOnlyFailsBeforeServiceCall(t *testing.T) {
	speech := &MockSpeechClient{}
	media := &MockMediaProcessor{}
	synth := NewSynthesizer(speech, media, NewMockServiceLogger())

	_, err := synth.Synthesize(context.Background(), "  \n ", "en", false, domain.FormatMP3, nil)
	if err == nil {
		t.Fatal("expected error for whitespace-only input")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(speech.chunks) != 0 {
		t.Fatalf("expected no speech calls, got %d", len(speech.chunks))
	}
}

func TestSynthesize_SingleChunkSkipsConcat(t *testing.T) {
	speech := &MockSpeechClient{}
	media := &MockMediaProcessor{}
	synth := NewSynthesizer(speech, media, NewMockServiceLogger())

	var records []progressRecord
	data, err := synth.Synthesize(context.Background(), "Hello world", "en", false, domain.FormatMP3, recordProgress(&records))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(speech.chunks) != 1 {
		t.Fatalf("expected 1 speech call, got %d", len(speech.chunks))
	}
	if len(media.concatInputs) != 0 {
		t.Fatalf("expected no concat call, got %d", len(media.concatInputs))
	}
	if len(media.transcodeIn) != 0 {
		t.Fatalf("expected no transcode call, got %d", len(media.transcodeIn))
	}
	if string(data) != "mp3:Hell" {
		t.Fatalf("unexpected audio bytes %q", data)
	}

	assertMonotonic(t, records)
	last := records[len(records)-1]
	if last.fraction != 1.0 || last.message != "Complete!" {
		t.Fatalf("expected terminal (1.0, Complete!), got (%.2f, %s)", last.fraction, last.message)
	}
}

func TestSynthesize_ThreeChunksConcatThenTranscode(t *testing.T) {
	speech := &MockSpeechClient{}
	media := &MockMediaProcessor{}
	synth := NewSynthesizer(speech, media, NewMockServiceLogger())

	text := strings.Repeat("a", 12000)
	var records []progressRecord
	data, err := synth.Synthesize(context.Background(), text, "en", true, domain.FormatWAV, recordProgress(&records))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(speech.chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(speech.chunks))
	}
	if strings.Join(speech.chunks, "") != text {
		t.Fatal("chunks do not reconstruct the input text")
	}
	if len(media.concatInputs) != 1 {
		t.Fatalf("expected one concat invocation, got %d", len(media.concatInputs))
	}
	if len(media.concatInputs[0]) != 3 {
		t.Fatalf("expected a 3-entry manifest, got %d", len(media.concatInputs[0]))
	}
	// File names carry the chunk index so ordering is checkable.
	for i, path := range media.concatInputs[0] {
		if !strings.Contains(filepath.Base(path), "chunk_00"+string(rune('0'+i))) {
			t.Fatalf("concat input %d out of order: %s", i, path)
		}
	}
	if len(media.transcodeIn) != 1 {
		t.Fatalf("expected one transcode invocation for wav, got %d", len(media.transcodeIn))
	}
	if len(data) == 0 {
		t.Fatal("expected audio bytes")
	}

	assertMonotonic(t, records)
	sawCombining := false
	sawConverting := false
	for _, r := range records {
		if strings.Contains(r.message, "Combining") {
			sawCombining = true
		}
		if strings.Contains(r.message, "Converting") {
			sawConverting = true
		}
	}
	if !sawCombining || !sawConverting {
		t.Fatalf("expected combining and converting milestones, got %+v", records)
	}
}

func TestSynthesize_MP3OutputSkipsTranscode(t *testing.T) {
	speech := &MockSpeechClient{}
	media := &MockMediaProcessor{}
	synth := NewSynthesizer(speech, media, NewMockServiceLogger())

	text := strings.Repeat("b", 10001)
	_, err := synth.Synthesize(context.Background(), text, "pt", false, domain.FormatMP3, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(media.concatInputs) != 1 {
		t.Fatalf("expected one concat invocation, got %d", len(media.concatInputs))
	}
	if len(media.transcodeIn) != 0 {
		t.Fatalf("expected no transcode for mp3 output, got %d", len(media.transcodeIn))
	}
}

func TestSynthesize_ToolFailureCleansWorkDir(t *testing.T) {
	toolErr := apperrors.NewToolError("ffmpeg exited with an error", "concat failed: boom", nil)
	speech := &MockSpeechClient{}
	media := &MockMediaProcessor{concatErr: toolErr}
	synth := NewSynthesizer(speech, media, NewMockServiceLogger())

	text := strings.Repeat("c", 12000)
	_, err := synth.Synthesize(context.Background(), text, "en", false, domain.FormatMP3, nil)
	if err != toolErr {
		t.Fatalf("expected tool error propagated unmodified, got %v", err)
	}
	if !strings.Contains(err.Error(), "concat failed: boom") {
		t.Fatalf("expected diagnostic text in error, got %v", err)
	}

	// The scoped working directory must be gone even though the
	// pipeline failed.
	workDir := filepath.Dir(media.concatInputs[0][0])
	if _, statErr := os.Stat(workDir); !os.IsNotExist(statErr) {
		t.Fatalf("expected working directory %s to be removed", workDir)
	}
}

func TestSynthesize_SpeechFailureCleansWorkDir(t *testing.T) {
	svcErr := apperrors.NewServiceError("speech service returned 429", nil)
	speech := &MockSpeechClient{err: svcErr}
	media := &MockMediaProcessor{}
	synth := NewSynthesizer(speech, media, NewMockServiceLogger())

	_, err := synth.Synthesize(context.Background(), "Hello world", "en", false, domain.FormatMP3, nil)
	if err != svcErr {
		t.Fatalf("expected service error propagated unmodified, got %v", err)
	}
}
