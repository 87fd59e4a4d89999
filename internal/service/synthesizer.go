package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"audio-weaver/internal/domain"
	apperrors "audio-weaver/pkg/errors"

	"github.com/google/uuid"
)

// Progress fractions for the post-synthesis milestones. Per-chunk
// synthesis progress is scaled below combineProgress so the reported
// fraction never decreases.
const (
	synthesisPortion = 0.9
	combineProgress  = 0.95
	convertProgress  = 0.97
)

// Synthesizer converts text into audio by chunking it to the speech
// service's request limit, synthesizing each chunk in order and
// stitching the results together with the media tool.
type Synthesizer struct {
	speech domain.SpeechClient
	media  domain.MediaProcessor
	logger domain.Logger
}

// NewSynthesizer creates a new speech synthesizer
func NewSynthesizer(speech domain.SpeechClient, media domain.MediaProcessor, logger domain.Logger) *Synthesizer {
	return &Synthesizer{
		speech: speech,
		media:  media,
		logger: logger,
	}
}

// Synthesize runs the chunked synthesis pipeline. All intermediate
// files live in a request-scoped temporary directory that is removed on
// every exit path. Returns the final audio bytes in the requested format.
func (s *Synthesizer) Synthesize(ctx context.Context, text, lang string, slow bool, format domain.AudioFormat, progress domain.ProgressFunc) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("nothing to synthesize", domain.ErrEmptyText.Error())
	}
	if progress == nil {
		progress = func(float64, string) {}
	}

	workDir, err := os.MkdirTemp("", "audio-weaver-")
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create working directory", err)
	}
	defer os.RemoveAll(workDir)

	chunks := splitChunks(text, speechChunkSize)
	total := len(chunks)
	s.logger.Info("synthesizing text", "chunks", total, "lang", lang, "slow", slow, "format", format)

	chunkFiles := make([]string, 0, total)
	for i, chunk := range chunks {
		progress(synthesisPortion*float64(i+1)/float64(total), fmt.Sprintf("Processing chunk %d/%d...", i+1, total))

		audio, err := s.speech.Synthesize(ctx, chunk, lang, slow)
		if err != nil {
			s.logger.Error("chunk synthesis failed", err, "chunk", i+1, "total", total)
			return nil, err
		}

		path := filepath.Join(workDir, fmt.Sprintf("chunk_%03d_%s.mp3", i, uuid.NewString()))
		if err := os.WriteFile(path, audio, 0o644); err != nil {
			return nil, apperrors.NewInternalError("failed to write audio chunk", err)
		}
		if err := verifyFile(path); err != nil {
			return nil, err
		}
		chunkFiles = append(chunkFiles, path)
	}

	combined := chunkFiles[0]
	if len(chunkFiles) > 1 {
		progress(combineProgress, "Combining audio...")
		combined = filepath.Join(workDir, "combined.mp3")
		if err := s.media.Concat(ctx, chunkFiles, combined); err != nil {
			return nil, err
		}
	}

	final := combined
	if format != domain.FormatMP3 {
		progress(convertProgress, fmt.Sprintf("Converting to %s...", format))
		final = filepath.Join(workDir, "output."+string(format))
		if err := s.media.Transcode(ctx, combined, final); err != nil {
			return nil, err
		}
	}

	if err := verifyFile(final); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(final)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read generated audio", err)
	}

	progress(1.0, "Complete!")
	return data, nil
}

// verifyFile fails when an expected pipeline file is missing or empty
func verifyFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return apperrors.NewIntegrityError("expected audio file is missing", path)
	}
	if info.Size() == 0 {
		return apperrors.NewIntegrityError("expected audio file is empty", path)
	}
	return nil
}
