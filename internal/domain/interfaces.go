package domain

import (
	"context"
	"time"
)

// ProgressFunc receives pipeline progress as a non-decreasing fraction
// in [0,1] plus a human-readable status message. Invoked synchronously.
type ProgressFunc func(fraction float64, message string)

// TextExtractor pulls normalized text and a page count out of PDF bytes
type TextExtractor interface {
	Extract(pdfBytes []byte) (*ExtractedText, error)
}

// TranslationClient translates a single chunk of text.
// Chunk sizing is the caller's responsibility.
type TranslationClient interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Translator rewrites text from a source language to a target language
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// SpeechClient converts one chunk of text into native-format (MP3) audio bytes
type SpeechClient interface {
	Synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error)
}

// SpeechSynthesizer converts arbitrary-length text into audio in the
// requested container format
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, lang string, slow bool, format AudioFormat, progress ProgressFunc) ([]byte, error)
}

// MediaProcessor wraps the external media tool. Failures carry the
// tool's diagnostic output.
type MediaProcessor interface {
	// Concat joins the input files, in order, into output (same codec)
	Concat(ctx context.Context, inputs []string, output string) error
	// Transcode converts input into the container/codec implied by
	// output's extension
	Transcode(ctx context.Context, input, output string) error
}

// AudioPipeline runs translation (when needed) followed by synthesis
type AudioPipeline interface {
	Generate(ctx context.Context, text string, settings Settings, progress ProgressFunc) ([]byte, error)
}

// AudioStore persists generated audio for later download
type AudioStore interface {
	Save(data []byte, filename string) (string, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetMaxFileSize() int64
	GetOutputPath() string
	GetOutputTTL() time.Duration
	GetCleanupSchedule() string
	GetSpeechBackend() string
	GetOpenAIKey() string
}
