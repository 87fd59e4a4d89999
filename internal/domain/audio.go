package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// AudioFormat is the container format of generated audio
type AudioFormat string

const (
	// FormatMP3 is the native format produced by the speech service
	FormatMP3 AudioFormat = "mp3"
	FormatWAV AudioFormat = "wav"
)

// Speed controls the speaking rate
type Speed string

const (
	SpeedNormal Speed = "normal"
	SpeedSlow   Speed = "slow"
)

// LanguageAuto asks the pipeline to detect the source language
const LanguageAuto = "auto"

// SupportedLanguages is the fixed set exposed by the UI
var SupportedLanguages = []string{"en", "pt", "ja", "fr", "es"}

// Audio is a generated audio artifact
type Audio struct {
	Data     []byte
	Format   AudioFormat
	Filename string
}

// ContentType returns the MIME type for the audio format
func (a Audio) ContentType() string {
	if a.Format == FormatWAV {
		return "audio/wav"
	}
	return "audio/mpeg"
}

// Settings holds the user-chosen options for one generation request.
// Immutable for the duration of the request.
type Settings struct {
	SourceLang string
	TargetLang string
	Speed      Speed
	Format     AudioFormat
}

// Validate checks languages, speed and format against the supported sets
func (s Settings) Validate() error {
	if s.SourceLang != LanguageAuto {
		if err := validateLanguage(s.SourceLang); err != nil {
			return fmt.Errorf("source language: %w", err)
		}
	}
	if err := validateLanguage(s.TargetLang); err != nil {
		return fmt.Errorf("target language: %w", err)
	}
	switch s.Speed {
	case SpeedNormal, SpeedSlow:
	default:
		return fmt.Errorf("unsupported speed %q", s.Speed)
	}
	switch s.Format {
	case FormatMP3, FormatWAV:
	default:
		return fmt.Errorf("unsupported output format %q", s.Format)
	}
	return nil
}

// Slow reports whether slow speech was requested
func (s Settings) Slow() bool {
	return s.Speed == SpeedSlow
}

// NormalizeLanguage canonicalizes a user-provided language code
// ("EN", "en-US") to its base ISO 639-1 form ("en").
func NormalizeLanguage(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == LanguageAuto {
		return code, nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("invalid language code %q", code)
	}
	base, _ := tag.Base()
	return base.String(), nil
}

func validateLanguage(code string) error {
	for _, lang := range SupportedLanguages {
		if code == lang {
			return nil
		}
	}
	return fmt.Errorf("unsupported language %q", code)
}
