package config

import (
	"audio-weaver/internal/client"
	"audio-weaver/internal/domain"
	"audio-weaver/internal/jobs"
	"audio-weaver/internal/media"
	"audio-weaver/internal/service"
	"audio-weaver/internal/storage"
	"audio-weaver/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config      domain.Config
	Logger      domain.Logger
	Extractor   domain.TextExtractor
	Translator  domain.Translator
	Synthesizer domain.SpeechSynthesizer
	Pipeline    domain.AudioPipeline
	Store       domain.AudioStore
	Janitor     *jobs.Janitor
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	cfg := NewConfig()
	appLogger := logger.NewLogger(cfg.GetLogLevel())

	extractor := service.NewPDFExtractor(appLogger)
	translator := service.NewTranslationService(client.NewGoogleTranslate(appLogger), appLogger)

	var speech domain.SpeechClient
	if cfg.GetSpeechBackend() == "openai" && cfg.GetOpenAIKey() != "" {
		speech = client.NewOpenAISpeech(cfg.GetOpenAIKey(), appLogger)
	} else {
		speech = client.NewGoogleSpeech(appLogger)
	}

	ffmpeg := media.NewFFmpeg(appLogger)
	synthesizer := service.NewSynthesizer(speech, ffmpeg, appLogger)
	pipeline := service.NewPipeline(translator, synthesizer, appLogger)

	store := storage.NewFileStore(cfg.GetOutputPath())
	janitor := jobs.NewJanitor(cfg.GetOutputPath(), cfg.GetOutputTTL(), cfg.GetCleanupSchedule(), appLogger)

	return &Container{
		Config:      cfg,
		Logger:      appLogger,
		Extractor:   extractor,
		Translator:  translator,
		Synthesizer: synthesizer,
		Pipeline:    pipeline,
		Store:       store,
		Janitor:     janitor,
	}
}
