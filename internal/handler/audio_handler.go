// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"audio-weaver/internal/domain"
	"audio-weaver/internal/service"
	apperrors "audio-weaver/pkg/errors"
)

// AudioHandler handles extraction and generation requests
type AudioHandler struct {
	pipeline    domain.AudioPipeline
	extractor   domain.TextExtractor
	store       domain.AudioStore
	maxFileSize int64
	logger      domain.Logger
}

// NewAudioHandler creates a new audio handler
func NewAudioHandler(pipeline domain.AudioPipeline, extractor domain.TextExtractor, store domain.AudioStore, maxFileSize int64, logger domain.Logger) *AudioHandler {
	return &AudioHandler{
		pipeline:    pipeline,
		extractor:   extractor,
		store:       store,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// ExtractDocument handles PDF upload and returns the extracted text
// without generating audio
func (h *AudioHandler) ExtractDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	extracted, _, err := h.extractUpload(r)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, extracted)
}

// GenerateAudio runs the full pipeline: PDF or pasted text in, audio
// bytes out as a download
func (h *AudioHandler) GenerateAudio(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	settings, err := h.parseSettings(r)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	var text string
	baseName := "text_audio"
	if hasUpload(r) {
		extracted, filename, eerr := h.extractUpload(r)
		if eerr != nil {
			h.writeAppError(w, eerr)
			return
		}
		text = extracted.Text
		baseName = strings.TrimSuffix(filename, filepath.Ext(filename))
	} else {
		text = service.Normalize(r.FormValue("text"))
	}

	progress := func(fraction float64, message string) {
		h.logger.Debug("generation progress", "fraction", fmt.Sprintf("%.2f", fraction), "message", message)
	}

	data, err := h.pipeline.Generate(r.Context(), text, settings, progress)
	if err != nil {
		h.logger.Error("audio generation failed", err)
		h.writeAppError(w, err)
		return
	}

	if settings.SourceLang != settings.TargetLang {
		baseName += "_" + settings.TargetLang
	}
	filename := baseName + "." + string(settings.Format)

	if _, serr := h.store.Save(data, filename); serr != nil {
		h.logger.Warn("failed to store generated audio", "filename", filename, "error", serr)
	}

	audio := domain.Audio{Data: data, Format: settings.Format, Filename: filename}
	w.Header().Set("Content-Type", audio.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// hasUpload reports whether the parsed form carries a "file" part
func hasUpload(r *http.Request) bool {
	return r.MultipartForm != nil && len(r.MultipartForm.File["file"]) > 0
}

// extractUpload reads the "file" form part and runs extraction.
// Returns the extracted text and the sanitized original filename.
func (h *AudioHandler) extractUpload(r *http.Request) (*domain.ExtractedText, string, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", apperrors.NewValidationError("File is required")
	}
	defer file.Close()

	originalName := strings.TrimSpace(filepath.Base(header.Filename))
	if originalName == "" || originalName == "." {
		originalName = "document.pdf"
	}
	if strings.ToLower(filepath.Ext(originalName)) != ".pdf" {
		return nil, "", apperrors.NewValidationError("Unsupported file type. Only PDF (.pdf) is accepted.")
	}
	if header.Size > h.maxFileSize {
		return nil, "", apperrors.NewValidationError(
			fmt.Sprintf("File too large. Maximum size is %dMB.", h.maxFileSize>>20))
	}

	pdfBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to read upload", err)
	}
	doc := domain.Document{Filename: originalName, Content: pdfBytes}

	extracted, err := h.extractor.Extract(doc.Content)
	if err != nil {
		return nil, "", err
	}
	return extracted, doc.Filename, nil
}

// parseSettings builds Settings from form values with app defaults
func (h *AudioHandler) parseSettings(r *http.Request) (domain.Settings, error) {
	target, err := domain.NormalizeLanguage(r.FormValue("target_lang"))
	if err != nil {
		return domain.Settings{}, apperrors.NewValidationError("invalid settings", err.Error())
	}
	if target == "" {
		target = "en"
	}

	source, err := domain.NormalizeLanguage(r.FormValue("source_lang"))
	if err != nil {
		return domain.Settings{}, apperrors.NewValidationError("invalid settings", err.Error())
	}
	if source == "" {
		// No source language means no translation.
		source = target
	}

	speed := domain.Speed(strings.ToLower(r.FormValue("speed")))
	if speed == "" {
		speed = domain.SpeedNormal
	}
	format := domain.AudioFormat(strings.ToLower(r.FormValue("format")))
	if format == "" {
		format = domain.FormatMP3
	}

	settings := domain.Settings{
		SourceLang: source,
		TargetLang: target,
		Speed:      speed,
		Format:     format,
	}
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, apperrors.NewValidationError("invalid settings", err.Error())
	}
	return settings, nil
}

// writeAppError maps pipeline errors onto HTTP statuses
func (h *AudioHandler) writeAppError(w http.ResponseWriter, err error) {
	h.writeError(w, apperrors.GetStatusCode(err), err.Error())
}

// writeError writes an error response
func (h *AudioHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a JSON response
func (h *AudioHandler) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
