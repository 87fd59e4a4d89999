package domain

import "errors"

// Domain errors
var (
	ErrEmptyText        = errors.New("text is empty")
	ErrTextTooShort     = errors.New("text is too short to convert")
	ErrEmptyTranslation = errors.New("translation produced no text")
	ErrInvalidFile      = errors.New("invalid file")
)

// MinTextLength is the minimum number of characters accepted for
// audio generation
const MinTextLength = 10
