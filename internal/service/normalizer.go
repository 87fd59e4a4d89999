package service

import (
	"regexp"
	"strings"
)

// Normalization keeps word characters plus the punctuation the speech
// service pronounces sensibly; everything else becomes a space.
var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?;:'"-]`)
	spaceRun      = regexp.MustCompile(` +`)
)

// Normalize cleans text for speech synthesis: collapses whitespace runs,
// replaces disallowed characters with spaces, collapses the resulting
// space runs and trims. Total and idempotent; empty input yields "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = disallowed.ReplaceAllString(text, " ")
	text = spaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
