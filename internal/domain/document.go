package domain

// Document represents an uploaded PDF before extraction.
// The raw content is discarded once text has been pulled out.
type Document struct {
	Filename string
	Content  []byte
}

// ExtractedText is the result of pulling text out of a PDF:
// normalized text plus the total page count (including pages
// that yielded no text).
type ExtractedText struct {
	Text      string `json:"text"`
	PageCount int    `json:"page_count"`
	CharCount int    `json:"char_count"`
}
