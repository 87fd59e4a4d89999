package service

// Request-size limits of the external services. Independent thresholds;
// the translation service accepts less per call than the speech service.
const (
	translateChunkSize = 4500
	speechChunkSize    = 5000
)

// splitChunks slices text into positional chunks of at most size runes.
// Boundaries are not sentence- or word-aware; concatenating the chunks
// reconstructs the input exactly.
func splitChunks(text string, size int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
