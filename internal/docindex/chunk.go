package docindex

import "strings"

const (
	DefaultChunkSize    = 10000
	DefaultChunkOverlap = 1000
)

// SplitText cuts text into chunks of at most size runes with the given
// overlap between consecutive chunks. Cuts prefer the last paragraph,
// line, or word boundary inside the window so chunks stay readable.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = size / 10
		}
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		cut := boundary(runes[start:end])
		chunks = append(chunks, string(runes[start:start+cut]))

		next := start + cut - overlap
		if next <= start {
			next = start + cut
		}
		start = next
	}
	return chunks
}

// boundary returns the cut position inside window, preferring separators
// in descending order of strength.
func boundary(window []rune) int {
	s := string(window)
	for _, sep := range []string{"\n\n", "\n", " "} {
		if idx := strings.LastIndex(s, sep); idx > len(s)/2 {
			return len([]rune(s[:idx+len(sep)]))
		}
	}
	return len(window)
}
