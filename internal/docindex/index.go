package docindex

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/careercraft/careercraft/internal/interfaces"
)

const DefaultTopK = 4

// Entry pairs a text chunk with its embedding vector.
type Entry struct {
	Text   string    `json:"text"`
	Vector []float32 `json:"vector"`
}

// Index is the similarity index backing document Q&A. It lives in memory
// and persists to a JSON file between the ingest and query operations,
// like the original's local vector-store directory.
type Index struct {
	path     string
	embedder interfaces.Embedder
	logger   interfaces.Logger

	mu      sync.RWMutex
	entries []Entry
}

// NewIndex creates an index persisted at path. An existing file is loaded;
// a missing one starts empty.
func NewIndex(path string, embedder interfaces.Embedder, logger interfaces.Logger) (*Index, error) {
	idx := &Index{
		path:     path,
		embedder: embedder,
		logger:   logger,
	}
	if err := idx.load(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Ingest embeds the chunks and replaces the index content, then persists.
// Replacing (not appending) matches the original behavior of rebuilding
// the store on every upload.
func (idx *Index) Ingest(ctx context.Context, chunks []string) error {
	if len(chunks) == 0 {
		return fmt.Errorf("no text chunks to ingest")
	}

	entries := make([]Entry, 0, len(chunks))
	for _, chunk := range chunks {
		vector, err := idx.embedder.Embed(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk: %w", err)
		}
		entries = append(entries, Entry{Text: chunk, Vector: vector})
	}

	idx.mu.Lock()
	idx.entries = entries
	idx.mu.Unlock()

	return idx.save()
}

// Search embeds the query and returns the texts of the top-k most similar
// chunks by cosine similarity.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]string, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	idx.mu.RLock()
	empty := len(idx.entries) == 0
	idx.mu.RUnlock()
	if empty {
		return nil, fmt.Errorf("document index is empty: ingest a document first")
	}

	queryVec, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	type scored struct {
		text  string
		score float64
	}

	idx.mu.RLock()
	matches := make([]scored, 0, len(idx.entries))
	for _, entry := range idx.entries {
		matches = append(matches, scored{
			text:  entry.Text,
			score: cosineSimilarity(queryVec, entry.Vector),
		})
	}
	idx.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	if k > len(matches) {
		k = len(matches)
	}
	results := make([]string, 0, k)
	for _, m := range matches[:k] {
		results = append(results, m.text)
	}
	return results, nil
}

// Size returns the number of indexed chunks.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

func (idx *Index) load() error {
	data, err := os.ReadFile(idx.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read document index: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		idx.logger.Warn("document index is malformed, starting empty",
			"path", idx.path, "error", err)
		return nil
	}
	idx.entries = entries
	return nil
}

func (idx *Index) save() error {
	idx.mu.RLock()
	data, err := json.Marshal(idx.entries)
	idx.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode document index: %w", err)
	}

	dir := filepath.Dir(idx.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(idx.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp index file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp index file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp index file: %w", err)
	}
	if err := os.Rename(tmpName, idx.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace document index: %w", err)
	}
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return -1
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return -1
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
