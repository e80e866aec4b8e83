// Package matcher implements Tier 1: nearest-neighbor lookup of the user
// query against a curated, pre-vetted Q&A dataset.
package matcher

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"bfsi-assistant-be/pkg/embedding"
)

// CuratedEntry is one (instruction, output) pair from the curated dataset.
type CuratedEntry struct {
	Instruction string `json:"instruction"`
	Output      string `json:"output"`
}

// Matcher holds the curated set and its precomputed instruction embeddings.
// Built once at startup and never mutated afterwards, so it is safe for
// concurrent reads.
type Matcher struct {
	entries    []CuratedEntry
	embeddings [][]float32
	threshold  float64
	provider   embedding.EmbeddingProvider
	logger     *log.Logger
}

// New loads the dataset from disk and embeds every instruction up front.
// The embedding cost is paid once per process; per-query search is a linear
// scan over the set, which is intentional for a bounded curated set.
func New(datasetPath string, provider embedding.EmbeddingProvider, threshold float64, logger *log.Logger) (*Matcher, error) {
	raw, err := os.ReadFile(datasetPath)
	if err != nil {
		return nil, fmt.Errorf("read curated dataset: %w", err)
	}

	var entries []CuratedEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse curated dataset: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("curated dataset %s is empty", datasetPath)
	}

	embeddings := make([][]float32, len(entries))
	for i, entry := range entries {
		resp, err := provider.Generate(entry.Instruction, embedding.TaskTypeDocument)
		if err != nil {
			return nil, fmt.Errorf("embed curated instruction %d: %w", i, err)
		}
		embeddings[i] = resp.Embedding.Values
	}

	logger.Printf("[MATCHER] Loaded %d curated entries from %s", len(entries), datasetPath)

	return &Matcher{
		entries:    entries,
		embeddings: embeddings,
		threshold:  threshold,
		provider:   provider,
		logger:     logger,
	}, nil
}

// Threshold returns the configured match threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Size returns the number of curated entries.
func (m *Matcher) Size() int {
	return len(m.entries)
}

// Search embeds the query and returns the best curated answer if its cosine
// similarity reaches the threshold. The score is returned on a miss too,
// for observability. Ties on the top score resolve to the lowest index,
// i.e. the first occurrence in the dataset.
func (m *Matcher) Search(query string) (answer string, found bool, score float64, err error) {
	resp, err := m.provider.Generate(query, embedding.TaskTypeQuery)
	if err != nil {
		return "", false, 0, fmt.Errorf("embed query: %w", err)
	}
	queryEmb := resp.Embedding.Values

	bestIdx := 0
	bestScore := -1.0
	for i, emb := range m.embeddings {
		// Vectors are normalized by the provider, so dot product is
		// cosine similarity.
		s := dot(emb, queryEmb)
		if s > bestScore {
			bestScore = s
			bestIdx = i
		}
	}

	if bestScore >= m.threshold {
		return m.entries[bestIdx].Output, true, bestScore, nil
	}
	return "", false, bestScore, nil
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
