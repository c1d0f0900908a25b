package grounding

import (
	"strings"

	"github.com/hyperjump/kaisetsu/internal/models"
)

// Evidence links one sentence to the chunks that support it.
type Evidence struct {
	// CitedChunks are chunk indices the backend itself asserted via
	// citations whose matched text overlaps the sentence. Authoritative.
	CitedChunks []int `json:"cited_chunks"`
	// SupportingChunks are chunk indices flagged by the lexical-overlap
	// fallback heuristic. Coarser than citations; used when citations are
	// absent or lack sentence-level granularity.
	SupportingChunks []int `json:"supporting_chunks"`
}

// LinkEvidence determines which snippets plausibly support a sentence and
// which citations explicitly reference it. All indices are bounded by
// len(snippets). Empty inputs yield empty results, never errors.
//
// The supporting-chunk check is a lexical-overlap heuristic, not semantic
// similarity: the sentence is tokenized on whitespace, words longer than
// cfg.MinWordLength characters are kept (a stop-word avoidance proxy), and a
// snippet supports the sentence when at least min(cfg.MinOverlap, words/2) of
// those words occur in it case-insensitively. Reimplementations must not
// silently upgrade this to embedding similarity; the thresholds are policy,
// the lexical nature is contract.
func LinkEvidence(sentence string, snippets []string, citations []models.Citation, cfg *Config) Evidence {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	ev := Evidence{CitedChunks: []int{}, SupportingChunks: []int{}}
	if sentence == "" {
		return ev
	}
	sentenceLower := strings.ToLower(sentence)

	for _, c := range citations {
		if c.ChunkIndex < 0 || c.ChunkIndex >= len(snippets) {
			continue
		}
		matched := strings.ToLower(strings.TrimSpace(c.MatchedText))
		if matched == "" {
			continue
		}
		// The backend may cite a fragment of the sentence or a passage
		// containing it; either direction counts.
		if strings.Contains(sentenceLower, matched) || strings.Contains(matched, sentenceLower) {
			ev.CitedChunks = append(ev.CitedChunks, c.ChunkIndex)
		}
	}

	words := overlapWords(sentenceLower, cfg.MinWordLength)
	if len(words) == 0 {
		return ev
	}
	threshold := float64(cfg.MinOverlap)
	if half := float64(len(words)) / 2; half < threshold {
		threshold = half
	}
	for i, snippet := range snippets {
		snippetLower := strings.ToLower(snippet)
		count := 0
		for _, w := range words {
			if strings.Contains(snippetLower, w) {
				count++
			}
		}
		if float64(count) >= threshold {
			ev.SupportingChunks = append(ev.SupportingChunks, i)
		}
	}
	return ev
}

// overlapWords returns the whitespace-delimited words of s strictly longer
// than minLen. Punctuation is not stripped; the heuristic is coarse on purpose.
func overlapWords(s string, minLen int) []string {
	fields := strings.Fields(s)
	words := fields[:0]
	for _, w := range fields {
		if len(w) > minLen {
			words = append(words, w)
		}
	}
	return words
}
