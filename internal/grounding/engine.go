package grounding

import (
	"strings"

	"github.com/hyperjump/kaisetsu/internal/models"
)

// Result is the grounding record for one answer sentence. Every sentence gets
// exactly one record, possibly with empty evidence.
type Result struct {
	Sentence         Sentence        `json:"sentence"`
	MatchedEntities  []models.Entity `json:"matched_entities"`
	CitedChunks      []int           `json:"cited_chunks"`
	SupportingChunks []int           `json:"supporting_chunks"`
	Confidence       float64         `json:"confidence"`
}

// Engine derives grounding records from a query result. It holds only
// configuration; Ground is pure and safe to call concurrently.
type Engine struct {
	cfg *Config
}

// NewEngine creates an engine. A nil cfg uses DefaultConfig.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg}
}

// Ground recomputes the grounding for the result's answer: the main answer
// text is segmented into sentences and each sentence is cross-referenced
// against the result's entities, snippets, and citations. The returned slice
// has one element per sentence. Confidence per sentence comes from the local
// entity-count formula; the backend's overall confidence_score is reported
// separately on the result itself.
func (e *Engine) Ground(result *models.QueryResult) []Result {
	if result == nil {
		return []Result{}
	}
	parsed := ParseAnswer(result.Answer)
	sentences := Segment(parsed.Main)

	results := make([]Result, 0, len(sentences))
	for _, s := range sentences {
		matched := MatchEntities(s.Text, result.Entities)
		if e.cfg.DedupeEntities {
			matched = DedupeEntities(matched)
		}
		ev := LinkEvidence(s.Text, result.Snippets, result.Citations, e.cfg)
		results = append(results, Result{
			Sentence:         s,
			MatchedEntities:  matched,
			CitedChunks:      ev.CitedChunks,
			SupportingChunks: ev.SupportingChunks,
			Confidence:       Score(len(matched)),
		})
	}
	return results
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.cfg
}

// BestSnippetForEntity returns the index of the first snippet that mentions
// the entity name (case-insensitive), or -1 when no snippet does. Retrieval
// rank is the snippet order, so the first mention is the best-ranked one.
func BestSnippetForEntity(entity models.Entity, snippets []string) int {
	if entity.Name == "" {
		return -1
	}
	nameLower := strings.ToLower(entity.Name)
	for i, snippet := range snippets {
		if strings.Contains(strings.ToLower(snippet), nameLower) {
			return i
		}
	}
	return -1
}
