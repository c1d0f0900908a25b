// Package models defines core data structures for queries, backend results, and grounding.
package models

// Entity is a named entity extracted by the backend (person, place, concept, etc.).
// Identity is the name compared case-insensitively; there is no unique ID.
type Entity struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	SourceChunkID *int   `json:"source_chunk_id,omitempty"`
}

// Relationship is a backend-extracted relation between two entities.
type Relationship struct {
	FromEntity string `json:"from_entity"`
	ToEntity   string `json:"to_entity"`
	Relation   string `json:"relation"`
}

// Citation is the backend's own claim that a specific chunk supports part of
// the answer. Authoritative when present; the client's lexical evidence linker
// is only a fallback for sentence-level granularity.
type Citation struct {
	ChunkIndex     int     `json:"chunk_index"`
	ChunkText      string  `json:"chunk_text,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
	MatchedText    string  `json:"matched_text,omitempty"`
}

// ChunkReference is per-chunk provenance metadata, positionally aligned with
// the snippets slice.
type ChunkReference struct {
	Index          int     `json:"index"`
	Filename       string  `json:"filename"`
	RelevanceScore float64 `json:"relevance_score"`
}

// GraphNode is a node in the backend's knowledge graph payload.
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type,omitempty"`
}

// GraphEdge is an edge in the backend's knowledge graph payload.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// GraphData is the knowledge graph returned alongside an answer.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// QueryResult is the backend's response to one query. It replaces the previous
// result wholesale on each query; it is never merged or incrementally mutated.
type QueryResult struct {
	Query               string           `json:"query,omitempty"`
	Answer              string           `json:"answer"`
	Entities            []Entity         `json:"entities"`
	Relationships       []Relationship   `json:"relationships"`
	Snippets            []string         `json:"snippets"`
	Citations           []Citation       `json:"citations"`
	ChunkReferences     []ChunkReference `json:"chunk_references"`
	RetrievalScores     []float64        `json:"retrieval_scores"`
	UnsupportedSegments []string         `json:"unsupported_segments"`
	ConfidenceScore     float64          `json:"confidence_score"`
	Graph               *GraphData       `json:"graph_data,omitempty"`
	Status              string           `json:"status,omitempty"`
}

// Normalize replaces nil slice fields with empty slices so consumers can
// iterate without presence checks. Malformed-but-well-typed responses degrade
// to "no evidence found" rather than failing.
func (r *QueryResult) Normalize() {
	if r.Entities == nil {
		r.Entities = []Entity{}
	}
	if r.Relationships == nil {
		r.Relationships = []Relationship{}
	}
	if r.Snippets == nil {
		r.Snippets = []string{}
	}
	if r.Citations == nil {
		r.Citations = []Citation{}
	}
	if r.ChunkReferences == nil {
		r.ChunkReferences = []ChunkReference{}
	}
	if r.RetrievalScores == nil {
		r.RetrievalScores = []float64{}
	}
	if r.UnsupportedSegments == nil {
		r.UnsupportedSegments = []string{}
	}
	if r.ConfidenceScore < 0 {
		r.ConfidenceScore = 0
	}
	if r.ConfidenceScore > 1 {
		r.ConfidenceScore = 1
	}
}
