package models

import "fmt"

// QueryRequest is the payload for submitting a query to the backend.
type QueryRequest struct {
	Query   string `json:"query"`
	IndexID string `json:"index_id,omitempty"`
	TopK    int    `json:"top_k,omitempty"`
}

// Validate ensures the query request has valid fields and sets defaults.
// Returns an error if the query is empty; otherwise clamps top_k to the
// backend's accepted range.
func (q *QueryRequest) Validate() error {
	if q.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	if q.TopK <= 0 {
		q.TopK = 5
	}
	if q.TopK > 20 {
		q.TopK = 20
	}
	return nil
}
