package models

// Session processing statuses reported by the backend. Polling stops on
// StatusCompleted or StatusError.
const (
	StatusIdle       = "idle"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// UploadResponse is the backend's acknowledgement of an upload request.
// IndexID identifies the uploaded-and-indexed document set for later queries.
type UploadResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	IndexID     string `json:"index_id"`
	ChunksCount int    `json:"chunks_count"`
}

// DocumentStatus is the per-document state within a processing session.
type DocumentStatus struct {
	Filename    string `json:"filename"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	ChunksCount int    `json:"chunks_count"`
	Error       string `json:"error,omitempty"`
}

// SessionStatus is the overall processing state of one upload session.
type SessionStatus struct {
	SessionID       string           `json:"session_id"`
	OverallStatus   string           `json:"overall_status"`
	CurrentStage    string           `json:"current_stage"`
	Documents       []DocumentStatus `json:"documents"`
	TotalChunks     int              `json:"total_chunks"`
	TotalEntities   int              `json:"total_entities"`
	TotalGraphEdges int              `json:"total_graph_edges"`
	ErrorMessage    string           `json:"error_message,omitempty"`
}

// Terminal reports whether the session has reached a terminal status.
func (s *SessionStatus) Terminal() bool {
	return s.OverallStatus == StatusCompleted || s.OverallStatus == StatusError
}

// ExportData is the backend's export payload for chunks, entities, graph, or trace.
type ExportData struct {
	DataType string         `json:"data_type"`
	Content  map[string]any `json:"content"`
	Filename string         `json:"filename"`
	Format   string         `json:"format"`
}
