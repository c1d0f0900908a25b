package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/kaisetsu/internal/config"
	"github.com/hyperjump/kaisetsu/internal/history"
	"github.com/hyperjump/kaisetsu/internal/models"
)

type stubBackend struct {
	queryResult *models.QueryResult
	queryErr    error
	uploadResp  *models.UploadResponse
	uploadErr   error
	status      *models.SessionStatus
	statusErr   error
	clearErr    error
	lastQuery   *models.QueryRequest
}

func (b *stubBackend) Query(_ context.Context, request *models.QueryRequest) (*models.QueryResult, error) {
	b.lastQuery = request
	return b.queryResult, b.queryErr
}

func (b *stubBackend) Status(context.Context, string) (*models.SessionStatus, error) {
	return b.status, b.statusErr
}

func (b *stubBackend) WaitForReady(context.Context, string) (*models.SessionStatus, error) {
	return b.status, b.statusErr
}

func (b *stubBackend) Upload(context.Context, []string) (*models.UploadResponse, error) {
	return b.uploadResp, b.uploadErr
}

func (b *stubBackend) Clear(context.Context, string) error {
	return b.clearErr
}

func newTestServer(t *testing.T, backend Backend) (*Server, *history.Archive) {
	t.Helper()
	dir := t.TempDir()
	archive, err := history.NewArchive(
		filepath.Join(dir, "history.db"),
		filepath.Join(dir, "history.bleve"),
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("NewArchive: %v", err)
	}
	t.Cleanup(func() { _ = archive.Close() })
	s := NewServer(backend, nil, archive, &config.ServerConfig{}, zap.NewNop())
	return s, archive
}

func sampleQueryResult() *models.QueryResult {
	return &models.QueryResult{
		Query:  "Who discovered radium?",
		Answer: "Marie Curie discovered radium.",
		Entities: []models.Entity{
			{Name: "Marie Curie", Type: "person"},
		},
		Snippets:        []string{"Marie Curie discovered radium in 1898."},
		ConfidenceScore: 0.8,
		Status:          "success",
	}
}

func TestHandleQuery(t *testing.T) {
	backend := &stubBackend{queryResult: sampleQueryResult()}
	s, archive := newTestServer(t, backend)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	body := `{"query": "Who discovered radium?", "top_k": 3}`
	resp, err := http.Post(ts.URL+"/api/v1/query", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var decoded queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Result == nil || decoded.Result.Query != "Who discovered radium?" {
		t.Errorf("result = %+v", decoded.Result)
	}
	if len(decoded.Grounding) != 1 {
		t.Errorf("grounding count = %d, want 1", len(decoded.Grounding))
	}
	if backend.lastQuery.TopK != 3 {
		t.Errorf("forwarded top_k = %d", backend.lastQuery.TopK)
	}

	count, err := archive.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("archive count = %d, want 1", count)
	}
}

func TestHandleQuery_badRequest(t *testing.T) {
	s, _ := newTestServer(t, &stubBackend{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"empty query", `{"query": ""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/v1/query", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestHandleQuery_backendError(t *testing.T) {
	backend := &stubBackend{queryErr: context.DeadlineExceeded}
	s, _ := newTestServer(t, backend)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/query", "application/json", strings.NewReader(`{"query": "x"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
}

func TestHandleUpload(t *testing.T) {
	backend := &stubBackend{uploadResp: &models.UploadResponse{Status: "processing", IndexID: "idx-1"}}
	s, _ := newTestServer(t, backend)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/upload", "application/json", strings.NewReader(`{"paths": ["/tmp/doc.txt"]}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}
	var decoded models.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.IndexID != "idx-1" {
		t.Errorf("index_id = %q", decoded.IndexID)
	}
}

func TestHandleUpload_noPaths(t *testing.T) {
	s, _ := newTestServer(t, &stubBackend{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/upload", "application/json", strings.NewReader(`{"paths": []}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleStatus(t *testing.T) {
	backend := &stubBackend{status: &models.SessionStatus{OverallStatus: models.StatusCompleted}}
	s, _ := newTestServer(t, backend)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/status/idx-1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var decoded models.SessionStatus
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.OverallStatus != models.StatusCompleted {
		t.Errorf("overall_status = %q", decoded.OverallStatus)
	}
}

func TestHandleUploadWait(t *testing.T) {
	backend := &stubBackend{status: &models.SessionStatus{OverallStatus: models.StatusCompleted, TotalChunks: 4}}
	s, _ := newTestServer(t, backend)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/upload-wait/idx-1", "application/json", bytes.NewReader(nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var decoded models.SessionStatus
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.TotalChunks != 4 {
		t.Errorf("total_chunks = %d", decoded.TotalChunks)
	}
}

func TestHandleHistoryList(t *testing.T) {
	backend := &stubBackend{queryResult: sampleQueryResult()}
	s, archive := newTestServer(t, backend)
	if _, err := archive.Record(context.Background(), sampleQueryResult()); err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/history")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var decoded struct {
		Entries []*history.Entry `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Entries) != 1 {
		t.Errorf("entries = %d, want 1", len(decoded.Entries))
	}
}

func TestHandleHistoryList_invalidLimit(t *testing.T) {
	s, _ := newTestServer(t, &stubBackend{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/history?limit=zero")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleHistoryGet_notFound(t *testing.T) {
	s, _ := newTestServer(t, &stubBackend{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/history/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestHandleHistorySearch_missingQuery(t *testing.T) {
	s, _ := newTestServer(t, &stubBackend{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/history/search")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleWatchDirectories_notEnabled(t *testing.T) {
	s, _ := newTestServer(t, &stubBackend{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/watch/directories")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", resp.StatusCode)
	}
}

func TestHandleClear(t *testing.T) {
	s, _ := newTestServer(t, &stubBackend{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/clear?index_id=idx-1", "application/json", bytes.NewReader(nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t, &stubBackend{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
