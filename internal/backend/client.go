// Package backend is the HTTP client for the Explainable RAG backend. The
// backend owns all heavy computation (chunking, embedding, entity extraction,
// graph construction, answer generation); this client only moves requests and
// JSON shapes across the wire.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperjump/kaisetsu/internal/config"
	"github.com/hyperjump/kaisetsu/internal/models"
	"go.uber.org/zap"
)

// Client talks to the backend at a single base URL.
type Client struct {
	baseURL       string
	http          *http.Client
	uploadTimeout time.Duration
	queryTimeout  time.Duration
	pollInterval  time.Duration
	pollDeadline  time.Duration
	logger        *zap.Logger
}

// NewClient creates a client from config. The http.Client carries no global
// timeout; each operation applies its own via context.
func NewClient(cfg *config.BackendConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		http:          &http.Client{},
		uploadTimeout: time.Duration(cfg.UploadTimeoutSec) * time.Second,
		queryTimeout:  time.Duration(cfg.QueryTimeoutSec) * time.Second,
		pollInterval:  time.Duration(cfg.PollIntervalMs) * time.Millisecond,
		pollDeadline:  time.Duration(cfg.PollDeadlineSec) * time.Second,
		logger:        logger,
	}
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Upload sends the files as one multipart request and returns the backend's
// session/index identifier. Processing continues asynchronously on the
// backend; use WaitForReady to block until it finishes.
func (c *Client) Upload(ctx context.Context, paths []string) (*models.UploadResponse, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		part, err := writer.CreateFormFile("files", filepath.Base(path))
		if err == nil {
			_, err = io.Copy(part, f)
		}
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("add %s to upload: %w", path, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c.logger.Debug("uploading files", zap.Int("count", len(paths)))
	var resp models.UploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	return &resp, nil
}

// Status fetches the processing status of an upload session.
func (c *Client) Status(ctx context.Context, sessionID string) (*models.SessionStatus, error) {
	var status models.SessionStatus
	if err := c.getJSON(ctx, "/upload-status/"+url.PathEscape(sessionID), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// WaitForReady polls the session status until it reaches a terminal state.
// A 404 means the session is not registered yet and is retried silently; the
// poll deadline turns persistent 404s and slow processing into an error.
// Returns the final status on completion and an error when the session ends
// in an error status.
func (c *Client) WaitForReady(ctx context.Context, sessionID string) (*models.SessionStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, c.pollDeadline)
	defer cancel()
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		status, err := c.Status(ctx, sessionID)
		switch {
		case isNotFound(err):
			c.logger.Debug("session not registered yet", zap.String("session_id", sessionID))
		case err != nil:
			return nil, err
		case status.OverallStatus == models.StatusError:
			msg := status.ErrorMessage
			if msg == "" {
				msg = "processing failed"
			}
			return status, fmt.Errorf("upload session %s: %s", sessionID, msg)
		case status.Terminal():
			return status, nil
		default:
			c.logger.Debug("processing",
				zap.String("session_id", sessionID),
				zap.String("status", status.OverallStatus),
				zap.String("stage", status.CurrentStage),
			)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("upload session %s did not complete in time: %w", sessionID, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Query submits a query and returns the normalized result. The timeout is
// long because the backend runs retrieval and generation synchronously.
func (c *Client) Query(ctx context.Context, request *models.QueryRequest) (*models.QueryResult, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query-enhanced", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("submitting query", zap.String("query", request.Query), zap.Int("top_k", request.TopK))
	var result models.QueryResult
	if err := c.do(req, &result); err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	result.Query = request.Query
	result.Normalize()
	return &result, nil
}

// Export fetches a backend artifact export. dataType is one of chunks,
// entities, graph, or trace.
func (c *Client) Export(ctx context.Context, dataType, sessionID string) (*models.ExportData, error) {
	switch dataType {
	case "chunks", "entities", "graph", "trace":
	default:
		return nil, fmt.Errorf("unknown export type %q", dataType)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/export/"+dataType+"/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, err
	}
	var data models.ExportData
	if err := c.do(req, &data); err != nil {
		return nil, fmt.Errorf("export %s failed: %w", dataType, err)
	}
	return &data, nil
}

// PipelineVisualization fetches per-session pipeline stage metrics.
func (c *Client) PipelineVisualization(ctx context.Context, sessionID string) (map[string]any, error) {
	var stages map[string]any
	if err := c.getJSON(ctx, "/pipeline-visualization/"+url.PathEscape(sessionID), &stages); err != nil {
		return nil, fmt.Errorf("pipeline visualization failed: %w", err)
	}
	return stages, nil
}

// PipelineInfo fetches static pipeline stage descriptions.
func (c *Client) PipelineInfo(ctx context.Context) (map[string]any, error) {
	var info map[string]any
	if err := c.getJSON(ctx, "/pipeline-info", &info); err != nil {
		return nil, fmt.Errorf("pipeline info failed: %w", err)
	}
	return info, nil
}

// Clear asks the backend to discard the indexed document set.
func (c *Client) Clear(ctx context.Context, indexID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/clear?index_id="+url.QueryEscape(indexID), nil)
	if err != nil {
		return err
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// do executes the request and decodes a JSON response into out (skipped when
// out is nil). Non-2xx responses become a StatusError carrying the backend's
// detail message when one is present.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
