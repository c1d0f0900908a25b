// Package export renders grounded query results as shareable reports and
// saves backend export artifacts to disk.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperjump/kaisetsu/internal/grounding"
	"github.com/hyperjump/kaisetsu/internal/models"
)

// Format is the output format for a report.
type Format string

const (
	// FormatJSON is structured JSON for machine consumption.
	FormatJSON Format = "json"
	// FormatMarkdown is a human-readable markdown document.
	FormatMarkdown Format = "markdown"
)

// Report is a self-contained rendering of a grounded answer.
type Report struct {
	Query       string             `json:"query"`
	Answer      string             `json:"answer"`
	Summary     string             `json:"summary,omitempty"`
	KeyPoints   []string           `json:"key_points,omitempty"`
	Confidence  float64            `json:"confidence_score"`
	Grounding   []grounding.Result `json:"grounding"`
	Entities    []models.Entity    `json:"entities"`
	Sources     []string           `json:"sources"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// BuildReport grounds the answer in result and assembles a report. A nil
// engine uses default grounding settings. A nil result yields an empty
// report, so callers reading archived entries with unreadable results still
// get output.
func BuildReport(result *models.QueryResult, eng *grounding.Engine) *Report {
	if eng == nil {
		eng = grounding.NewEngine(nil)
	}
	if result == nil {
		result = &models.QueryResult{}
	}
	result.Normalize()
	parsed := grounding.ParseAnswer(result.Answer)
	return &Report{
		Query:       result.Query,
		Answer:      parsed.Main,
		Summary:     parsed.Summary,
		KeyPoints:   parsed.KeyPoints,
		Confidence:  result.ConfidenceScore,
		Grounding:   eng.Ground(result),
		Entities:    result.Entities,
		Sources:     append([]string(nil), result.Snippets...),
		GeneratedAt: time.Now().UTC(),
	}
}

// Write renders the report to w in the given format.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatMarkdown:
		return r.writeMarkdown(w)
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// SaveArtifact writes a backend export payload to a file under dir, creating
// dir if needed. The backend's suggested filename is used when present.
// Returns the path written.
func SaveArtifact(dir string, data *models.ExportData) (string, error) {
	if data == nil {
		return "", fmt.Errorf("nil export data")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	name := data.Filename
	if name == "" {
		name = fmt.Sprintf("%s-%s.json", data.DataType, time.Now().UTC().Format("20060102-150405"))
	}
	name = filepath.Base(name)
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create artifact: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data.Content); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
