// Package cli provides terminal output for Kaisetsu.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/hyperjump/kaisetsu/internal/export"
	"github.com/hyperjump/kaisetsu/internal/history"
	"github.com/hyperjump/kaisetsu/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

const snippetPreviewLen = 200

var (
	highConfidence = color.New(color.FgGreen)
	midConfidence  = color.New(color.FgYellow)
	lowConfidence  = color.New(color.FgRed)
	dim            = color.New(color.Faint)
)

// confidenceSprint colors a confidence value: green above 0.7, yellow above
// 0.4, red otherwise.
func confidenceSprint(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	switch {
	case v > 0.7:
		return highConfidence.Sprint(s)
	case v > 0.4:
		return midConfidence.Sprint(s)
	default:
		return lowConfidence.Sprint(s)
	}
}

// WriteReport writes a grounded answer report to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteReport(w io.Writer, rep *export.Report, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	default:
		writeReportText(w, rep)
		return nil
	}
}

func writeReportText(w io.Writer, rep *export.Report) {
	fmt.Fprintf(w, "\nQuery: %s\n", rep.Query)
	fmt.Fprintf(w, "Overall confidence: %s\n\n", confidenceSprint(rep.Confidence))

	fmt.Fprintln(w, "--- Answer ---")
	for _, g := range rep.Grounding {
		marker := lowConfidence.Sprint("✗")
		if len(g.CitedChunks) > 0 {
			marker = highConfidence.Sprint("✓")
		} else if len(g.SupportingChunks) > 0 {
			marker = midConfidence.Sprint("~")
		}
		fmt.Fprintf(w, "%s %s %s\n", marker, g.Sentence.Text, dim.Sprintf("(%s)", evidenceLabel(g.CitedChunks, g.SupportingChunks)))
	}
	if rep.Summary != "" {
		fmt.Fprintf(w, "\nSummary: %s\n", rep.Summary)
	}
	for _, p := range rep.KeyPoints {
		fmt.Fprintf(w, "  - %s\n", p)
	}

	if len(rep.Entities) > 0 {
		fmt.Fprintln(w, "\n--- Entities ---")
		for _, e := range rep.Entities {
			if e.Type != "" {
				fmt.Fprintf(w, "  %s (%s)\n", e.Name, e.Type)
			} else {
				fmt.Fprintf(w, "  %s\n", e.Name)
			}
		}
	}

	if len(rep.Sources) > 0 {
		fmt.Fprintln(w, "\n--- Sources ---")
		for i, s := range rep.Sources {
			fmt.Fprintf(w, "[%d] %s\n", i+1, utils.Truncate(strings.TrimSpace(s), snippetPreviewLen))
		}
	}
	fmt.Fprintln(w)
}

// evidenceLabel summarizes which source chunks back a sentence.
func evidenceLabel(cited, supporting []int) string {
	if len(cited) == 0 && len(supporting) == 0 {
		return "unsupported"
	}
	var parts []string
	for _, c := range cited {
		parts = append(parts, fmt.Sprintf("cites [%d]", c+1))
	}
	for _, s := range supporting {
		parts = append(parts, fmt.Sprintf("supported by [%d]", s+1))
	}
	return strings.Join(parts, ", ")
}

// WriteHistory writes archived query entries to w in the given format.
func WriteHistory(w io.Writer, entries []*history.Entry, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	default:
		if len(entries) == 0 {
			fmt.Fprintln(w, "No archived queries.")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(w, "%s  %s  %s\n", e.CreatedAt.Format("2006-01-02 15:04"), confidenceSprint(e.ConfidenceScore), e.Query)
			fmt.Fprintf(w, "    %s\n", dim.Sprint(e.ID))
			fmt.Fprintf(w, "    %s\n", utils.Truncate(strings.TrimSpace(e.Answer), snippetPreviewLen))
		}
		return nil
	}
}
