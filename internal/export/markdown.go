package export

import (
	"fmt"
	"io"
	"strings"
)

// writeMarkdown renders the report as a markdown document: the question, the
// answer sections, then per-sentence evidence and the sources it points at.
func (r *Report) writeMarkdown(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Query)
	fmt.Fprintf(&b, "Generated %s | Confidence %.2f\n\n", r.GeneratedAt.Format("2006-01-02 15:04 UTC"), r.Confidence)

	fmt.Fprintf(&b, "## Answer\n\n%s\n\n", r.Answer)
	if r.Summary != "" {
		fmt.Fprintf(&b, "## Summary\n\n%s\n\n", r.Summary)
	}
	if len(r.KeyPoints) > 0 {
		b.WriteString("## Key Points\n\n")
		for _, p := range r.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}

	if len(r.Grounding) > 0 {
		b.WriteString("## Evidence\n\n")
		for i, g := range r.Grounding {
			fmt.Fprintf(&b, "%d. %s\n", i+1, g.Sentence.Text)
			fmt.Fprintf(&b, "   - confidence: %.2f\n", g.Confidence)
			if len(g.MatchedEntities) > 0 {
				names := make([]string, len(g.MatchedEntities))
				for j, e := range g.MatchedEntities {
					names[j] = e.Name
				}
				fmt.Fprintf(&b, "   - entities: %s\n", strings.Join(names, ", "))
			}
			if len(g.CitedChunks) > 0 {
				fmt.Fprintf(&b, "   - cited sources: %s\n", joinInts(g.CitedChunks))
			}
			if len(g.SupportingChunks) > 0 {
				fmt.Fprintf(&b, "   - supporting sources: %s\n", joinInts(g.SupportingChunks))
			}
			if len(g.CitedChunks) == 0 && len(g.SupportingChunks) == 0 {
				b.WriteString("   - no supporting evidence found\n")
			}
		}
		b.WriteString("\n")
	}

	if len(r.Entities) > 0 {
		b.WriteString("## Entities\n\n")
		for _, e := range r.Entities {
			if e.Type != "" {
				fmt.Fprintf(&b, "- %s (%s)\n", e.Name, e.Type)
			} else {
				fmt.Fprintf(&b, "- %s\n", e.Name)
			}
		}
		b.WriteString("\n")
	}

	if len(r.Sources) > 0 {
		b.WriteString("## Sources\n\n")
		for i, s := range r.Sources {
			fmt.Fprintf(&b, "> [%d] %s\n\n", i+1, s)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("[%d]", x+1)
	}
	return strings.Join(parts, " ")
}
