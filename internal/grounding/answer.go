package grounding

import "strings"

// ParsedAnswer is an answer split into its line-prefix sections.
type ParsedAnswer struct {
	// Main is the free-text answer body; grounding runs over this.
	Main string `json:"main"`
	// Summary is the text following a "Summary:" line, with continuation
	// lines appended.
	Summary string `json:"summary,omitempty"`
	// KeyPoints are "-" bullets following a "Key Points:" line.
	KeyPoints []string `json:"key_points,omitempty"`
}

// ParseAnswer splits an answer into main text, summary, and key points using
// the backend's line-prefix conventions ("Summary:", "Key Points:"). Lines
// before any marker belong to the main text. Empty input returns an empty
// ParsedAnswer.
func ParseAnswer(answer string) ParsedAnswer {
	parsed := ParsedAnswer{KeyPoints: []string{}}
	if answer == "" {
		return parsed
	}

	var main []string
	var summary strings.Builder
	section := "main"

	for _, line := range strings.Split(answer, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		switch {
		case strings.HasPrefix(lower, "summary:"):
			section = "summary"
			summary.WriteString(strings.TrimSpace(trimmed[len("summary:"):]))
		case strings.HasPrefix(lower, "key points:"):
			section = "keypoints"
		case section == "summary" && trimmed != "":
			if summary.Len() > 0 {
				summary.WriteString(" ")
			}
			summary.WriteString(trimmed)
		case section == "keypoints" && strings.HasPrefix(trimmed, "-"):
			parsed.KeyPoints = append(parsed.KeyPoints, strings.TrimSpace(trimmed[1:]))
		case section == "main":
			main = append(main, line)
		}
	}

	parsed.Main = strings.TrimSpace(strings.Join(main, "\n"))
	parsed.Summary = strings.TrimSpace(summary.String())
	return parsed
}
