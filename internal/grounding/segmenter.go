// Package grounding derives answer-to-evidence grounding: it segments
// generated answer text into sentences and cross-references each sentence
// against extracted entities, retrieved snippets, and backend citations to
// compute a bounded confidence signal. Everything here is pure and
// side-effect-free; callers recompute on demand from the current result.
package grounding

import (
	"strings"
	"unicode"
)

// Sentence is one segmented sentence with byte offsets into the source text.
type Sentence struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Segment splits text into an ordered sequence of sentences. A sentence ends
// at a run of one or more '.', '!' or '?' characters followed by whitespace or
// end of text; the terminators stay with the preceding text. Interior periods
// not followed by whitespace (e.g. "2.1M") do not split. Surrounding
// whitespace is trimmed and zero-length results are discarded. Text after the
// last terminator is dropped, matching the sentence-extraction behavior of the
// answer panels this replaces.
//
// The split is a deliberate heuristic: it is not abbreviation-aware, so
// "Mr. Smith" splits after "Mr." — a documented limitation, not a defect.
// Empty input returns an empty slice, never an error.
func Segment(text string) []Sentence {
	if text == "" {
		return []Sentence{}
	}
	sentences := []Sentence{}
	start := 0
	i := 0
	for i < len(text) {
		if !isTerminator(text[i]) {
			i++
			continue
		}
		// Consume the whole terminator run.
		end := i
		for end < len(text) && isTerminator(text[end]) {
			end++
		}
		// A run only closes the sentence at end of text or before whitespace.
		if end < len(text) && !isSpaceByte(text[end]) {
			i = end
			continue
		}
		if s, ok := trimmedSentence(text, start, end); ok {
			sentences = append(sentences, s)
		}
		start = end
		i = end
	}
	return sentences
}

func isTerminator(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func isSpaceByte(b byte) bool {
	return unicode.IsSpace(rune(b))
}

// trimmedSentence trims whitespace from text[start:end] and returns the
// sentence with offsets adjusted to the trimmed region.
func trimmedSentence(text string, start, end int) (Sentence, bool) {
	raw := text[start:end]
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Sentence{}, false
	}
	lead := strings.IndexFunc(raw, func(r rune) bool { return !unicode.IsSpace(r) })
	// trimmed is a contiguous substring of raw, so offsets shift by the
	// leading whitespace only.
	s := Sentence{
		Text:  trimmed,
		Start: start + lead,
		End:   start + lead + len(trimmed),
	}
	return s, true
}
