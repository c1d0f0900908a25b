package grounding

// Config holds the evidence-linking thresholds and presentation policy.
// The zero value is not usable; use DefaultConfig.
type Config struct {
	// MinOverlap caps the word-overlap threshold for snippet support.
	MinOverlap int
	// MinWordLength excludes words of this length or shorter from the
	// overlap check.
	MinWordLength int
	// DedupeEntities collapses same-named entities in engine output.
	DedupeEntities bool
}

// DefaultConfig returns the thresholds the original evidence panels used:
// at most 3 overlapping words required, words must be longer than 4
// characters, and entities are de-duplicated by name for presentation.
func DefaultConfig() *Config {
	return &Config{
		MinOverlap:     3,
		MinWordLength:  4,
		DedupeEntities: true,
	}
}
