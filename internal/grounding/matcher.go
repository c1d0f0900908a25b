package grounding

import (
	"strings"

	"github.com/hyperjump/kaisetsu/internal/models"
)

// MatchEntities returns the entities whose names occur in text, compared as
// case-insensitive substrings. The result is a stable filter: entities keep
// their input order and duplicates are preserved (de-duplication is a separate
// presentation policy, see DedupeEntities). Entities with empty names never
// match. Empty text matches nothing.
func MatchEntities(text string, entities []models.Entity) []models.Entity {
	matched := []models.Entity{}
	if text == "" || len(entities) == 0 {
		return matched
	}
	textLower := strings.ToLower(text)
	for _, e := range entities {
		if e.Name == "" {
			continue
		}
		if strings.Contains(textLower, strings.ToLower(e.Name)) {
			matched = append(matched, e)
		}
	}
	return matched
}

// DedupeEntities collapses entities sharing a case-insensitive name. The
// first-seen entity wins and keeps its type. Order is preserved.
func DedupeEntities(entities []models.Entity) []models.Entity {
	deduped := []models.Entity{}
	seen := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		key := strings.ToLower(e.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, e)
	}
	return deduped
}
