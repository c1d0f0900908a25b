package grounding

import "github.com/hyperjump/kaisetsu/pkg/utils"

// Score computes the local per-sentence confidence from the number of matched
// entities: 0.5 base plus 0.1 per entity, clamped to [0, 1]. This is only
// used for sentence-level inspection; when the backend supplies an overall
// confidence_score, that value is displayed directly at answer level instead.
func Score(matchedEntityCount int) float64 {
	if matchedEntityCount < 0 {
		matchedEntityCount = 0
	}
	return utils.Clamp01(0.5 + 0.1*float64(matchedEntityCount))
}
