package stats

import (
	"sort"

	"github.com/dewtone/stenodactylus/internal/model"
)

// SelectWeakStrokes selects the lowest-accuracy strokes from aggregates.
func SelectWeakStrokes(aggs []model.StrokeAggregate, top int) map[string]struct{} {
	weakSet := map[string]struct{}{}
	if len(aggs) == 0 {
		return weakSet
	}
	candidates := make([]model.StrokeAggregate, len(aggs))
	copy(candidates, aggs)
	sort.Slice(candidates, func(i, j int) bool {
		ai := accuracy(candidates[i])
		aj := accuracy(candidates[j])
		if ai == aj {
			return candidates[i].Stroke < candidates[j].Stroke
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for i := 0; i < top; i++ {
		weakSet[candidates[i].Stroke] = struct{}{}
	}
	return weakSet
}

func accuracy(agg model.StrokeAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}
