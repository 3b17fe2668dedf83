// Package stats contains drill statistics calculations and reporting.
package stats

import (
	"sort"

	"github.com/dewtone/stenodactylus/internal/model"
)

// TopStrokesByFrequency returns the top N strokes by total frequency.
func TopStrokesByFrequency(aggs []model.StrokeAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	type item struct {
		stroke string
		total  int
	}
	items := make([]item, 0, len(aggs))
	for _, agg := range aggs {
		items = append(items, item{
			stroke: agg.Stroke,
			total:  agg.Correct + agg.Incorrect,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].stroke < items[j].stroke
		}
		return items[i].total > items[j].total
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].stroke)
	}
	return out
}
