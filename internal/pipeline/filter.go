package pipeline

import (
	"math"
	"sort"

	"pauta/internal/core"
	"pauta/internal/logger"
)

// FilterByRelevance keeps items whose relevance score is at least minScore,
// preserving input order. A missing score is zero and fails any positive
// threshold.
func FilterByRelevance(items []core.Item, minScore float64) []core.Item {
	filtered := make([]core.Item, 0, len(items))
	for _, item := range items {
		if item.RelevanceScore >= minScore {
			filtered = append(filtered, item)
		}
	}
	logger.Info("Filtered items by relevance", "kept", len(filtered), "total", len(items))
	return filtered
}

// FilterByEngagement keeps items whose engagement value is at or above the
// minPercentile-th percentile of all values, preserving input order. When all
// values are equal the threshold equals that value and every item passes.
func FilterByEngagement(items []core.Item, minPercentile float64) []core.Item {
	if len(items) == 0 {
		return []core.Item{}
	}

	values := make([]float64, len(items))
	for i, item := range items {
		values[i] = item.EngagementValue()
	}
	threshold := Percentile(values, minPercentile)

	filtered := make([]core.Item, 0, len(items))
	for i, item := range items {
		if values[i] >= threshold {
			filtered = append(filtered, item)
		}
	}
	logger.Info("Filtered items by engagement", "kept", len(filtered), "total", len(items), "threshold", threshold)
	return filtered
}

// Percentile computes the p-th percentile (p as a fraction in [0,1]) of the
// values using linear interpolation over the sorted sample, the same method
// pandas and numpy default to: rank = p*(n-1), interpolated between the two
// nearest order statistics. An empty sample yields 0.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}

	rank := p * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
