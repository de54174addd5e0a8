package pipeline

import (
	"pauta/internal/core"
	"pauta/internal/logger"
)

// ExtractTrendingTopics ranks topic candidates by merged entity and hashtag
// frequency. The two frequency tables are summed per identical token, so a
// token used both as an entity and a hashtag accumulates both counts. The top
// topN tokens by merged count win, ties broken by first-seen order. For each
// candidate the related items are every item whose entities or hashtags
// mention it; Count stays the merged token frequency, which counts
// occurrences and can exceed the distinct related-item count.
func ExtractTrendingTopics(items []core.Item, topN int) []core.TrendingTopic {
	entityFreq := newCounter()
	hashtagFreq := newCounter()
	for _, item := range items {
		for _, entity := range item.Entities {
			entityFreq.Add(entity)
		}
		for _, hashtag := range item.Hashtags {
			hashtagFreq.Add(hashtag)
		}
	}

	merged := newCounter()
	merged.Merge(entityFreq)
	merged.Merge(hashtagFreq)

	trending := make([]core.TrendingTopic, 0, topN)
	for _, entry := range merged.MostCommon(topN) {
		var related []core.Item
		for _, item := range items {
			if containsString(item.Entities, entry.Key) || containsString(item.Hashtags, entry.Key) {
				related = append(related, item)
			}
		}

		avgEngagement := 0.0
		if len(related) > 0 {
			sum := 0.0
			for _, item := range related {
				sum += item.EngagementValue()
			}
			avgEngagement = sum / float64(len(related))
		}

		sources := []core.Source{}
		seen := make(map[core.Source]struct{})
		for _, item := range related {
			if _, ok := seen[item.Source]; !ok {
				seen[item.Source] = struct{}{}
				sources = append(sources, item.Source)
			}
		}

		trending = append(trending, core.TrendingTopic{
			Topic:             entry.Key,
			Count:             entry.Count,
			AvgEngagement:     avgEngagement,
			Sources:           sources,
			RelatedItemsCount: len(related),
		})
	}

	logger.Info("Extracted trending topics", "count", len(trending))
	return trending
}
