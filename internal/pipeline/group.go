package pipeline

import (
	"pauta/internal/core"
	"pauta/internal/logger"
)

// OutrosTopic is the reserved catch-all bucket for items no named cluster
// claims. The label is part of the persisted JSON contract.
const OutrosTopic = "outros"

// topClusterEntities is how many frequent entities become named clusters.
const topClusterEntities = 10

// GroupByTopic clusters items by their most frequent entities. The 10 most
// frequent entities with frequency > 1 become topics, ordered by descending
// frequency with first-seen tie-breaks, and each topic's members are every
// item mentioning it. Membership is non-exclusive. Items claimed by no named
// cluster land in the "outros" bucket; the claimed-set is tracked by stable
// item key, so identical runs over the same snapshot classify identically.
func GroupByTopic(items []core.Item) map[string][]core.Item {
	freq := newCounter()
	for _, item := range items {
		for _, entity := range item.Entities {
			freq.Add(entity)
		}
	}

	var topEntities []string
	for _, entry := range freq.MostCommon(topClusterEntities) {
		if entry.Count > 1 {
			topEntities = append(topEntities, entry.Key)
		}
	}

	topics := make(map[string][]core.Item, len(topEntities)+1)
	classified := make(map[string]struct{})
	for _, entity := range topEntities {
		members := []core.Item{}
		for _, item := range items {
			if containsString(item.Entities, entity) {
				members = append(members, item)
				classified[item.Key()] = struct{}{}
			}
		}
		topics[entity] = members
	}

	outros := []core.Item{}
	for _, item := range items {
		if _, ok := classified[item.Key()]; !ok {
			outros = append(outros, item)
		}
	}
	topics[OutrosTopic] = outros

	logger.Info("Grouped items into topics", "topics", len(topics), "unclassified", len(outros))
	return topics
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}
