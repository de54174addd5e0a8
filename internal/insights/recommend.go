package insights

import (
	"fmt"

	"pauta/internal/core"
	"pauta/internal/logger"
)

// Recommend turns scored topics into prioritized recommendations. Two
// disjoint score bands are evaluated over the same topic list, so a topic
// yields at most one recommendation:
//
//   - score > threshold: always recommended, priority Alta with 3 or more
//     key facts, else Média.
//   - threshold/2 < score <= threshold: recommended with priority Média only
//     when at least 2 key facts exist, with a softer rationale.
//
// Topics failing both bands are dropped silently.
func Recommend(topics []core.TrendingTopic, trendingThreshold float64) []core.Recommendation {
	recommendations := []core.Recommendation{}

	for _, topic := range topics {
		if TrendScore(topic.Count, topic.AvgEngagement) <= trendingThreshold {
			continue
		}
		priority := core.StatusMedia
		if len(topic.KeyFacts) >= 3 {
			priority = core.StatusAlta
		}
		recommendations = append(recommendations, core.Recommendation{
			Topic:          topic.Topic,
			KeyFacts:       topic.KeyFacts,
			Recommendation: fmt.Sprintf("Criar matéria sobre '%s' com base nos fatos coletados.", topic.Topic),
			Priority:       priority,
		})
	}

	for _, topic := range topics {
		score := TrendScore(topic.Count, topic.AvgEngagement)
		if score <= trendingThreshold/2 || score > trendingThreshold {
			continue
		}
		if len(topic.KeyFacts) < 2 {
			continue
		}
		recommendations = append(recommendations, core.Recommendation{
			Topic:          topic.Topic,
			KeyFacts:       topic.KeyFacts,
			Recommendation: fmt.Sprintf("Considerar matéria sobre '%s' se houver desenvolvimento adicional.", topic.Topic),
			Priority:       core.StatusMedia,
		})
	}

	logger.Info("Content recommendations generated", "count", len(recommendations))
	return recommendations
}
