package insights

import (
	"fmt"
	"sort"
	"strings"

	"pauta/internal/core"
	"pauta/internal/logger"
)

// clusterItems flattens the topic map into the cluster-weighted population:
// an item appears once per cluster it belongs to. Topics iterate in sorted
// key order so downstream aggregates are deterministic.
func clusterItems(topics map[string][]core.Item) []core.Item {
	names := make([]string, 0, len(topics))
	for name := range topics {
		names = append(names, name)
	}
	sort.Strings(names)

	var all []core.Item
	for _, name := range names {
		all = append(all, topics[name]...)
	}
	return all
}

// SourceDistribution tallies the cluster-weighted item population per source
// and converts counts to percentages of the cluster-weighted total.
func SourceDistribution(data core.ConsolidatedData) map[core.Source]core.SourceStat {
	all := clusterItems(data.Topics)

	counts := make(map[core.Source]int)
	for _, item := range all {
		counts[item.Source]++
	}

	distribution := make(map[core.Source]core.SourceStat, len(counts))
	for source, count := range counts {
		percentage := 0.0
		if len(all) > 0 {
			percentage = float64(count) / float64(len(all)) * 100
		}
		distribution[source] = core.SourceStat{Count: count, Percentage: percentage}
	}

	logger.Info("Source distribution generated", "sources", len(distribution))
	return distribution
}

// TopicInsights scores every trending topic and sorts descending by trend
// score, ties keeping source order. The score combines merged mention
// frequency and average engagement; status bands are strict, a score exactly
// on a boundary falls into the lower band.
func TopicInsights(data core.ConsolidatedData, trendingThreshold float64) []core.TopicInsight {
	insights := make([]core.TopicInsight, 0, len(data.TrendingTopics))
	for _, topic := range data.TrendingTopics {
		score := TrendScore(topic.Count, topic.AvgEngagement)
		status := TrendStatus(score, trendingThreshold)

		insights = append(insights, core.TopicInsight{
			Topic:       topic.Topic,
			Mentions:    topic.Count,
			Engagement:  topic.AvgEngagement,
			TrendScore:  score,
			TrendStatus: status,
			Sources:     topic.Sources,
			KeyFacts:    topic.KeyFacts,
			Summary: fmt.Sprintf(
				"O tópico '%s' apresenta tendência %s com %d menções e engajamento médio de %.2f.",
				topic.Topic, strings.ToLower(status), topic.Count, topic.AvgEngagement),
		})
	}

	sort.SliceStable(insights, func(a, b int) bool {
		return insights[a].TrendScore > insights[b].TrendScore
	})

	logger.Info("Topic insights generated", "topics", len(insights))
	return insights
}

// TrendScore combines mention frequency and average engagement.
func TrendScore(count int, avgEngagement float64) float64 {
	return float64(count)*0.6 + avgEngagement*0.4
}

// TrendStatus bands a trend score. Both comparisons are strict.
func TrendStatus(score, threshold float64) string {
	switch {
	case score > threshold:
		return core.StatusAlta
	case score > threshold/2:
		return core.StatusMedia
	default:
		return core.StatusBaixa
	}
}

// EngagementMetrics aggregates engagement per source over the
// cluster-weighted population. Sources with no items produce no row.
func EngagementMetrics(data core.ConsolidatedData, engagementThreshold float64) map[core.Source]core.SourceMetrics {
	all := clusterItems(data.Topics)

	metrics := make(map[core.Source]core.SourceMetrics)
	for _, item := range all {
		m := metrics[item.Source]
		m.TotalItems++
		value := item.EngagementValue()
		m.TotalEngagement += value
		if value > engagementThreshold {
			m.HighEngagementItems++
		}
		metrics[item.Source] = m
	}

	for source, m := range metrics {
		m.AvgEngagement = m.TotalEngagement / float64(m.TotalItems)
		m.HighEngagementPercentage = float64(m.HighEngagementItems) / float64(m.TotalItems) * 100
		metrics[source] = m
	}

	logger.Info("Engagement metrics generated", "sources", len(metrics))
	return metrics
}
