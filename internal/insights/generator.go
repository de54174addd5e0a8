package insights

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"pauta/internal/core"
	"pauta/internal/logger"
)

// Generator derives the insight bundle from one consolidated snapshot. Now is
// injectable so tests get stable timestamps.
type Generator struct {
	TrendingThreshold   float64
	EngagementThreshold float64
	Now                 func() time.Time
}

// NewGenerator creates a generator with the given scoring thresholds.
func NewGenerator(trendingThreshold, engagementThreshold float64) *Generator {
	return &Generator{
		TrendingThreshold:   trendingThreshold,
		EngagementThreshold: engagementThreshold,
		Now:                 time.Now,
	}
}

// LoadConsolidated reads consolidated_data.json. Load failures degrade to an
// empty snapshot; every downstream computation handles that as "nothing to
// process".
func (g *Generator) LoadConsolidated(path string) core.ConsolidatedData {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Failed to load consolidated data", err, "path", path)
		return core.ConsolidatedData{}
	}
	var consolidated core.ConsolidatedData
	if err := json.Unmarshal(data, &consolidated); err != nil {
		logger.Error("Failed to parse consolidated data", err, "path", path)
		return core.ConsolidatedData{}
	}
	logger.Info("Consolidated data loaded", "path", path)
	return consolidated
}

// Generate computes the full insight bundle from one snapshot.
func (g *Generator) Generate(data core.ConsolidatedData) core.InsightBundle {
	return core.InsightBundle{
		SourceDistribution:     SourceDistribution(data),
		TopicInsights:          TopicInsights(data, g.TrendingThreshold),
		EngagementMetrics:      EngagementMetrics(data, g.EngagementThreshold),
		ContentRecommendations: Recommend(data.TrendingTopics, g.TrendingThreshold),
		GeneratedAt:            g.Now().UTC(),
	}
}

// Run loads the consolidated snapshot, generates the bundle and persists it
// as insights.json next to its input.
func (g *Generator) Run(processedDir string) (core.InsightBundle, error) {
	data := g.LoadConsolidated(filepath.Join(processedDir, "consolidated_data.json"))
	bundle := g.Generate(data)

	outPath := filepath.Join(processedDir, "insights.json")
	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		return bundle, fmt.Errorf("creating output dir: %w", err)
	}
	raw, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return bundle, fmt.Errorf("marshaling insights: %w", err)
	}
	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		return bundle, fmt.Errorf("writing %s: %w", outPath, err)
	}
	logger.Info("Insights saved", "path", outPath,
		"topics", len(bundle.TopicInsights), "recommendations", len(bundle.ContentRecommendations))
	return bundle, nil
}

// Series is one numeric series handed to the chart renderer.
type Series struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// SourceSeries builds the per-source item count series, sources in sorted
// order.
func SourceSeries(distribution map[core.Source]core.SourceStat) Series {
	sources := sortedSources(distribution)
	s := Series{Title: "Distribuição de Conteúdo por Fonte"}
	for _, source := range sources {
		s.Labels = append(s.Labels, string(source))
		s.Values = append(s.Values, float64(distribution[source].Count))
	}
	return s
}

// TrendSeries builds the trend score series, topics already ranked.
func TrendSeries(insights []core.TopicInsight) Series {
	s := Series{Title: "Tópicos em Tendência"}
	for _, insight := range insights {
		s.Labels = append(s.Labels, insight.Topic)
		s.Values = append(s.Values, insight.TrendScore)
	}
	return s
}

// EngagementSeries builds the average engagement per source series, sources
// in sorted order.
func EngagementSeries(metrics map[core.Source]core.SourceMetrics) Series {
	sources := make([]core.Source, 0, len(metrics))
	for source := range metrics {
		sources = append(sources, source)
	}
	sort.Slice(sources, func(a, b int) bool { return sources[a] < sources[b] })

	s := Series{Title: "Engajamento Médio por Fonte"}
	for _, source := range sources {
		s.Labels = append(s.Labels, string(source))
		s.Values = append(s.Values, metrics[source].AvgEngagement)
	}
	return s
}

func sortedSources(distribution map[core.Source]core.SourceStat) []core.Source {
	sources := make([]core.Source, 0, len(distribution))
	for source := range distribution {
		sources = append(sources, source)
	}
	sort.Slice(sources, func(a, b int) bool { return sources[a] < sources[b] })
	return sources
}
