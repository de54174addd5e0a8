// Package render writes the markdown report and the text bar charts derived
// from one insight bundle.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pauta/internal/core"
	"pauta/internal/insights"
)

// barWidth is the character width of a full chart bar.
const barWidth = 40

// RenderMarkdownReport creates a markdown report for the bundle under
// outputDir, named by the bundle's generation date.
func RenderMarkdownReport(bundle core.InsightBundle, outputDir string) (string, error) {
	dateStr := bundle.GeneratedAt.UTC().Format("2006-01-02")
	filename := fmt.Sprintf("relatorio_%s.md", dateStr)

	if outputDir == "" {
		outputDir = "data/processed/reports"
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	filePath := filepath.Join(outputDir, filename)

	if err := os.WriteFile(filePath, []byte(FormatReport(bundle)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report file %s: %w", filePath, err)
	}
	return filePath, nil
}

// FormatReport renders the bundle as markdown.
func FormatReport(bundle core.InsightBundle) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Relatório de Pauta - %s\n\n", bundle.GeneratedAt.UTC().Format("2006-01-02")))

	b.WriteString("## Distribuição por Fonte\n\n")
	if len(bundle.SourceDistribution) == 0 {
		b.WriteString("Nenhum item processado.\n\n")
	} else {
		b.WriteString("| Fonte | Itens | Percentual |\n")
		b.WriteString("|-------|-------|------------|\n")
		for _, source := range sortedSources(bundle.SourceDistribution) {
			stat := bundle.SourceDistribution[source]
			b.WriteString(fmt.Sprintf("| %s | %d | %.1f%% |\n", source, stat.Count, stat.Percentage))
		}
		b.WriteString("\n")
		b.WriteString(FormatBarChart(insights.SourceSeries(bundle.SourceDistribution)))
		b.WriteString("\n")
	}

	b.WriteString("## Tópicos em Tendência\n\n")
	if len(bundle.TopicInsights) == 0 {
		b.WriteString("Nenhum tópico em tendência.\n\n")
	} else {
		for i, insight := range bundle.TopicInsights {
			b.WriteString(fmt.Sprintf("### %d. %s (%s)\n\n", i+1, insight.Topic, insight.TrendStatus))
			b.WriteString(insight.Summary + "\n\n")
			if len(insight.KeyFacts) > 0 {
				b.WriteString("Fatos-chave:\n\n")
				for _, fact := range insight.KeyFacts {
					b.WriteString("- " + fact + "\n")
				}
				b.WriteString("\n")
			}
		}
		b.WriteString(FormatBarChart(insights.TrendSeries(bundle.TopicInsights)))
		b.WriteString("\n")
	}

	b.WriteString("## Engajamento por Fonte\n\n")
	if len(bundle.EngagementMetrics) > 0 {
		b.WriteString("| Fonte | Itens | Engajamento médio | Alto engajamento |\n")
		b.WriteString("|-------|-------|-------------------|------------------|\n")
		sources := make([]core.Source, 0, len(bundle.EngagementMetrics))
		for source := range bundle.EngagementMetrics {
			sources = append(sources, source)
		}
		sort.Slice(sources, func(a, b int) bool { return sources[a] < sources[b] })
		for _, source := range sources {
			m := bundle.EngagementMetrics[source]
			b.WriteString(fmt.Sprintf("| %s | %d | %.2f | %.1f%% |\n",
				source, m.TotalItems, m.AvgEngagement, m.HighEngagementPercentage))
		}
		b.WriteString("\n")
		b.WriteString(FormatBarChart(insights.EngagementSeries(bundle.EngagementMetrics)))
		b.WriteString("\n")
	}

	b.WriteString("## Recomendações de Pauta\n\n")
	if len(bundle.ContentRecommendations) == 0 {
		b.WriteString("Nenhuma recomendação gerada.\n")
	} else {
		for _, rec := range bundle.ContentRecommendations {
			b.WriteString(fmt.Sprintf("- **%s** (prioridade %s): %s\n", rec.Topic, rec.Priority, rec.Recommendation))
		}
	}

	return b.String()
}

// FormatBarChart renders one numeric series as a fenced text bar chart,
// scaled to the largest value.
func FormatBarChart(series insights.Series) string {
	if len(series.Values) == 0 {
		return ""
	}

	maxValue := series.Values[0]
	labelWidth := 0
	for i, v := range series.Values {
		if v > maxValue {
			maxValue = v
		}
		if w := len([]rune(series.Labels[i])); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	b.WriteString("```\n")
	b.WriteString(series.Title + "\n")
	for i, v := range series.Values {
		width := 0
		if maxValue > 0 {
			width = int(v / maxValue * barWidth)
		}
		label := series.Labels[i]
		pad := strings.Repeat(" ", labelWidth-len([]rune(label)))
		b.WriteString(fmt.Sprintf("%s%s  %s %.2f\n", label, pad, strings.Repeat("█", width), v))
	}
	b.WriteString("```\n")
	return b.String()
}

func sortedSources(distribution map[core.Source]core.SourceStat) []core.Source {
	sources := make([]core.Source, 0, len(distribution))
	for source := range distribution {
		sources = append(sources, source)
	}
	sort.Slice(sources, func(a, b int) bool { return sources[a] < sources[b] })
	return sources
}
