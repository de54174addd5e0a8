package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pauta/internal/insights"
	"pauta/internal/render"
)

var insightsReport bool

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Gera insights e recomendações de pauta",
	Long: `Calcula distribuição por fonte, métricas de engajamento, pontuação de
tendência e recomendações de pauta a partir de consolidated_data.json,
gravando insights.json e, opcionalmente, um relatório em Markdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		generator := insights.NewGenerator(cfg.Metrics.TrendingThreshold, cfg.Metrics.EngagementThreshold)
		bundle, err := generator.Run(cfg.Output.ProcessedDir)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Insights gerados: %d tópicos, %d recomendações\n",
			len(bundle.TopicInsights), len(bundle.ContentRecommendations))
		for _, rec := range bundle.ContentRecommendations {
			fmt.Printf("   [%s] %s\n", rec.Priority, rec.Topic)
		}

		if insightsReport {
			path, err := render.RenderMarkdownReport(bundle, cfg.Output.ReportsDir)
			if err != nil {
				return err
			}
			fmt.Printf("📄 Relatório salvo em %s\n", path)
		}
		return nil
	},
}

func init() {
	insightsCmd.Flags().BoolVar(&insightsReport, "report", true, "gerar relatório em Markdown")
	rootCmd.AddCommand(insightsCmd)
}
