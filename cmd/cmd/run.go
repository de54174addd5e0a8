package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pauta/internal/collector"
	"pauta/internal/insights"
	"pauta/internal/llm"
	"pauta/internal/pipeline"
	"pauta/internal/render"
	"pauta/internal/writer"
)

var runWithArticles bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Executa o fluxo completo: coleta, processamento e insights",
	Long: `Executa todas as etapas em sequência: coleta das fontes, consolidação
dos dados, geração de insights com relatório em Markdown e, com
--articles, redação das matérias recomendadas.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		fmt.Println("📥 Coletando conteúdo...")
		runner := collector.NewRunner(cfg.Output.RawDir)
		results := runner.CollectAll(ctx, []collector.Collector{
			collector.NewG1Collector(cfg.Collectors.G1),
			collector.NewTwitterCollector(cfg.Collectors.Twitter),
			collector.NewInstagramCollector(cfg.Collectors.Instagram),
		})
		for _, result := range results {
			icon := "✅"
			if !result.Success {
				icon = "⚠️"
			}
			fmt.Printf("%s %s: %s\n", icon, result.Source, result.Message)
		}

		fmt.Println("⚙️ Processando dados...")
		processor := pipeline.NewProcessor(pipeline.OptionsFromConfig(cfg))
		consolidated, err := processor.Run(cfg.Output.RawDir, cfg.Output.ProcessedDir)
		if err != nil {
			return err
		}
		fmt.Printf("✅ %d itens consolidados em %d tendências\n",
			consolidated.FilteredItems, len(consolidated.TrendingTopics))

		fmt.Println("📊 Gerando insights...")
		generator := insights.NewGenerator(cfg.Metrics.TrendingThreshold, cfg.Metrics.EngagementThreshold)
		bundle, err := generator.Run(cfg.Output.ProcessedDir)
		if err != nil {
			return err
		}
		reportPath, err := render.RenderMarkdownReport(bundle, cfg.Output.ReportsDir)
		if err != nil {
			return err
		}
		fmt.Printf("📄 Relatório salvo em %s\n", reportPath)

		if !runWithArticles {
			return nil
		}
		if len(bundle.ContentRecommendations) == 0 {
			fmt.Println("⚠️ Nenhuma recomendação para redigir")
			return nil
		}

		fmt.Println("✍️ Redigindo matérias...")
		gen, err := llm.New(cfg.LLM)
		if err != nil {
			return err
		}
		w := writer.NewWriter(gen, cfg.Generation.MinWords, cfg.Generation.MaxParagraphs,
			cfg.Generation.Temperature, cfg.Generation.TopP)
		articles := w.GenerateFromRecommendations(ctx, bundle.ContentRecommendations, writeMaxArticles)
		if len(articles) == 0 {
			fmt.Println("⚠️ Nenhuma matéria foi gerada")
			return nil
		}
		path, err := w.Save(articles, cfg.Output.ProcessedDir)
		if err != nil {
			return err
		}
		fmt.Printf("📄 %d matérias salvas em %s\n", len(articles), path)
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runWithArticles, "articles", false, "redigir matérias ao final do fluxo")
	rootCmd.AddCommand(runCmd)
}
