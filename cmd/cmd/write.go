package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pauta/internal/core"
	"pauta/internal/llm"
	"pauta/internal/writer"
)

var writeMaxArticles int

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Redige matérias a partir das recomendações de pauta",
	Long: `Carrega as recomendações de insights.json, redige matérias através do
backend configurado (Ollama ou Gemini), valida cada rascunho contra as
regras editoriais e grava o resultado em materias.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := loadInsightBundle(cfg.Output.ProcessedDir)
		if err != nil {
			return err
		}
		if len(bundle.ContentRecommendations) == 0 {
			fmt.Println("⚠️ Nenhuma recomendação disponível; execute 'pauta insights' primeiro")
			return nil
		}

		gen, err := llm.New(cfg.LLM)
		if err != nil {
			return err
		}
		w := writer.NewWriter(gen, cfg.Generation.MinWords, cfg.Generation.MaxParagraphs,
			cfg.Generation.Temperature, cfg.Generation.TopP)

		articles := w.GenerateFromRecommendations(context.Background(),
			bundle.ContentRecommendations, writeMaxArticles)
		if len(articles) == 0 {
			return fmt.Errorf("nenhuma matéria foi gerada")
		}

		validator := writer.NewValidator(cfg.Generation.MinWords, cfg.Generation.MaxParagraphs)
		for _, article := range articles {
			result := validator.Validate(article)
			icon := "✅"
			if !result.Valid {
				icon = "⚠️"
			}
			fmt.Printf("%s %s: %s\n", icon, article.Titulo, result.Message)
		}

		path, err := w.Save(articles, cfg.Output.ProcessedDir)
		if err != nil {
			return err
		}
		fmt.Printf("📄 Matérias salvas em %s\n", path)
		return nil
	},
}

// loadInsightBundle reads insights.json from a previous run.
func loadInsightBundle(processedDir string) (core.InsightBundle, error) {
	path := filepath.Join(processedDir, "insights.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return core.InsightBundle{}, fmt.Errorf("lendo %s: %w", path, err)
	}
	var bundle core.InsightBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return core.InsightBundle{}, fmt.Errorf("interpretando %s: %w", path, err)
	}
	return bundle, nil
}

func init() {
	writeCmd.Flags().IntVar(&writeMaxArticles, "max-articles", 3, "número máximo de matérias a redigir")
	rootCmd.AddCommand(writeCmd)
}
