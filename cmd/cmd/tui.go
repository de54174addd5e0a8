package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pauta/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Navega pelas recomendações de pauta no terminal",
	Long: `Abre um navegador interativo sobre as recomendações de insights.json:
lista de tópicos à esquerda, fatos-chave e justificativa à direita.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := loadInsightBundle(cfg.Output.ProcessedDir)
		if err != nil {
			return fmt.Errorf("execute 'pauta insights' primeiro: %w", err)
		}
		tui.Start(bundle.ContentRecommendations)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
