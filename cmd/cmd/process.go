package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pauta/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Consolida os dados coletados em tópicos e tendências",
	Long: `Lê os arquivos processados de cada coletor em data/raw/, aplica os
filtros de relevância e engajamento, agrupa por tópicos e extrai
tendências com fatos-chave, gravando consolidated_data.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		processor := pipeline.NewProcessor(pipeline.OptionsFromConfig(cfg))
		consolidated, err := processor.Run(cfg.Output.RawDir, cfg.Output.ProcessedDir)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Processados %d itens (%d após filtros)\n",
			consolidated.TotalItems, consolidated.FilteredItems)
		fmt.Printf("   Tópicos: %d | Tendências: %d\n",
			len(consolidated.Topics), len(consolidated.TrendingTopics))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
}
