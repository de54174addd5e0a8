package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pauta/internal/collector"
)

var collectSources []string

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Coleta conteúdo das fontes configuradas",
	Long: `Executa os coletores de G1, Twitter e Instagram, salvando os dados
brutos e normalizados em data/raw/<fonte>/. Falhas em uma fonte não
interrompem as demais.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := collector.NewRunner(cfg.Output.RawDir)
		collectors := selectedCollectors()
		if len(collectors) == 0 {
			return fmt.Errorf("nenhuma fonte reconhecida em %v", collectSources)
		}

		results := runner.CollectAll(context.Background(), collectors)
		failures := 0
		for _, result := range results {
			icon := "✅"
			if !result.Success {
				icon = "⚠️"
				failures++
			}
			fmt.Printf("%s %s: %s\n", icon, result.Source, result.Message)
		}
		if failures == len(results) {
			return fmt.Errorf("todas as fontes falharam")
		}
		return nil
	},
}

func selectedCollectors() []collector.Collector {
	all := map[string]collector.Collector{
		"g1":        collector.NewG1Collector(cfg.Collectors.G1),
		"twitter":   collector.NewTwitterCollector(cfg.Collectors.Twitter),
		"instagram": collector.NewInstagramCollector(cfg.Collectors.Instagram),
	}
	if len(collectSources) == 0 {
		return []collector.Collector{all["g1"], all["twitter"], all["instagram"]}
	}
	var selected []collector.Collector
	for _, name := range collectSources {
		if c, ok := all[name]; ok {
			selected = append(selected, c)
		}
	}
	return selected
}

func init() {
	collectCmd.Flags().StringSliceVar(&collectSources, "sources", nil,
		"fontes a coletar (g1, twitter, instagram); padrão: todas")
	rootCmd.AddCommand(collectCmd)
}
