package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pauta/internal/config"
)

var cfgFile string

// cfg is loaded once by initConfig and shared by every subcommand.
var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pauta",
	Short: "Pauta coleta notícias e redes sociais e sugere pautas jornalísticas.",
	Long: `Pauta é um agregador de conteúdo para redações: coleta notícias do G1 e
posts do Twitter e do Instagram, filtra e agrupa por tópicos, extrai
tendências e gera recomendações priorizadas de pauta, com rascunho
opcional das matérias via LLM.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pauta.yaml)")
}

// initConfig loads configuration from file, .env and environment.
func initConfig() {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded
}
