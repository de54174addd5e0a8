package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App        App        `mapstructure:"app"`
	Processing Processing `mapstructure:"processing"`
	Metrics    Metrics    `mapstructure:"metrics"`
	Collectors Collectors `mapstructure:"collectors"`
	Generation Generation `mapstructure:"generation"`
	LLM        LLM        `mapstructure:"llm"`
	Output     Output     `mapstructure:"output"`
}

// App holds general application configuration.
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	DataDir  string `mapstructure:"data_dir"`
	Language string `mapstructure:"language"`
}

// Processing holds the aggregation pipeline knobs.
type Processing struct {
	MinRelevanceScore float64 `mapstructure:"min_relevance_score"` // Relevance filter threshold
	MinPercentile     float64 `mapstructure:"min_percentile"`      // Engagement percentile, fraction in [0,1]
	TopN              int     `mapstructure:"top_n"`               // Trending topic candidates to keep
	MaxKeyFacts       int     `mapstructure:"max_key_facts"`       // Sentences retained per topic
	MaxContentLength  int     `mapstructure:"max_content_length"`
}

// Metrics holds the insight scoring thresholds.
type Metrics struct {
	TrendingThreshold   float64 `mapstructure:"trending_threshold"`   // Alta band boundary for trend_score
	EngagementThreshold float64 `mapstructure:"engagement_threshold"` // High-engagement item boundary
}

// Collectors holds per-source collection configuration.
type Collectors struct {
	G1        G1Config        `mapstructure:"g1"`
	Twitter   TwitterConfig   `mapstructure:"twitter"`
	Instagram InstagramConfig `mapstructure:"instagram"`
}

// G1Config configures the G1 news scraper.
type G1Config struct {
	BaseURL     string   `mapstructure:"base_url"`
	Categories  []string `mapstructure:"categories"`
	MaxArticles int      `mapstructure:"max_articles"`
}

// TwitterConfig configures the Twitter search collector.
type TwitterConfig struct {
	BearerToken string   `mapstructure:"bearer_token"`
	SearchTerms []string `mapstructure:"search_terms"`
	MaxTweets   int      `mapstructure:"max_tweets"`
	ResultType  string   `mapstructure:"result_type"`
}

// InstagramConfig configures the Instagram collector.
type InstagramConfig struct {
	Profiles []string `mapstructure:"profiles"`
	Hashtags []string `mapstructure:"hashtags"`
	MaxPosts int      `mapstructure:"max_posts"`
}

// Generation holds the story drafting constraints enforced by the validator.
type Generation struct {
	MinWords      int     `mapstructure:"min_words"`
	MaxParagraphs int     `mapstructure:"max_paragraphs"`
	Temperature   float64 `mapstructure:"temperature"`
	TopP          float64 `mapstructure:"top_p"`
}

// LLM selects and configures the drafting backend.
type LLM struct {
	Provider string       `mapstructure:"provider"` // "ollama" or "gemini"
	Ollama   OllamaConfig `mapstructure:"ollama"`
	Gemini   GeminiConfig `mapstructure:"gemini"`
}

// OllamaConfig holds the local Ollama endpoint configuration.
type OllamaConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Model   string `mapstructure:"model"`
	Timeout string `mapstructure:"timeout"`
}

// GeminiConfig holds Google Gemini configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Output holds the file exchange locations.
type Output struct {
	RawDir       string `mapstructure:"raw_dir"`
	ProcessedDir string `mapstructure:"processed_dir"`
	ReportsDir   string `mapstructure:"reports_dir"`
}

var globalConfig *Config

// Load reads configuration from the optional config file, .env and the
// environment, applying defaults for everything left unset.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".pauta")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values.
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.data_dir", "data")
	viper.SetDefault("app.language", "pt-br")

	// Pipeline defaults
	viper.SetDefault("processing.min_relevance_score", 0.6)
	viper.SetDefault("processing.min_percentile", 0.3)
	viper.SetDefault("processing.top_n", 5)
	viper.SetDefault("processing.max_key_facts", 10)
	viper.SetDefault("processing.max_content_length", 1000)

	// Scoring defaults
	viper.SetDefault("metrics.trending_threshold", 0.7)
	viper.SetDefault("metrics.engagement_threshold", 0.5)

	// Collector defaults
	viper.SetDefault("collectors.g1.base_url", "https://g1.globo.com")
	viper.SetDefault("collectors.g1.categories", []string{"politica", "economia", "entretenimento"})
	viper.SetDefault("collectors.g1.max_articles", 10)
	viper.SetDefault("collectors.twitter.search_terms", []string{"política", "entretenimento", "notícias"})
	viper.SetDefault("collectors.twitter.max_tweets", 50)
	viper.SetDefault("collectors.twitter.result_type", "popular")
	viper.SetDefault("collectors.instagram.profiles", []string{"g1", "bbcbrasil", "cnnbrasil"})
	viper.SetDefault("collectors.instagram.hashtags", []string{"noticia", "politica", "entretenimento"})
	viper.SetDefault("collectors.instagram.max_posts", 20)

	// Drafting defaults
	viper.SetDefault("generation.min_words", 500)
	viper.SetDefault("generation.max_paragraphs", 5)
	viper.SetDefault("generation.temperature", 0.7)
	viper.SetDefault("generation.top_p", 0.9)
	viper.SetDefault("llm.provider", "ollama")
	viper.SetDefault("llm.ollama.host", "http://localhost")
	viper.SetDefault("llm.ollama.port", 11434)
	viper.SetDefault("llm.ollama.model", "gemma")
	viper.SetDefault("llm.ollama.timeout", "60s")
	viper.SetDefault("llm.gemini.model", "gemini-2.0-flash")

	// Output defaults
	viper.SetDefault("output.raw_dir", "data/raw")
	viper.SetDefault("output.processed_dir", "data/processed")
	viper.SetDefault("output.reports_dir", "data/processed/reports")
}

// bindEnvironmentVariables sets up flexible environment variable binding.
func bindEnvironmentVariables() {
	bindEnvKeys("llm.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})
	bindEnvKeys("collectors.twitter.bearer_token", []string{
		"TWITTER_BEARER_TOKEN",
	})
	bindEnvKeys("llm.ollama.host", []string{
		"OLLAMA_HOST",
	})
}

// bindEnvKeys binds multiple environment variable names to a single config key.
func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(configKey, value)
			break
		}
	}
}

// validateConfig rejects values the pipeline cannot work with.
func validateConfig(config *Config) error {
	if config.Processing.MinRelevanceScore < 0 || config.Processing.MinRelevanceScore > 1 {
		return fmt.Errorf("processing.min_relevance_score must be in [0,1], got %v", config.Processing.MinRelevanceScore)
	}
	if config.Processing.MinPercentile < 0 || config.Processing.MinPercentile > 1 {
		return fmt.Errorf("processing.min_percentile must be in [0,1], got %v", config.Processing.MinPercentile)
	}
	if config.Processing.TopN <= 0 {
		return fmt.Errorf("processing.top_n must be positive, got %d", config.Processing.TopN)
	}
	if config.Processing.MaxKeyFacts <= 0 {
		return fmt.Errorf("processing.max_key_facts must be positive, got %d", config.Processing.MaxKeyFacts)
	}
	if p := config.LLM.Provider; p != "ollama" && p != "gemini" {
		return fmt.Errorf("llm.provider must be \"ollama\" or \"gemini\", got %q", p)
	}
	return nil
}
