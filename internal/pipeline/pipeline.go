package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pauta/internal/config"
	"pauta/internal/core"
	"pauta/internal/logger"
)

// Options are the aggregation thresholds, passed explicitly into every stage
// rather than read from ambient globals.
type Options struct {
	MinRelevanceScore   float64 // Relevance filter lower bound
	MinPercentile       float64 // Engagement percentile, fraction in [0,1]
	TrendingThreshold   float64 // Alta band boundary for trend scores
	EngagementThreshold float64 // High-engagement item boundary
	TopN                int     // Trending topic candidates
	MaxKeyFacts         int     // Sentence cap per topic
}

// OptionsFromConfig maps the loaded configuration onto pipeline options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MinRelevanceScore:   cfg.Processing.MinRelevanceScore,
		MinPercentile:       cfg.Processing.MinPercentile,
		TrendingThreshold:   cfg.Metrics.TrendingThreshold,
		EngagementThreshold: cfg.Metrics.EngagementThreshold,
		TopN:                cfg.Processing.TopN,
		MaxKeyFacts:         cfg.Processing.MaxKeyFacts,
	}
}

// Processor runs the aggregation pipeline over one collected snapshot. It is
// stateless between runs; Now is injectable so tests get stable timestamps.
type Processor struct {
	opts Options
	Now  func() time.Time
}

// NewProcessor creates a processor with the given options.
func NewProcessor(opts Options) *Processor {
	return &Processor{opts: opts, Now: time.Now}
}

// LoadItems reads one collector output file. Load failures degrade to an
// empty slice so one bad file never blocks the batch.
func (p *Processor) LoadItems(path string) []core.Item {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Failed to load data file", err, "path", path)
		return []core.Item{}
	}
	var items []core.Item
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Error("Failed to parse data file", err, "path", path)
		return []core.Item{}
	}
	logger.Info("Loaded data file", "path", path, "items", len(items))
	return items
}

// FindDataFiles locates per-source processed collector files under rawDir,
// one directory per source.
func (p *Processor) FindDataFiles(rawDir string) ([]string, error) {
	pattern := filepath.Join(rawDir, "*", "*_processed.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", rawDir, err)
	}
	return files, nil
}

// Consolidate runs the full pipeline over the items of all given files:
// relevance filter, engagement filter, topic grouping, trend extraction and
// key facts per trending topic. Empty input produces an empty, well-formed
// result.
func (p *Processor) Consolidate(dataFiles []string) core.ConsolidatedData {
	var all []core.Item
	for _, path := range dataFiles {
		all = append(all, p.LoadItems(path)...)
	}

	filtered := FilterByRelevance(all, p.opts.MinRelevanceScore)
	filtered = FilterByEngagement(filtered, p.opts.MinPercentile)

	topics := GroupByTopic(filtered)
	trending := ExtractTrendingTopics(filtered, p.opts.TopN)
	for i := range trending {
		trending[i].KeyFacts = ExtractKeyFacts(filtered, trending[i].Topic, p.opts.MaxKeyFacts)
	}

	return core.ConsolidatedData{
		TotalItems:     len(all),
		FilteredItems:  len(filtered),
		Topics:         topics,
		TrendingTopics: trending,
		ProcessedAt:    p.Now().UTC(),
	}
}

// Run consolidates every collector file under rawDir and persists the result
// as consolidated_data.json in processedDir.
func (p *Processor) Run(rawDir, processedDir string) (core.ConsolidatedData, error) {
	files, err := p.FindDataFiles(rawDir)
	if err != nil {
		return core.ConsolidatedData{}, err
	}
	if len(files) == 0 {
		logger.Warn("No processed collector files found", "dir", rawDir)
	}

	consolidated := p.Consolidate(files)

	outPath := filepath.Join(processedDir, "consolidated_data.json")
	if err := writeJSON(outPath, consolidated); err != nil {
		return consolidated, err
	}
	logger.Info("Consolidated data saved", "path", outPath,
		"total", consolidated.TotalItems, "filtered", consolidated.FilteredItems)
	return consolidated, nil
}

// writeJSON marshals v with indentation and writes it atomically enough for a
// batch run: directory creation plus a plain write.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
