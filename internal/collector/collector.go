package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pauta/internal/core"
	"pauta/internal/logger"
)

// relevanceKeywords score every collected record, whatever the source.
var relevanceKeywords = []string{"política", "entretenimento", "notícias"}

// Batch is one collector run: the source-specific raw records persisted
// verbatim, plus the normalized items handed to the pipeline.
type Batch struct {
	Raw      any
	RawCount int
	Items    []core.Item
}

// Collector gathers and normalizes content from one source feed.
type Collector interface {
	Source() core.Source
	Run(ctx context.Context) (Batch, error)
}

// Runner executes collectors and persists their output under the raw data
// directory, one subdirectory per source with <source>_raw.json and
// <source>_processed.json files.
type Runner struct {
	RawDir string
}

// NewRunner creates a runner writing under rawDir.
func NewRunner(rawDir string) *Runner {
	return &Runner{RawDir: rawDir}
}

// Collect runs one collector and saves its output. Failures never abort the
// batch: they come back as an unsuccessful result with a human-readable
// message.
func (r *Runner) Collect(ctx context.Context, c Collector) core.CollectResult {
	source := c.Source()
	logger.Info("Collecting data", "source", source)

	batch, err := c.Run(ctx)
	if err != nil {
		logger.Error("Collection failed", err, "source", source)
		return core.CollectResult{
			Source:  source,
			Message: fmt.Sprintf("Erro: %v", err),
			Items:   []core.Item{},
		}
	}
	if len(batch.Items) == 0 {
		logger.Warn("No data collected", "source", source)
		return core.CollectResult{
			Source:  source,
			Message: "Nenhum dado coletado",
			Items:   []core.Item{},
		}
	}

	sourceDir := filepath.Join(r.RawDir, strings.ToLower(string(source)))
	prefix := strings.ToLower(string(source))
	if err := saveJSON(filepath.Join(sourceDir, prefix+"_raw.json"), batch.Raw); err != nil {
		logger.Error("Failed to save raw data", err, "source", source)
	}

	processedPath := filepath.Join(sourceDir, prefix+"_processed.json")
	if err := saveJSON(processedPath, batch.Items); err != nil {
		logger.Error("Failed to save processed data", err, "source", source)
		return core.CollectResult{
			Source:  source,
			Message: fmt.Sprintf("Erro: %v", err),
			Items:   batch.Items,
		}
	}

	return core.CollectResult{
		Source:   source,
		Success:  true,
		Message:  fmt.Sprintf("Coletados %d itens, processados %d itens", batch.RawCount, len(batch.Items)),
		Items:    batch.Items,
		FilePath: processedPath,
	}
}

// CollectAll runs every collector in order, never stopping on failure.
func (r *Runner) CollectAll(ctx context.Context, collectors []Collector) []core.CollectResult {
	results := make([]core.CollectResult, 0, len(collectors))
	for _, c := range collectors {
		results = append(results, r.Collect(ctx, c))
	}
	return results
}

// sortItemsBy sorts items descending by the given score, keeping collection
// order for ties.
func sortItemsBy(items []core.Item, score func(core.Item) float64) {
	sort.SliceStable(items, func(a, b int) bool {
		return score(items[a]) > score(items[b])
	})
}

// socialRank orders social posts by normalized engagement blended with
// relevance.
func socialRank(i core.Item) float64 {
	normalized := 0.0
	if i.Engagement != nil && i.Engagement.Normalized != nil {
		normalized = *i.Engagement.Normalized
	}
	return normalized*0.7 + i.RelevanceScore*0.3
}

func saveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("Data saved", "path", path)
	return nil
}
