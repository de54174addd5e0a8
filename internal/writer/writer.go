// Package writer drafts news stories from content recommendations through a
// text generation backend and validates the results.
package writer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pauta/internal/core"
	"pauta/internal/llm"
	"pauta/internal/logger"
)

// ArticlePromptTemplate instructs the model to draft one story. The response
// must carry Título/Subtítulo/Editoria header lines followed by the body.
const ArticlePromptTemplate = `Crie uma matéria jornalística completa sobre o seguinte tópico: %s

Fatos importantes:
%s

Regras:
- Seja objetivo, até %d parágrafos
- Mínimo de %d palavras
- Não use aspas
- Crie título, subtítulo e editoria
- Use foco no fato principal

Formato de saída:
Título: [título da matéria]
Subtítulo: [subtítulo da matéria]
Editoria: [editoria da matéria]

[Corpo da matéria com %d parágrafos]`

// KeywordsPromptTemplate asks for a comma-separated keyword list.
const KeywordsPromptTemplate = `Extraia exatamente %d palavras-chave relevantes do seguinte texto, retornando apenas as palavras separadas por vírgula, sem explicações adicionais:

%s`

const defaultKeywords = 5

// Writer drafts stories from recommendations.
type Writer struct {
	gen           llm.TextGenerator
	MinWords      int
	MaxParagraphs int
	Temperature   float64
	TopP          float64
	Now           func() time.Time
}

// NewWriter creates a writer over the given backend.
func NewWriter(gen llm.TextGenerator, minWords, maxParagraphs int, temperature, topP float64) *Writer {
	return &Writer{
		gen:           gen,
		MinWords:      minWords,
		MaxParagraphs: maxParagraphs,
		Temperature:   temperature,
		TopP:          topP,
		Now:           time.Now,
	}
}

// GenerateArticle drafts one story about a topic from its key facts.
func (w *Writer) GenerateArticle(ctx context.Context, topic string, facts []string) (core.Article, error) {
	factLines := make([]string, len(facts))
	for i, fact := range facts {
		factLines[i] = "- " + fact
	}
	prompt := fmt.Sprintf(ArticlePromptTemplate,
		topic, strings.Join(factLines, "\n"), w.MaxParagraphs, w.MinWords, w.MaxParagraphs)

	response, err := w.gen.Generate(ctx, prompt, llm.GenerateOptions{
		Temperature: w.Temperature,
		TopP:        w.TopP,
		MaxTokens:   2000,
	})
	if err != nil {
		return core.Article{}, fmt.Errorf("drafting story about %q: %w", topic, err)
	}

	article := ParseArticle(response)
	article.Topic = topic
	if article.Editoria == "" {
		article.Editoria = "Geral"
	}
	article.GeneratedAt = w.Now().UTC()

	keywords, err := w.ExtractKeywords(ctx, article.Materia, defaultKeywords)
	if err != nil {
		logger.Error("Keyword extraction failed", err, "topic", topic)
		keywords = []string{topic}
	}
	article.Keywords = keywords

	logger.Info("Story drafted", "topic", topic, "words", len(strings.Fields(article.Materia)))
	return article, nil
}

// ParseArticle splits a model response into header fields and body. Header
// lines may appear in any order before or between body paragraphs; every
// non-header line after the headers belongs to the body.
func ParseArticle(response string) core.Article {
	var article core.Article
	var body []string
	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Título:"):
			article.Titulo = strings.TrimSpace(strings.TrimPrefix(trimmed, "Título:"))
		case strings.HasPrefix(trimmed, "Subtítulo:"):
			article.Subtitulo = strings.TrimSpace(strings.TrimPrefix(trimmed, "Subtítulo:"))
		case strings.HasPrefix(trimmed, "Editoria:"):
			article.Editoria = strings.TrimSpace(strings.TrimPrefix(trimmed, "Editoria:"))
		default:
			body = append(body, line)
		}
	}
	article.Materia = strings.TrimSpace(strings.Join(body, "\n"))
	return article
}

// ExtractKeywords asks the backend for n keywords of the text.
func (w *Writer) ExtractKeywords(ctx context.Context, text string, n int) ([]string, error) {
	response, err := w.gen.Generate(ctx, fmt.Sprintf(KeywordsPromptTemplate, n, text), llm.GenerateOptions{
		Temperature: w.Temperature,
	})
	if err != nil {
		return nil, err
	}
	var keywords []string
	for _, kw := range strings.Split(response, ",") {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) > n {
		keywords = keywords[:n]
	}
	return keywords, nil
}

// GenerateFromRecommendations drafts stories for the recommendation list,
// high priority first, up to maxArticles. Per-topic failures are logged and
// skipped.
func (w *Writer) GenerateFromRecommendations(ctx context.Context, recommendations []core.Recommendation, maxArticles int) []core.Article {
	ordered := make([]core.Recommendation, 0, len(recommendations))
	for _, rec := range recommendations {
		if rec.Priority == core.StatusAlta {
			ordered = append(ordered, rec)
		}
	}
	for _, rec := range recommendations {
		if rec.Priority != core.StatusAlta {
			ordered = append(ordered, rec)
		}
	}

	articles := make([]core.Article, 0, maxArticles)
	for _, rec := range ordered {
		if len(articles) == maxArticles {
			break
		}
		article, err := w.GenerateArticle(ctx, rec.Topic, rec.KeyFacts)
		if err != nil {
			logger.Error("Failed to draft story", err, "topic", rec.Topic)
			continue
		}
		articles = append(articles, article)
	}
	return articles
}

// Save persists the drafted stories as materias.json under processedDir.
func (w *Writer) Save(articles []core.Article, processedDir string) (string, error) {
	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(processedDir, "materias.json")
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling stories: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("Stories saved", "path", path, "count", len(articles))
	return path, nil
}
