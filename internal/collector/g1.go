package collector

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"pauta/internal/config"
	"pauta/internal/core"
	"pauta/internal/logger"
	"pauta/internal/textutil"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// summarySentences is how many sentences the article summary keeps.
const summarySentences = 3

// G1Collector scrapes news articles from the G1 portal category pages.
type G1Collector struct {
	cfg    config.G1Config
	client *http.Client
	Now    func() time.Time
}

// RawArticle is one scraped article before normalization.
type RawArticle struct {
	Title         string    `json:"title"`
	Subtitle      string    `json:"subtitle"`
	Content       string    `json:"content"`
	URL           string    `json:"url"`
	PublishedDate string    `json:"published_date"`
	Author        string    `json:"author"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"image_url"`
	Source        string    `json:"source"`
	CollectedAt   time.Time `json:"collected_at"`
}

// NewG1Collector creates a G1 collector.
func NewG1Collector(cfg config.G1Config) *G1Collector {
	return &G1Collector{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		Now:    time.Now,
	}
}

// Source implements Collector.
func (g *G1Collector) Source() core.Source { return core.SourceG1 }

// categoryPath maps a configured category name to its section path.
var categoryPath = map[string]string{
	"politica":       "/politica/",
	"economia":       "/economia/",
	"entretenimento": "/pop-arte/",
	"tecnologia":     "/tecnologia/",
	"esportes":       "/esporte/",
	"educacao":       "/educacao/",
	"saude":          "/ciencia-e-saude/",
	"mundo":          "/mundo/",
}

func (g *G1Collector) categoryURL(category string) string {
	if path, ok := categoryPath[strings.ToLower(category)]; ok {
		return g.cfg.BaseURL + path
	}
	return g.cfg.BaseURL
}

// Run scrapes every configured category, then normalizes the articles.
// Per-category failures are logged and skipped.
func (g *G1Collector) Run(ctx context.Context) (Batch, error) {
	var articles []RawArticle
	for _, category := range g.cfg.Categories {
		collected, err := g.collectCategory(ctx, category)
		if err != nil {
			logger.Error("Failed to collect category", err, "category", category)
			continue
		}
		articles = append(articles, collected...)
	}

	return Batch{
		Raw:      articles,
		RawCount: len(articles),
		Items:    g.process(articles),
	}, nil
}

// collectCategory scrapes the article links of one category page and fetches
// each article.
func (g *G1Collector) collectCategory(ctx context.Context, category string) ([]RawArticle, error) {
	url := g.categoryURL(category)
	doc, err := g.fetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	var links []string
	doc.Find("div.feed-post a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		if !strings.HasPrefix(href, "http") {
			href = "https:" + href
		}
		links = append(links, href)
	})

	perCategory := g.cfg.MaxArticles / len(g.cfg.Categories)
	if len(links) > perCategory {
		links = links[:perCategory]
	}
	logger.Info("Found category articles", "category", category, "count", len(links))

	var articles []RawArticle
	for _, link := range links {
		article, err := g.fetchArticle(ctx, link)
		if err != nil {
			logger.Error("Failed to fetch article", err, "url", link)
			continue
		}
		if article.Title != "" {
			articles = append(articles, article)
		}
	}
	return articles, nil
}

// fetchArticle scrapes one article page.
func (g *G1Collector) fetchArticle(ctx context.Context, url string) (RawArticle, error) {
	doc, err := g.fetchDocument(ctx, url)
	if err != nil {
		return RawArticle{}, err
	}

	var paragraphs []string
	doc.Find("div.content-text p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	article := RawArticle{
		Title:         strings.TrimSpace(doc.Find("h1.content-head__title").First().Text()),
		Subtitle:      strings.TrimSpace(doc.Find("h2.content-head__subtitle").First().Text()),
		Content:       strings.Join(paragraphs, " "),
		URL:           url,
		PublishedDate: strings.TrimSpace(doc.Find("time.content-publication-data__updated").First().Text()),
		Author:        strings.TrimSpace(doc.Find("p.content-publication-data__from").First().Text()),
		Source:        string(core.SourceG1),
		CollectedAt:   g.Now(),
	}
	if img := doc.Find("figure.content-media__image img").First(); img.Length() > 0 {
		article.ImageURL, _ = img.Attr("src")
	}
	if crumbs := doc.Find("div.breadcrumb a"); crumbs.Length() > 1 {
		article.Category = strings.TrimSpace(crumbs.Eq(1).Text())
	}
	return article, nil
}

func (g *G1Collector) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// process normalizes scraped articles: clean text, entities, relevance,
// sorted by relevance descending. Articles without content are skipped.
func (g *G1Collector) process(articles []RawArticle) []core.Item {
	items := make([]core.Item, 0, len(articles))
	for _, article := range articles {
		if article.Content == "" {
			continue
		}
		cleaned := textutil.CleanText(article.Content)
		items = append(items, core.Item{
			ID:             uuid.NewString(),
			Source:         core.SourceG1,
			Title:          article.Title,
			Content:        cleaned,
			Summary:        textutil.Summarize(cleaned, summarySentences),
			URL:            article.URL,
			Entities:       textutil.ExtractEntities(cleaned),
			RelevanceScore: textutil.RelevanceScore(cleaned, relevanceKeywords),
			WordCount:      textutil.WordCount(cleaned),
			ProcessedAt:    g.Now(),
		})
	}
	sortItemsBy(items, func(i core.Item) float64 { return i.RelevanceScore })
	logger.Info("Processed articles", "count", len(items))
	return items
}
