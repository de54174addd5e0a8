package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pauta/internal/config"
	"pauta/internal/core"
)

type fakeCollector struct {
	source core.Source
	batch  Batch
	err    error
}

func (f *fakeCollector) Source() core.Source { return f.source }
func (f *fakeCollector) Run(ctx context.Context) (Batch, error) {
	return f.batch, f.err
}

func TestRunnerCollectSavesFiles(t *testing.T) {
	dir := t.TempDir()
	runner := NewRunner(dir)

	items := []core.Item{{ID: "1", Source: core.SourceG1, Content: "conteúdo"}}
	result := runner.Collect(context.Background(), &fakeCollector{
		source: core.SourceG1,
		batch:  Batch{Raw: []string{"bruto"}, RawCount: 1, Items: items},
	})

	if !result.Success {
		t.Fatalf("result not successful: %s", result.Message)
	}
	if result.Message != "Coletados 1 itens, processados 1 itens" {
		t.Errorf("message = %q", result.Message)
	}
	for _, name := range []string{"g1_raw.json", "g1_processed.json"} {
		if _, err := os.Stat(filepath.Join(dir, "g1", name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
	if result.FilePath != filepath.Join(dir, "g1", "g1_processed.json") {
		t.Errorf("FilePath = %q", result.FilePath)
	}
}

func TestRunnerCollectFailureIsSoft(t *testing.T) {
	runner := NewRunner(t.TempDir())
	result := runner.Collect(context.Background(), &fakeCollector{
		source: core.SourceTwitter,
		err:    errors.New("rede indisponível"),
	})
	if result.Success {
		t.Error("failed collection must not report success")
	}
	if result.Message == "" {
		t.Error("failure must carry a message")
	}
	if result.Items == nil || len(result.Items) != 0 {
		t.Errorf("failure must carry an empty item list, got %v", result.Items)
	}
}

func TestRunnerCollectEmptyBatch(t *testing.T) {
	runner := NewRunner(t.TempDir())
	result := runner.Collect(context.Background(), &fakeCollector{source: core.SourceInstagram})
	if result.Success {
		t.Error("empty collection must not report success")
	}
	if result.Message != "Nenhum dado coletado" {
		t.Errorf("message = %q", result.Message)
	}
}

func TestTwitterProcess(t *testing.T) {
	c := NewTwitterCollector(config.TwitterConfig{})
	c.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	tweet := RawTweet{ID: "t1", AuthorID: "u1", Text: "Lula falou de política hoje #politica"}
	tweet.PublicMetrics.RetweetCount = 10
	tweet.PublicMetrics.LikeCount = 5
	tweet.PublicMetrics.ReplyCount = 2
	tweet.PublicMetrics.QuoteCount = 2

	items := c.process([]RawTweet{tweet}, map[string]int{"u1": 400})
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	item := items[0]

	// 10*2 + 5 + 2*1.5 + 2*1.5 = 31; normalized by sqrt(400) = 20.
	if item.Engagement.Total != 31 {
		t.Errorf("Total = %v, want 31", item.Engagement.Total)
	}
	if item.Engagement.Normalized == nil || *item.Engagement.Normalized != 31.0/20 {
		t.Errorf("Normalized = %v, want 1.55", item.Engagement.Normalized)
	}
	if item.Source != core.SourceTwitter || item.ID != "t1" {
		t.Errorf("identity not carried over: %+v", item)
	}
	if len(item.Hashtags) != 1 || item.Hashtags[0] != "politica" {
		t.Errorf("Hashtags = %v, want [politica]", item.Hashtags)
	}
}

func TestTwitterProcessNoFollowersNormalizesToZero(t *testing.T) {
	c := NewTwitterCollector(config.TwitterConfig{})
	tweet := RawTweet{ID: "t1", AuthorID: "u1", Text: "um texto qualquer de teste"}
	tweet.PublicMetrics.LikeCount = 50

	items := c.process([]RawTweet{tweet}, nil)
	if items[0].Engagement.Normalized == nil {
		t.Fatal("Normalized must be present even without follower data")
	}
	if *items[0].Engagement.Normalized != 0 {
		t.Errorf("Normalized = %v, want 0", *items[0].Engagement.Normalized)
	}
}

func TestTwitterProcessSkipsEmptyText(t *testing.T) {
	c := NewTwitterCollector(config.TwitterConfig{})
	items := c.process([]RawTweet{{ID: "t1"}}, nil)
	if len(items) != 0 {
		t.Errorf("empty tweets must be skipped, got %d items", len(items))
	}
}

func TestTwitterSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token123" {
			t.Errorf("Authorization = %q", got)
		}
		fmt.Fprint(w, `{"data":[{"id":"1","text":"oi","author_id":"u1",
			"public_metrics":{"retweet_count":1,"reply_count":0,"like_count":2,"quote_count":0}}],
			"includes":{"users":[{"id":"u1","username":"g1","public_metrics":{"followers_count":100}}]}}`)
	}))
	defer server.Close()

	c := NewTwitterCollector(config.TwitterConfig{
		BearerToken: "token123",
		SearchTerms: []string{"política"},
		MaxTweets:   10,
	})
	c.baseURL = server.URL

	batch, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if batch.RawCount != 1 || len(batch.Items) != 1 {
		t.Fatalf("batch = %d raw, %d items; want 1/1", batch.RawCount, len(batch.Items))
	}
}

func TestTwitterRunWithoutTokenFails(t *testing.T) {
	c := NewTwitterCollector(config.TwitterConfig{})
	if _, err := c.Run(context.Background()); err == nil {
		t.Error("missing bearer token must fail the run")
	}
}

func TestInstagramProcess(t *testing.T) {
	c := NewInstagramCollector(config.InstagramConfig{})
	post := RawPost{
		ID:       "p1",
		Caption:  "Cobertura de política no Congresso #politica",
		Likes:    30,
		Comments: 10,
		Hashtags: []string{"politica"},
	}
	post.Profile.Followers = 2500

	items := c.process([]RawPost{post})
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	item := items[0]
	// 30 + 10*2 = 50; normalized by sqrt(2500) = 50.
	if item.Engagement.Total != 50 {
		t.Errorf("Total = %v, want 50", item.Engagement.Total)
	}
	if item.Engagement.Normalized == nil || *item.Engagement.Normalized != 1 {
		t.Errorf("Normalized = %v, want 1", item.Engagement.Normalized)
	}
	if item.Source != core.SourceInstagram {
		t.Errorf("Source = %v", item.Source)
	}
}

func TestG1ProcessSortsByRelevance(t *testing.T) {
	c := NewG1Collector(config.G1Config{})
	c.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	articles := []RawArticle{
		{Title: "Previsão", Content: "Chuva forte atinge o litoral durante o feriado prolongado."},
		{Title: "Congresso", Content: "Notícias de política: votação de política movimenta o Congresso."},
		{Title: "Vazio"},
	}
	items := c.process(articles)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (empty content skipped)", len(items))
	}
	if items[0].Title != "Congresso" {
		t.Errorf("first item = %q, want the most relevant", items[0].Title)
	}
	if items[0].ID == "" || items[1].ID == "" {
		t.Error("processed articles must carry generated IDs")
	}
}

func TestG1CollectCategory(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/politica/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body>
			<div class="feed-post"><a href="%s/noticia/1"></a></div>
		</body></html>`, server.URL)
	})
	mux.HandleFunc("/noticia/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<h1 class="content-head__title">Votação no Congresso</h1>
			<h2 class="content-head__subtitle">Plenário decide hoje</h2>
			<div class="content-text"><p>A votação de política aconteceu.</p><p>O plenário seguiu dividido.</p></div>
		</body></html>`)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	c := NewG1Collector(config.G1Config{
		BaseURL:     server.URL,
		Categories:  []string{"politica"},
		MaxArticles: 10,
	})

	batch, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if batch.RawCount != 1 {
		t.Fatalf("collected %d articles, want 1", batch.RawCount)
	}
	raw := batch.Raw.([]RawArticle)
	if raw[0].Title != "Votação no Congresso" {
		t.Errorf("title = %q", raw[0].Title)
	}
	if raw[0].Content != "A votação de política aconteceu. O plenário seguiu dividido." {
		t.Errorf("content = %q", raw[0].Content)
	}
}
