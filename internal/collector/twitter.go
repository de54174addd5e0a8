package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"pauta/internal/config"
	"pauta/internal/core"
	"pauta/internal/logger"
	"pauta/internal/textutil"
)

// TwitterCollector searches recent tweets for the configured terms through
// the Twitter API v2 with an application bearer token.
type TwitterCollector struct {
	cfg     config.TwitterConfig
	baseURL string
	client  *http.Client
	Now     func() time.Time
}

// RawTweet is one tweet from the search response.
type RawTweet struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	AuthorID      string `json:"author_id"`
	CreatedAt     string `json:"created_at"`
	PublicMetrics struct {
		RetweetCount int `json:"retweet_count"`
		ReplyCount   int `json:"reply_count"`
		LikeCount    int `json:"like_count"`
		QuoteCount   int `json:"quote_count"`
	} `json:"public_metrics"`
	Entities struct {
		Hashtags []struct {
			Tag string `json:"tag"`
		} `json:"hashtags"`
	} `json:"entities"`
}

type twitterUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	PublicMetrics struct {
		FollowersCount int `json:"followers_count"`
	} `json:"public_metrics"`
}

type twitterSearchResponse struct {
	Data     []RawTweet `json:"data"`
	Includes struct {
		Users []twitterUser `json:"users"`
	} `json:"includes"`
}

// NewTwitterCollector creates a Twitter collector.
func NewTwitterCollector(cfg config.TwitterConfig) *TwitterCollector {
	return &TwitterCollector{
		cfg:     cfg,
		baseURL: "https://api.twitter.com/2",
		client:  &http.Client{Timeout: 10 * time.Second},
		Now:     time.Now,
	}
}

// Source implements Collector.
func (t *TwitterCollector) Source() core.Source { return core.SourceTwitter }

// Run searches every configured term, deduplicates by tweet ID and
// normalizes the survivors. Per-term failures are logged and skipped.
func (t *TwitterCollector) Run(ctx context.Context) (Batch, error) {
	if t.cfg.BearerToken == "" {
		return Batch{}, fmt.Errorf("twitter bearer token not configured")
	}

	perTerm := t.cfg.MaxTweets
	if len(t.cfg.SearchTerms) > 0 {
		perTerm = t.cfg.MaxTweets / len(t.cfg.SearchTerms)
	}
	if perTerm > 100 {
		perTerm = 100
	}

	var tweets []RawTweet
	followers := make(map[string]int)
	seen := make(map[string]struct{})
	for _, term := range t.cfg.SearchTerms {
		resp, err := t.search(ctx, term, perTerm)
		if err != nil {
			logger.Error("Tweet search failed", err, "term", term)
			continue
		}
		for _, user := range resp.Includes.Users {
			followers[user.ID] = user.PublicMetrics.FollowersCount
		}
		for _, tweet := range resp.Data {
			if _, ok := seen[tweet.ID]; ok {
				continue
			}
			seen[tweet.ID] = struct{}{}
			tweets = append(tweets, tweet)
		}
		logger.Info("Tweets found", "term", term, "count", len(resp.Data))
	}

	return Batch{
		Raw:      tweets,
		RawCount: len(tweets),
		Items:    t.process(tweets, followers),
	}, nil
}

// search queries the recent search endpoint for one term.
func (t *TwitterCollector) search(ctx context.Context, term string, count int) (*twitterSearchResponse, error) {
	if count < 10 {
		count = 10
	}
	params := url.Values{}
	params.Set("query", term+" lang:pt -is:retweet")
	params.Set("max_results", fmt.Sprintf("%d", count))
	params.Set("tweet.fields", "public_metrics,created_at,entities")
	params.Set("expansions", "author_id")
	params.Set("user.fields", "public_metrics")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		t.baseURL+"/tweets/search/recent?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+t.cfg.BearerToken)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twitter API returned status %d", resp.StatusCode)
	}
	var search twitterSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, err
	}
	return &search, nil
}

// process normalizes tweets: weighted engagement score, audience-scaled
// normalization, entity extraction and relevance, sorted by blended
// engagement and relevance. Tweets without text are skipped.
func (t *TwitterCollector) process(tweets []RawTweet, followers map[string]int) []core.Item {
	items := make([]core.Item, 0, len(tweets))
	for _, tweet := range tweets {
		if tweet.Text == "" {
			continue
		}
		cleaned := textutil.CleanText(tweet.Text)

		total := float64(tweet.PublicMetrics.RetweetCount)*2 +
			float64(tweet.PublicMetrics.LikeCount) +
			float64(tweet.PublicMetrics.ReplyCount)*1.5 +
			float64(tweet.PublicMetrics.QuoteCount)*1.5
		normalized := 0.0
		if f := followers[tweet.AuthorID]; f > 0 {
			normalized = total / math.Sqrt(float64(f))
		}

		hashtags := make([]string, 0, len(tweet.Entities.Hashtags))
		for _, h := range tweet.Entities.Hashtags {
			hashtags = append(hashtags, h.Tag)
		}
		if len(hashtags) == 0 {
			hashtags = textutil.ExtractHashtags(tweet.Text)
		}

		items = append(items, core.Item{
			ID:     tweet.ID,
			Source: core.SourceTwitter,
			Text:   cleaned,
			Engagement: &core.Engagement{
				Retweets:   tweet.PublicMetrics.RetweetCount,
				Favorites:  tweet.PublicMetrics.LikeCount,
				Replies:    tweet.PublicMetrics.ReplyCount,
				Quotes:     tweet.PublicMetrics.QuoteCount,
				Total:      total,
				Normalized: &normalized,
			},
			Entities:       textutil.ExtractEntities(cleaned),
			Hashtags:       hashtags,
			RelevanceScore: textutil.RelevanceScore(cleaned, relevanceKeywords),
			WordCount:      textutil.WordCount(cleaned),
			ProcessedAt:    t.Now(),
		})
	}
	sortItemsBy(items, socialRank)
	logger.Info("Processed tweets", "count", len(items))
	return items
}
