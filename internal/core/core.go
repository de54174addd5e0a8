package core

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Source identifies the feed a content item was collected from.
type Source string

const (
	SourceG1        Source = "G1"
	SourceTwitter   Source = "Twitter"
	SourceInstagram Source = "Instagram"
)

// Trend status bands and recommendation priorities. The labels are part of
// the persisted JSON contract.
const (
	StatusAlta  = "Alta"
	StatusMedia = "Média"
	StatusBaixa = "Baixa"
)

// Engagement holds the raw interaction counts for an item plus the derived
// totals. Normalized is a pointer so that "not computed" can be told apart
// from a genuine zero: the pipeline uses the normalized value whenever the
// collector produced one, even if it is 0.
type Engagement struct {
	Retweets   int      `json:"retweet_count,omitempty"`         // Twitter retweets
	Favorites  int      `json:"favorite_count,omitempty"`        // Twitter likes
	Replies    int      `json:"reply_count,omitempty"`           // Twitter replies
	Quotes     int      `json:"quote_count,omitempty"`           // Twitter quote tweets
	Likes      int      `json:"likes,omitempty"`                 // Instagram likes
	Comments   int      `json:"comments,omitempty"`              // Instagram comments
	Total      float64  `json:"total_engagement"`                // Weighted sum of the raw counts
	Normalized *float64 `json:"normalized_engagement,omitempty"` // Total scaled by audience size, when known
}

// Item is a normalized content record from any source feed. Exactly one of
// Content, Text or Caption carries the free-text body, depending on the
// source (news article, tweet, Instagram post).
type Item struct {
	ID             string      `json:"id,omitempty"`         // Record identifier from the source, may be absent
	Source         Source      `json:"source"`               // Originating feed
	Title          string      `json:"title,omitempty"`      // Headline (news articles)
	Content        string      `json:"content,omitempty"`    // Article body
	Text           string      `json:"text,omitempty"`       // Tweet text
	Caption        string      `json:"caption,omitempty"`    // Instagram caption
	URL            string      `json:"url,omitempty"`        // Canonical URL, when the source has one
	Summary        string      `json:"summary,omitempty"`    // Frequency-scored extractive summary (news articles)
	Entities       []string    `json:"entities"`             // Capitalized-token entities from the text utility
	Hashtags       []string    `json:"hashtags,omitempty"`   // Hashtags, empty for non-social sources
	RelevanceScore float64     `json:"relevance_score"`      // Keyword relevance in [0,1]
	Engagement     *Engagement `json:"engagement,omitempty"` // Interaction metrics, absent for G1
	WordCount      int         `json:"word_count,omitempty"` // Words in the free-text body
	ProcessedAt    time.Time   `json:"processed_at"`         // When the collector normalized the record
}

// FreeText returns the item's free-text body: content, then text, then
// caption, first non-empty wins.
func (i Item) FreeText() string {
	if i.Content != "" {
		return i.Content
	}
	if i.Text != "" {
		return i.Text
	}
	return i.Caption
}

// EngagementValue returns the engagement figure used throughout the
// pipeline: normalized engagement when the collector computed one, else the
// raw total, else 0.
func (i Item) EngagementValue() float64 {
	if i.Engagement == nil {
		return 0
	}
	if i.Engagement.Normalized != nil {
		return *i.Engagement.Normalized
	}
	return i.Engagement.Total
}

// Key returns a stable identity for the item: the record's own ID when the
// source provided one, otherwise a content hash. Cluster membership checks
// must use this, never slice positions or pointer identity, so that two
// runs over the same snapshot classify items identically.
func (i Item) Key() string {
	if i.ID != "" {
		return i.ID
	}
	sum := sha256.Sum256([]byte(string(i.Source) + "\x00" + i.Title + "\x00" + i.FreeText()))
	return hex.EncodeToString(sum[:])
}

// TrendingTopic is a ranked topic candidate with its cluster-level
// aggregates. Count is the merged entity+hashtag frequency, which counts
// token occurrences and can therefore exceed RelatedItemsCount.
type TrendingTopic struct {
	Topic             string   `json:"topic"`               // Entity or hashtag token
	Count             int      `json:"count"`               // Merged occurrence frequency
	AvgEngagement     float64  `json:"avg_engagement"`      // Mean engagement value over related items
	Sources           []Source `json:"sources"`             // Distinct sources among related items
	RelatedItemsCount int      `json:"related_items_count"` // Distinct items mentioning the topic
	KeyFacts          []string `json:"key_facts"`           // Representative sentences, at most 10
}

// ConsolidatedData is the output of one aggregation pass over the collected
// snapshot, persisted as consolidated_data.json.
type ConsolidatedData struct {
	TotalItems     int               `json:"total_items"`     // Items loaded before filtering
	FilteredItems  int               `json:"filtered_items"`  // Items surviving both filters
	Topics         map[string][]Item `json:"topics"`          // Topic label to member items, including "outros"
	TrendingTopics []TrendingTopic   `json:"trending_topics"` // Ranked topic candidates
	ProcessedAt    time.Time         `json:"processed_at"`
}

// SourceStat is one row of the source distribution.
type SourceStat struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TopicInsight is a scored trending topic with its status band and a
// one-line human-readable summary.
type TopicInsight struct {
	Topic       string   `json:"topic"`
	Mentions    int      `json:"mentions"`     // Merged frequency from trend extraction
	Engagement  float64  `json:"engagement"`   // Average engagement over related items
	TrendScore  float64  `json:"trend_score"`  // mentions*0.6 + engagement*0.4
	TrendStatus string   `json:"trend_status"` // Alta, Média or Baixa
	Sources     []Source `json:"sources"`
	KeyFacts    []string `json:"key_facts"`
	Summary     string   `json:"summary"`
}

// SourceMetrics aggregates engagement per source over the cluster-weighted
// item population.
type SourceMetrics struct {
	TotalItems               int     `json:"total_items"`
	TotalEngagement          float64 `json:"total_engagement"`
	AvgEngagement            float64 `json:"avg_engagement"`
	HighEngagementItems      int     `json:"high_engagement_items"`
	HighEngagementPercentage float64 `json:"high_engagement_percentage"`
}

// Recommendation is a prioritized "write about this" suggestion handed to
// the drafting service.
type Recommendation struct {
	Topic          string   `json:"topic"`
	KeyFacts       []string `json:"key_facts"`
	Recommendation string   `json:"recommendation"` // Free-text rationale
	Priority       string   `json:"priority"`       // Alta or Média
}

// InsightBundle is the full set of insights derived from one consolidated
// snapshot, persisted as insights.json. It is immutable once produced:
// re-running the pipeline replaces the whole bundle.
type InsightBundle struct {
	SourceDistribution     map[Source]SourceStat    `json:"source_distribution"`
	TopicInsights          []TopicInsight           `json:"topic_insights"`
	EngagementMetrics      map[Source]SourceMetrics `json:"engagement_metrics"`
	ContentRecommendations []Recommendation         `json:"content_recommendations"`
	GeneratedAt            time.Time                `json:"generated_at"`
}

// Article is a drafted story produced by the content generation collaborator
// from a recommendation.
type Article struct {
	Topic       string    `json:"topic,omitempty"` // Recommendation topic the story was drafted from
	Materia     string    `json:"materia"`         // Story body
	Titulo      string    `json:"titulo"`
	Subtitulo   string    `json:"subtitulo"`
	Editoria    string    `json:"editoria"`
	Keywords    []string  `json:"keywords"`
	GeneratedAt time.Time `json:"generated_at"`
}

// CollectResult reports the outcome of one collector run. Failures are
// signaled by the Success flag and Message, never by aborting the batch.
type CollectResult struct {
	Source   Source `json:"source"`
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Items    []Item `json:"data"`
	FilePath string `json:"file_path"`
}
