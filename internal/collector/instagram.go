package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"pauta/internal/config"
	"pauta/internal/core"
	"pauta/internal/logger"
	"pauta/internal/textutil"
)

// InstagramCollector fetches recent posts of the configured profiles through
// Instagram's public web profile endpoint.
type InstagramCollector struct {
	cfg     config.InstagramConfig
	baseURL string
	client  *http.Client
	Now     func() time.Time
}

// RawPost is one Instagram post before normalization.
type RawPost struct {
	ID       string   `json:"id"`
	Caption  string   `json:"caption"`
	URL      string   `json:"url"`
	Date     string   `json:"date"`
	Likes    int      `json:"likes"`
	Comments int      `json:"comments"`
	Hashtags []string `json:"hashtags"`
	Profile  struct {
		Username  string `json:"username"`
		Followers int    `json:"followers"`
	} `json:"profile"`
}

type instagramProfileResponse struct {
	Data struct {
		User struct {
			EdgeFollowedBy struct {
				Count int `json:"count"`
			} `json:"edge_followed_by"`
			EdgeOwnerToTimelineMedia struct {
				Edges []struct {
					Node struct {
						ID                 string `json:"id"`
						Shortcode          string `json:"shortcode"`
						TakenAtTimestamp   int64  `json:"taken_at_timestamp"`
						EdgeMediaToCaption struct {
							Edges []struct {
								Node struct {
									Text string `json:"text"`
								} `json:"node"`
							} `json:"edges"`
						} `json:"edge_media_to_caption"`
						EdgeLikedBy struct {
							Count int `json:"count"`
						} `json:"edge_liked_by"`
						EdgeMediaToComment struct {
							Count int `json:"count"`
						} `json:"edge_media_to_comment"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"edge_owner_to_timeline_media"`
		} `json:"user"`
	} `json:"data"`
}

// NewInstagramCollector creates an Instagram collector.
func NewInstagramCollector(cfg config.InstagramConfig) *InstagramCollector {
	return &InstagramCollector{
		cfg:     cfg,
		baseURL: "https://www.instagram.com",
		client:  &http.Client{Timeout: 15 * time.Second},
		Now:     time.Now,
	}
}

// Source implements Collector.
func (ig *InstagramCollector) Source() core.Source { return core.SourceInstagram }

// Run fetches the configured profiles' recent posts, deduplicates by post ID
// and normalizes the survivors. Per-profile failures are logged and skipped.
func (ig *InstagramCollector) Run(ctx context.Context) (Batch, error) {
	perProfile := ig.cfg.MaxPosts
	if len(ig.cfg.Profiles) > 0 {
		perProfile = ig.cfg.MaxPosts / len(ig.cfg.Profiles)
	}

	var posts []RawPost
	seen := make(map[string]struct{})
	for _, profile := range ig.cfg.Profiles {
		fetched, err := ig.fetchProfilePosts(ctx, profile, perProfile)
		if err != nil {
			logger.Error("Failed to collect profile posts", err, "profile", profile)
			continue
		}
		for _, post := range fetched {
			if _, ok := seen[post.ID]; ok {
				continue
			}
			seen[post.ID] = struct{}{}
			posts = append(posts, post)
		}
		logger.Info("Posts collected", "profile", profile, "count", len(fetched))
	}

	return Batch{
		Raw:      posts,
		RawCount: len(posts),
		Items:    ig.process(posts),
	}, nil
}

// fetchProfilePosts loads one profile's timeline.
func (ig *InstagramCollector) fetchProfilePosts(ctx context.Context, username string, limit int) ([]RawPost, error) {
	url := fmt.Sprintf("%s/api/v1/users/web_profile_info/?username=%s", ig.baseURL, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-IG-App-ID", "936619743392459")

	resp, err := ig.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("instagram returned status %d for %s", resp.StatusCode, username)
	}
	var profile instagramProfileResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}

	user := profile.Data.User
	edges := user.EdgeOwnerToTimelineMedia.Edges
	if limit > 0 && len(edges) > limit {
		edges = edges[:limit]
	}

	posts := make([]RawPost, 0, len(edges))
	for _, edge := range edges {
		node := edge.Node
		caption := ""
		if len(node.EdgeMediaToCaption.Edges) > 0 {
			caption = node.EdgeMediaToCaption.Edges[0].Node.Text
		}
		post := RawPost{
			ID:       node.ID,
			Caption:  caption,
			URL:      fmt.Sprintf("%s/p/%s/", ig.baseURL, node.Shortcode),
			Date:     time.Unix(node.TakenAtTimestamp, 0).UTC().Format(time.RFC3339),
			Likes:    node.EdgeLikedBy.Count,
			Comments: node.EdgeMediaToComment.Count,
			Hashtags: textutil.ExtractHashtags(caption),
		}
		post.Profile.Username = username
		post.Profile.Followers = user.EdgeFollowedBy.Count
		posts = append(posts, post)
	}
	return posts, nil
}

// process normalizes posts: likes plus double-weighted comments,
// audience-scaled normalization, entity extraction and relevance, sorted by
// blended engagement and relevance. Posts without a caption are skipped.
func (ig *InstagramCollector) process(posts []RawPost) []core.Item {
	items := make([]core.Item, 0, len(posts))
	for _, post := range posts {
		if post.Caption == "" {
			continue
		}
		cleaned := textutil.CleanText(post.Caption)

		total := float64(post.Likes) + float64(post.Comments)*2
		normalized := 0.0
		if post.Profile.Followers > 0 {
			normalized = total / math.Sqrt(float64(post.Profile.Followers))
		}

		items = append(items, core.Item{
			ID:      post.ID,
			Source:  core.SourceInstagram,
			Caption: cleaned,
			URL:     post.URL,
			Engagement: &core.Engagement{
				Likes:      post.Likes,
				Comments:   post.Comments,
				Total:      total,
				Normalized: &normalized,
			},
			Entities:       textutil.ExtractEntities(cleaned),
			Hashtags:       post.Hashtags,
			RelevanceScore: textutil.RelevanceScore(cleaned, relevanceKeywords),
			WordCount:      textutil.WordCount(cleaned),
			ProcessedAt:    ig.Now(),
		})
	}
	sortItemsBy(items, socialRank)
	logger.Info("Processed posts", "count", len(items))
	return items
}
