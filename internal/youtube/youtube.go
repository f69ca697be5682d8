// Package youtube wraps the two YouTube Data API v3 calls the scanner
// needs: keyword video search and per-video comment listing.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Comment is one top-level comment from a comment thread.
type Comment struct {
	ID        string
	Author    string
	Text      string
	Published time.Time
}

// Searcher resolves candidate video ids for a keyword.
type Searcher interface {
	SearchVideos(ctx context.Context, keyword string, limit int) ([]string, error)
}

// Lister fetches the most recent comments for a video.
type Lister interface {
	ListComments(ctx context.Context, videoID string, limit int) ([]Comment, error)
}

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point at a local server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

// SearchVideos returns up to limit video ids for the keyword, in the
// API's relevance order. An empty response is not an error; it just
// yields no candidates for this cycle.
func (c *Client) SearchVideos(ctx context.Context, keyword string, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("q", keyword)
	q.Set("type", "video")
	q.Set("maxResults", fmt.Sprint(limit))
	q.Set("order", "relevance")
	q.Set("key", c.apiKey)

	var sr searchResponse
	if err := c.get(ctx, "/search", q, &sr); err != nil {
		return nil, fmt.Errorf("video search %q: %w", keyword, err)
	}

	ids := make([]string, 0, len(sr.Items))
	for _, item := range sr.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, nil
}

type commentThreadsResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					AuthorDisplayName string    `json:"authorDisplayName"`
					TextOriginal      string    `json:"textOriginal"`
					PublishedAt       time.Time `json:"publishedAt"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// ListComments returns up to limit most recent top-level comments for a
// video. Videos with comments disabled come back as an API error; the
// caller treats that as a skip, not a cycle failure.
func (c *Client) ListComments(ctx context.Context, videoID string, limit int) ([]Comment, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("videoId", videoID)
	q.Set("maxResults", fmt.Sprint(limit))
	q.Set("key", c.apiKey)

	var cr commentThreadsResponse
	if err := c.get(ctx, "/commentThreads", q, &cr); err != nil {
		return nil, fmt.Errorf("comment threads for %s: %w", videoID, err)
	}
	if cr.Error != nil {
		return nil, fmt.Errorf("comment threads for %s: API %d: %s", videoID, cr.Error.Code, cr.Error.Message)
	}

	comments := make([]Comment, 0, len(cr.Items))
	for _, item := range cr.Items {
		s := item.Snippet.TopLevelComment.Snippet
		comments = append(comments, Comment{
			ID:        item.ID,
			Author:    s.AuthorDisplayName,
			Text:      s.TextOriginal,
			Published: s.PublishedAt,
		})
	}
	return comments, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(b))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// CommentURL deep-links back to a comment under its video.
func CommentURL(videoID, commentID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s&lc=%s", videoID, commentID)
}
