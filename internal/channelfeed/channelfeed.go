// Package channelfeed discovers video ids from watched channels via
// YouTube's public video RSS feeds. It supplements keyword search so the
// subject's own uploads are always in the tracked set, without spending
// API quota.
package channelfeed

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/mmcdole/gofeed"
)

const feedURLFormat = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"

// VideoSource yields the video ids currently in a channel's feed.
type VideoSource interface {
	Fetch(ctx context.Context, channelID string) ([]string, error)
}

type Fetcher struct {
	parser  *gofeed.Parser
	feedURL func(channelID string) string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		parser: gofeed.NewParser(),
		feedURL: func(channelID string) string {
			return fmt.Sprintf(feedURLFormat, url.QueryEscape(channelID))
		},
	}
}

// Fetch returns the video ids in a channel's upload feed, newest first.
func (f *Fetcher) Fetch(ctx context.Context, channelID string) ([]string, error) {
	feed, err := f.parser.ParseURLWithContext(f.feedURL(channelID), ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching channel feed %s: %w", channelID, err)
	}

	ids := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if id := videoID(item); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// videoID pulls the id from the yt:videoId extension, falling back to
// the watch link's v parameter.
func videoID(item *gofeed.Item) string {
	if exts, ok := item.Extensions["yt"]; ok {
		if vals, ok := exts["videoId"]; ok && len(vals) > 0 {
			return vals[0].Value
		}
	}
	u, err := url.Parse(item.Link)
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}

// Result collects the outcome of fetching every watched channel.
type Result struct {
	VideoIDs []string
	Errors   []error
}

// FetchAll fetches all watched channel feeds concurrently. A failing
// channel contributes an error but never blocks the others.
func FetchAll(ctx context.Context, src VideoSource, channelIDs []string) Result {
	var (
		mu     sync.Mutex
		result Result
		wg     sync.WaitGroup
	)

	for _, id := range channelIDs {
		wg.Add(1)
		go func(channelID string) {
			defer wg.Done()
			ids, err := src.Fetch(ctx, channelID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, err)
				return
			}
			result.VideoIDs = append(result.VideoIDs, ids...)
		}(id)
	}

	wg.Wait()
	return result
}
