package channelfeed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns="http://www.w3.org/2005/Atom">
  <title>Uploads</title>
  <entry>
    <id>yt:video:abc123</id>
    <yt:videoId>abc123</yt:videoId>
    <title>Official Trailer</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123"/>
  </entry>
  <entry>
    <id>yt:video:def456</id>
    <yt:videoId>def456</yt:videoId>
    <title>Behind the Scenes</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=def456"/>
  </entry>
</feed>`

func testFetcher(srvURL string) *Fetcher {
	f := NewFetcher()
	f.feedURL = func(channelID string) string {
		return fmt.Sprintf("%s/feeds/videos.xml?channel_id=%s", srvURL, channelID)
	}
	return f
}

func TestFetchParsesVideoIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	ids, err := testFetcher(srv.URL).Fetch(context.Background(), "UCchan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "abc123" || ids[1] != "def456" {
		t.Errorf("unexpected ids: %v", ids)
	}
}

func TestFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := testFetcher(srv.URL).Fetch(context.Background(), "UCchan"); err == nil {
		t.Error("expected error for failing feed")
	}
}

func TestFetchAllCollectsAcrossChannels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("channel_id") == "UCbroken" {
			http.Error(w, "gone", http.StatusGone)
			return
		}
		w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	result := FetchAll(context.Background(), testFetcher(srv.URL), []string{"UCone", "UCbroken", "UCtwo"})
	if len(result.VideoIDs) != 4 {
		t.Errorf("expected 4 video ids from the two healthy channels, got %d", len(result.VideoIDs))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error from the broken channel, got %d", len(result.Errors))
	}
}
