package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ALOKESHWARGOUD/repscan/internal/intercept"
	"github.com/ALOKESHWARGOUD/repscan/internal/sentiment"
)

func testArchive(t *testing.T) (*Archive, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	a, err := Open(path)
	if err != nil {
		t.Fatalf("opening test archive: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a, path
}

func sampleSignals() []intercept.Signal {
	return []intercept.Signal{
		{ID: "c1", Author: "viewer1", Sentiment: sentiment.Negative, Text: "flop", ObservedAt: "LIVE 12:00", VideoID: "v1", ReferenceURL: "https://youtube.com/watch?v=v1&lc=c1"},
		{ID: "c2", Author: "viewer2", Sentiment: sentiment.Positive, Text: "epic", ObservedAt: "LIVE 12:01", VideoID: "v1", ReferenceURL: "https://youtube.com/watch?v=v1&lc=c2"},
		{ID: "c3", Author: "viewer1", Sentiment: sentiment.Neutral, Text: "when", ObservedAt: "LIVE 12:02", VideoID: "v2", ReferenceURL: "https://youtube.com/watch?v=v2&lc=c3"},
	}
}

func TestRecordAndHistory(t *testing.T) {
	a, _ := testArchive(t)

	if err := a.Record("Test Subject", sampleSignals()); err != nil {
		t.Fatalf("record: %v", err)
	}

	entries, err := a.History(QueryOpts{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Keyword != "Test Subject" {
		t.Errorf("unexpected keyword %q", entries[0].Keyword)
	}
}

func TestRecordIgnoresReplays(t *testing.T) {
	a, _ := testArchive(t)
	signals := sampleSignals()

	if err := a.Record("k", signals); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := a.Record("k", signals[:1]); err != nil {
		t.Fatalf("replay record: %v", err)
	}

	entries, err := a.History(QueryOpts{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("replayed id must not duplicate: expected 3 entries, got %d", len(entries))
	}
}

func TestRecordSameIDUnderNewKeyword(t *testing.T) {
	a, _ := testArchive(t)
	signals := sampleSignals()[:1]

	if err := a.Record("first", signals); err != nil {
		t.Fatal(err)
	}
	if err := a.Record("second", signals); err != nil {
		t.Fatal(err)
	}

	entries, err := a.History(QueryOpts{Keyword: "second"})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry under second keyword, got %d", len(entries))
	}
}

func TestHistorySentimentFilter(t *testing.T) {
	a, _ := testArchive(t)
	if err := a.Record("k", sampleSignals()); err != nil {
		t.Fatal(err)
	}

	entries, err := a.History(QueryOpts{Sentiment: "NEGATIVE"})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ID != "c1" {
		t.Errorf("expected only c1, got %v", entries)
	}
}

func TestHistoryLimit(t *testing.T) {
	a, _ := testArchive(t)
	if err := a.Record("k", sampleSignals()); err != nil {
		t.Fatal(err)
	}

	entries, err := a.History(QueryOpts{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}

func TestStats(t *testing.T) {
	a, path := testArchive(t)
	if err := a.Record("k", sampleSignals()); err != nil {
		t.Fatal(err)
	}

	total, bySentiment, size, err := a.Stats(path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if total != 3 {
		t.Errorf("expected 3 total, got %d", total)
	}
	if bySentiment["NEGATIVE"] != 1 || bySentiment["POSITIVE"] != 1 || bySentiment["NEUTRAL"] != 1 {
		t.Errorf("unexpected sentiment counts: %v", bySentiment)
	}
	if size <= 0 {
		t.Error("expected non-zero db file size")
	}
}

func TestPrune(t *testing.T) {
	a, _ := testArchive(t)
	if err := a.Record("k", sampleSignals()); err != nil {
		t.Fatal(err)
	}

	// Everything was archived just now; a 1h retention keeps it all.
	deleted, err := a.Prune(time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected nothing pruned, got %d", deleted)
	}

	// Zero retention prunes everything.
	deleted, err = a.Prune(0)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 pruned, got %d", deleted)
	}
}

func TestRecordEmptyBatch(t *testing.T) {
	a, _ := testArchive(t)
	if err := a.Record("k", nil); err != nil {
		t.Errorf("empty batch should be a no-op, got %v", err)
	}
}
