// Package archive journals ingested signals to a local sqlite database.
// The live store stays bounded and lossy; the archive is an optional
// audit trail the history/stats/prune commands read.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ALOKESHWARGOUD/repscan/internal/intercept"
)

type Archive struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

// Entry is one archived signal row.
type Entry struct {
	ID           string
	Keyword      string
	Author       string
	Sentiment    string
	Text         string
	ObservedAt   string
	VideoID      string
	ReferenceURL string
	ArchivedAt   time.Time
}

// QueryOpts narrows a history read.
type QueryOpts struct {
	Keyword   string
	Sentiment string
	Limit     int
}

func Open(dbPath string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating archive dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	a := &Archive{readDB: readDB, writeDB: writeDB}
	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *Archive) init() error {
	_, err := a.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS signals (
			id            TEXT NOT NULL,
			keyword       TEXT NOT NULL,
			author        TEXT NOT NULL,
			sentiment     TEXT NOT NULL,
			text          TEXT NOT NULL DEFAULT '',
			observed_at   TEXT NOT NULL,
			video_id      TEXT NOT NULL,
			reference_url TEXT NOT NULL DEFAULT '',
			archived_at   DATETIME NOT NULL,
			PRIMARY KEY (id, keyword)
		);
		CREATE INDEX IF NOT EXISTS idx_signals_archived ON signals(archived_at DESC);
		CREATE INDEX IF NOT EXISTS idx_signals_sentiment ON signals(sentiment);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (a *Archive) Close() error {
	var errs []error
	if a.readDB != nil {
		errs = append(errs, a.readDB.Close())
	}
	if a.writeDB != nil {
		errs = append(errs, a.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Record journals a batch under the keyword that produced it. Replays
// of an already-archived comment id are ignored.
func (a *Archive) Record(keyword string, signals []intercept.Signal) error {
	if len(signals) == 0 {
		return nil
	}

	tx, err := a.writeDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO signals
			(id, keyword, author, sentiment, text, observed_at, video_id, reference_url, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, s := range signals {
		_, err := stmt.Exec(s.ID, keyword, s.Author, string(s.Sentiment), s.Text,
			s.ObservedAt, s.VideoID, s.ReferenceURL, now)
		if err != nil {
			return fmt.Errorf("archiving signal %s: %w", s.ID, err)
		}
	}

	return tx.Commit()
}

// History returns archived signals, newest first.
func (a *Archive) History(opts QueryOpts) ([]Entry, error) {
	query := `SELECT id, keyword, author, sentiment, text, observed_at, video_id, reference_url, archived_at
		FROM signals`
	var (
		where []string
		args  []interface{}
	)
	if opts.Keyword != "" {
		where = append(where, "keyword = ?")
		args = append(args, opts.Keyword)
	}
	if opts.Sentiment != "" {
		where = append(where, "sentiment = ?")
		args = append(args, opts.Sentiment)
	}
	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}
	query += " ORDER BY archived_at DESC, id"

	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := a.readDB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Keyword, &e.Author, &e.Sentiment, &e.Text,
			&e.ObservedAt, &e.VideoID, &e.ReferenceURL, &e.ArchivedAt); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats reports row count, per-sentiment counts, and file size.
func (a *Archive) Stats(dbPath string) (total int, bySentiment map[string]int, size int64, err error) {
	if err = a.readDB.QueryRow("SELECT COUNT(*) FROM signals").Scan(&total); err != nil {
		return 0, nil, 0, fmt.Errorf("counting signals: %w", err)
	}

	rows, err := a.readDB.Query("SELECT sentiment, COUNT(*) FROM signals GROUP BY sentiment")
	if err != nil {
		return 0, nil, 0, fmt.Errorf("counting by sentiment: %w", err)
	}
	defer rows.Close()

	bySentiment = make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return 0, nil, 0, err
		}
		bySentiment[label] = count
	}
	if err := rows.Err(); err != nil {
		return 0, nil, 0, err
	}

	if info, statErr := os.Stat(dbPath); statErr == nil {
		size = info.Size()
	}
	return total, bySentiment, size, nil
}

// Prune deletes entries archived before the retention window.
func (a *Archive) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res, err := a.writeDB.Exec("DELETE FROM signals WHERE archived_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning archive: %w", err)
	}
	return res.RowsAffected()
}
