// Package scanner drives the discovery-then-ingest poll cycle: resolve
// candidate videos for the active keyword, fetch new comments, dedupe,
// classify, append to the intercept store, and record one velocity
// sample per cycle.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ALOKESHWARGOUD/repscan/internal/channelfeed"
	"github.com/ALOKESHWARGOUD/repscan/internal/intercept"
	"github.com/ALOKESHWARGOUD/repscan/internal/sentiment"
	"github.com/ALOKESHWARGOUD/repscan/internal/session"
	"github.com/ALOKESHWARGOUD/repscan/internal/velocity"
	"github.com/ALOKESHWARGOUD/repscan/internal/youtube"
)

// ErrScanInProgress is returned when a live cycle is requested while
// another is still running. Simulated cycles are exempt: they make no
// external calls, so overlap is harmless.
var ErrScanInProgress = errors.New("scan already in progress")

// ErrNoLiveClient is returned when a live cycle is requested but the
// scanner was built without YouTube API clients (demo-only setup).
var ErrNoLiveClient = errors.New("no live client configured")

// Journal receives every ingested batch, best effort.
type Journal interface {
	Record(keyword string, signals []intercept.Signal) error
}


type Opts struct {
	Keyword          string
	Store            *intercept.Store
	Session          *session.Session
	Velocity         *velocity.Tracker
	Searcher         youtube.Searcher
	Lister           youtube.Lister
	Channels         []string
	ChannelFetcher   channelfeed.VideoSource
	SearchLimit      int
	CommentsPerVideo int
	Simulated        bool
	Journal          Journal
	Logger           *zap.Logger
}

type Scanner struct {
	mu       sync.Mutex
	scanning bool

	keyword   string
	simulated bool

	store    *intercept.Store
	sess     *session.Session
	vel      *velocity.Tracker
	searcher youtube.Searcher
	lister   youtube.Lister

	channels       []string
	channelFetcher channelfeed.VideoSource

	searchLimit      int
	commentsPerVideo int

	journal Journal
	log     *zap.Logger

	now func() time.Time
	rng *rand.Rand
}

func New(opts Opts) *Scanner {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	searchLimit := opts.SearchLimit
	if searchLimit <= 0 {
		searchLimit = 5
	}
	commentsPerVideo := opts.CommentsPerVideo
	if commentsPerVideo <= 0 {
		commentsPerVideo = 10
	}
	return &Scanner{
		keyword:          opts.Keyword,
		simulated:        opts.Simulated,
		store:            opts.Store,
		sess:             opts.Session,
		vel:              opts.Velocity,
		searcher:         opts.Searcher,
		lister:           opts.Lister,
		channels:         opts.Channels,
		channelFetcher:   opts.ChannelFetcher,
		searchLimit:      searchLimit,
		commentsPerVideo: commentsPerVideo,
		journal:          opts.Journal,
		log:              log,
		now:              time.Now,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Keyword returns the active scan keyword.
func (s *Scanner) Keyword() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keyword
}

// SetKeyword swaps the active keyword and resets the store, the seen
// set, and the tracked-video set in one step, so no stale state leaks
// into the next cycle.
func (s *Scanner) SetKeyword(keyword string) {
	s.mu.Lock()
	s.keyword = keyword
	s.mu.Unlock()
	s.store.Reset()
	s.sess.Reset()
	s.log.Info("keyword changed", zap.String("keyword", keyword))
}

// Scanning reports whether a live cycle is in flight.
func (s *Scanner) Scanning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanning
}

// Simulated reports whether cycles are synthetic.
func (s *Scanner) Simulated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.simulated
}

// SetSimulated toggles simulated mode.
func (s *Scanner) SetSimulated(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.simulated = on
}

// LiveReady reports whether the scanner can run live cycles. A scanner
// built without API clients (demo-only setup) can only simulate.
func (s *Scanner) LiveReady() bool {
	return s.searcher != nil && s.lister != nil
}

// Scan runs one cycle and returns the number of new signals ingested.
// A live cycle is refused with ErrScanInProgress while another is
// running; the scanner always returns to idle, success or failure.
func (s *Scanner) Scan(ctx context.Context) (int, error) {
	s.mu.Lock()
	if s.simulated {
		keyword := s.keyword
		s.mu.Unlock()
		return s.simulateCycle(keyword), nil
	}
	if s.scanning {
		s.mu.Unlock()
		return 0, ErrScanInProgress
	}
	s.scanning = true
	keyword := s.keyword
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.scanning = false
		s.mu.Unlock()
	}()

	return s.liveCycle(ctx, keyword)
}

func (s *Scanner) liveCycle(ctx context.Context, keyword string) (int, error) {
	if !s.LiveReady() {
		return 0, ErrNoLiveClient
	}

	ids, err := s.searcher.SearchVideos(ctx, keyword, s.searchLimit)
	if err != nil {
		// No candidates to scan; the next tick is the retry.
		s.log.Warn("video discovery failed", zap.String("keyword", keyword), zap.Error(err))
		return 0, fmt.Errorf("discovering videos: %w", err)
	}
	for _, id := range ids {
		s.sess.TrackVideo(id)
	}

	if s.channelFetcher != nil && len(s.channels) > 0 {
		s.mergeChannelFeeds(ctx)
	}

	var batch []intercept.Signal
	now := s.now()
	for _, videoID := range s.sess.TrackedVideos() {
		comments, err := s.lister.ListComments(ctx, videoID, s.commentsPerVideo)
		if err != nil {
			// One video failing (comments disabled, quota blip) skips
			// that video only.
			s.log.Warn("comment fetch failed", zap.String("video", videoID), zap.Error(err))
			continue
		}
		for _, c := range comments {
			if s.sess.Seen(c.ID) {
				continue
			}
			s.sess.MarkSeen(c.ID)
			batch = append(batch, intercept.Signal{
				ID:           c.ID,
				Author:       c.Author,
				Sentiment:    sentiment.Classify(c.Text),
				Text:         c.Text,
				ObservedAt:   intercept.FormatObservedAt(c.Published, now),
				VideoID:      videoID,
				ReferenceURL: youtube.CommentURL(videoID, c.ID),
			})
		}
	}

	if len(batch) > 0 {
		s.store.Append(batch)
		s.journalBatch(keyword, batch)
	}

	now = s.now()
	elapsed := now.Sub(s.sess.LastPoll()).Seconds()
	if elapsed < 1 {
		elapsed = 1
	}
	rate := float64(len(batch)) / elapsed * 100
	s.vel.Record(rate, now.Format("15:04:05"))
	s.sess.SetLastPoll(now)

	s.log.Info("cycle complete",
		zap.String("keyword", keyword),
		zap.Int("tracked_videos", len(s.sess.TrackedVideos())),
		zap.Int("new_signals", len(batch)),
		zap.Float64("rate", rate))

	return len(batch), nil
}

func (s *Scanner) mergeChannelFeeds(ctx context.Context) {
	result := channelfeed.FetchAll(ctx, s.channelFetcher, s.channels)
	for _, err := range result.Errors {
		s.log.Warn("channel feed failed", zap.Error(err))
	}
	for _, id := range result.VideoIDs {
		s.sess.TrackVideo(id)
	}
}

// simulateCycle fabricates one to three signals so the dashboard can be
// exercised without keys or quota.
func (s *Scanner) simulateCycle(keyword string) int {
	now := s.now()
	labels := sentiment.AllLabels()

	count := s.rng.Intn(3) + 1
	batch := make([]intercept.Signal, 0, count)
	for i := 0; i < count; i++ {
		batch = append(batch, intercept.Signal{
			ID:           uuid.NewString(),
			Author:       fmt.Sprintf("Operator_%d", s.rng.Intn(999)),
			Sentiment:    labels[s.rng.Intn(len(labels))],
			Text:         fmt.Sprintf("Dynamic signal matched for keyword: %s", keyword),
			ObservedAt:   intercept.FormatObservedAt(now, now),
			VideoID:      fmt.Sprintf("SIM_VID_%d", s.rng.Intn(5)),
			ReferenceURL: "#",
		})
	}
	for _, sig := range batch {
		s.sess.MarkSeen(sig.ID)
	}
	s.store.Append(batch)
	s.journalBatch(keyword, batch)

	rate := s.rng.Float64()*20 + 40
	s.vel.Record(rate, now.Format("15:04:05"))

	return len(batch)
}

func (s *Scanner) journalBatch(keyword string, batch []intercept.Signal) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(keyword, batch); err != nil {
		s.log.Warn("archiving batch failed", zap.Error(err))
	}
}
