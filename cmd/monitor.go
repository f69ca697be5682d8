package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ALOKESHWARGOUD/repscan/internal/api"
	"github.com/ALOKESHWARGOUD/repscan/internal/archive"
	"github.com/ALOKESHWARGOUD/repscan/internal/brief"
	"github.com/ALOKESHWARGOUD/repscan/internal/channelfeed"
	"github.com/ALOKESHWARGOUD/repscan/internal/config"
	"github.com/ALOKESHWARGOUD/repscan/internal/intercept"
	"github.com/ALOKESHWARGOUD/repscan/internal/logging"
	"github.com/ALOKESHWARGOUD/repscan/internal/scanner"
	"github.com/ALOKESHWARGOUD/repscan/internal/session"
	"github.com/ALOKESHWARGOUD/repscan/internal/tui"
	"github.com/ALOKESHWARGOUD/repscan/internal/velocity"
	"github.com/ALOKESHWARGOUD/repscan/internal/youtube"
)

// monitor bundles the long-lived state shared by the dashboard, the
// headless scan command, and the JSON API.
type monitor struct {
	cfg       *config.Config
	log       *zap.Logger
	store     *intercept.Store
	vel       *velocity.Tracker
	scan      *scanner.Scanner
	arch      *archive.Archive
	requester *brief.Requester
}

func (m *monitor) close() {
	if m.arch != nil {
		m.arch.Close()
	}
	if m.log != nil {
		m.log.Sync()
	}
}

func buildMonitor() (*monitor, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	keyword := cfg.Keyword
	if flagKeyword != "" {
		keyword = flagKeyword
	}
	demo := cfg.Demo || flagDemo

	log, err := logging.New(cfg.GetLogLevel(), config.LogPath())
	if err != nil {
		// The TUI owns the terminal; losing the file log is not fatal.
		log = logging.Nop()
	}

	var searcher youtube.Searcher
	var lister youtube.Lister
	if !demo {
		key := cfg.YouTubeKey()
		if key == "" {
			return nil, fmt.Errorf("no YouTube API key: set youtube_api_key in config or REPSCAN_YT_KEY, or run with --demo")
		}
		client := youtube.NewClient(key)
		searcher = client
		lister = client
	}

	var arch *archive.Archive
	if cfg.ArchiveEnabled() {
		arch, err = archive.Open(config.ArchivePath())
		if err != nil {
			return nil, fmt.Errorf("opening archive: %w", err)
		}
	}

	store := intercept.NewStore(0)
	vel := velocity.NewTracker(0)

	var journal scanner.Journal
	if arch != nil {
		journal = arch
	}

	var channelFetcher channelfeed.VideoSource
	if len(cfg.Channels) > 0 {
		channelFetcher = channelfeed.NewFetcher()
	}

	scan := scanner.New(scanner.Opts{
		Keyword:          keyword,
		Store:            store,
		Session:          session.New(),
		Velocity:         vel,
		Searcher:         searcher,
		Lister:           lister,
		Channels:         cfg.Channels,
		ChannelFetcher:   channelFetcher,
		SearchLimit:      cfg.GetSearchLimit(),
		CommentsPerVideo: cfg.GetCommentsPerVideo(),
		Simulated:        demo,
		Journal:          journal,
		Logger:           log,
	})

	var requester *brief.Requester
	if cfg.AIKey() != "" {
		provider, err := brief.New(cfg.AIProvider(), cfg.AIModel(), cfg.AIKey())
		if err != nil {
			return nil, fmt.Errorf("configuring AI provider: %w", err)
		}
		requester = brief.NewRequester(provider, log)
	}

	return &monitor{
		cfg:       cfg,
		log:       log,
		store:     store,
		vel:       vel,
		scan:      scan,
		arch:      arch,
		requester: requester,
	}, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	m, err := buildMonitor()
	if err != nil {
		return err
	}
	defer m.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if m.cfg.APIListen != "" {
		srv := api.NewServer(m.cfg.APIListen, api.NewHandler(m.store, m.vel, m.scan, m.log))
		go func() {
			if err := api.Run(ctx, srv, m.log); err != nil {
				m.log.Error("api server failed", zap.Error(err))
			}
		}()
	}

	return tui.Run(tui.RunOpts{
		Cfg:       m.cfg,
		Scanner:   m.scan,
		Store:     m.store,
		Velocity:  m.vel,
		Requester: m.requester,
		Version:   version,
	})
}
