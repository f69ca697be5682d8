package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ALOKESHWARGOUD/repscan/internal/config"
	"github.com/ALOKESHWARGOUD/repscan/internal/intercept"
	"github.com/ALOKESHWARGOUD/repscan/internal/scanner"
	"github.com/ALOKESHWARGOUD/repscan/internal/session"
	"github.com/ALOKESHWARGOUD/repscan/internal/velocity"
	"github.com/ALOKESHWARGOUD/repscan/internal/youtube"
)

type stubSearcher struct{}

func (stubSearcher) SearchVideos(ctx context.Context, keyword string, limit int) ([]string, error) {
	return nil, nil
}

type stubLister struct{}

func (stubLister) ListComments(ctx context.Context, videoID string, limit int) ([]youtube.Comment, error) {
	return nil, nil
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func demoOnlyApp() *App {
	store := intercept.NewStore(0)
	vel := velocity.NewTracker(0)
	scan := scanner.New(scanner.Opts{
		Keyword:   "Test Subject",
		Store:     store,
		Session:   session.New(),
		Velocity:  vel,
		Simulated: true,
	})
	return NewApp(RunOpts{Cfg: &config.Config{}, Scanner: scan, Store: store, Velocity: vel})
}

func TestDemoToggleRefusedWithoutLiveClient(t *testing.T) {
	a := demoOnlyApp()

	model, _ := a.Update(keyMsg('d'))
	app := model.(*App)

	if !app.scan.Simulated() {
		t.Error("demo mode must stay on when no API clients are configured")
	}
	if app.err == nil {
		t.Error("expected a status-bar error explaining the refusal")
	}
}

func TestDemoToggleWithLiveClient(t *testing.T) {
	store := intercept.NewStore(0)
	vel := velocity.NewTracker(0)
	scan := scanner.New(scanner.Opts{
		Keyword:   "Test Subject",
		Store:     store,
		Session:   session.New(),
		Velocity:  vel,
		Searcher:  stubSearcher{},
		Lister:    stubLister{},
		Simulated: true,
	})
	a := NewApp(RunOpts{Cfg: &config.Config{}, Scanner: scan, Store: store, Velocity: vel})

	model, _ := a.Update(keyMsg('d'))
	app := model.(*App)

	if app.scan.Simulated() {
		t.Error("toggle must switch to live mode when clients are configured")
	}
	if app.err != nil {
		t.Errorf("unexpected error: %v", app.err)
	}
}
