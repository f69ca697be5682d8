// Package tui renders the live monitoring dashboard: signal stream,
// frequency pulse, threat tiers, and the tactical-brief overlay.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ALOKESHWARGOUD/repscan/internal/brief"
	"github.com/ALOKESHWARGOUD/repscan/internal/browser"
	"github.com/ALOKESHWARGOUD/repscan/internal/config"
	"github.com/ALOKESHWARGOUD/repscan/internal/intercept"
	"github.com/ALOKESHWARGOUD/repscan/internal/scanner"
	"github.com/ALOKESHWARGOUD/repscan/internal/threat"
	"github.com/ALOKESHWARGOUD/repscan/internal/update"
	"github.com/ALOKESHWARGOUD/repscan/internal/velocity"
)

type mode int

const (
	modeDashboard mode = iota
	modeKeyword
	modeBrief
	modeHelp
)

type App struct {
	cfg       *config.Config
	scan      *scanner.Scanner
	store     *intercept.Store
	vel       *velocity.Tracker
	requester *brief.Requester
	version   string

	signals []intercept.Signal
	cursor  int
	mode    mode

	width  int
	height int

	// Sub-components
	keywordInput textinput.Model
	spinner      spinner.Model

	// State
	scanning      bool
	briefing      bool
	briefText     string
	updateVersion string
	err           error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg       *config.Config
	Scanner   *scanner.Scanner
	Store     *intercept.Store
	Velocity  *velocity.Tracker
	Requester *brief.Requester
	Version   string
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "New keyword..."
	ti.Prompt = keywordPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		cfg:          opts.Cfg,
		scan:         opts.Scanner,
		store:        opts.Store,
		vel:          opts.Velocity,
		requester:    opts.Requester,
		version:      opts.Version,
		keywordInput: ti,
		spinner:      sp,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.scanCmd(),
		a.scheduleTick(),
		a.spinner.Tick,
		a.checkUpdateCmd(),
	)
}

func (a *App) pollInterval() time.Duration {
	if a.scan.Simulated() {
		return a.cfg.DemoPollDuration()
	}
	return a.cfg.PollDuration()
}

func (a *App) scheduleTick() tea.Cmd {
	return tea.Tick(a.pollInterval(), func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// scanCmd runs one cycle off the UI goroutine and reports the outcome
// with a fresh snapshot of the store.
func (a *App) scanCmd() tea.Cmd {
	scan := a.scan
	store := a.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		count, err := scan.Scan(ctx)
		return scanDoneMsg{count: count, signals: store.All(), err: err}
	}
}

func (a *App) briefCmd() tea.Cmd {
	requester := a.requester
	signals := a.store.All()
	keyword := a.scan.Keyword()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		return briefReadyMsg{text: requester.Generate(ctx, signals, keyword)}
	}
}

func (a *App) checkUpdateCmd() tea.Cmd {
	version := a.version
	return func() tea.Msg {
		res := update.Check(context.Background(), version)
		if res == nil {
			return nil
		}
		return updateMsg{version: res.LatestVersion}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case tickMsg:
		cmds := []tea.Cmd{a.scheduleTick()}
		if !a.scanning || a.scan.Simulated() {
			a.scanning = true
			cmds = append(cmds, a.scanCmd(), a.spinner.Tick)
		}
		return a, tea.Batch(cmds...)

	case scanDoneMsg:
		a.scanning = false
		a.signals = msg.signals
		if a.cursor >= len(a.signals) {
			a.cursor = max(0, len(a.signals)-1)
		}
		if msg.err != nil && msg.err != scanner.ErrScanInProgress {
			a.err = msg.err
		}
		return a, nil

	case briefReadyMsg:
		a.briefing = false
		if msg.text != "" {
			a.briefText = msg.text
			a.mode = modeBrief
		}
		return a, nil

	case updateMsg:
		a.updateVersion = msg.version
		return a, nil

	case openErrMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.scanning || a.briefing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeKeyword:
		return a.handleKeywordKey(msg)
	case modeBrief:
		if msg.String() == "esc" || msg.String() == "b" || msg.String() == "q" {
			a.mode = modeDashboard
		}
		return a, nil
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeDashboard
		}
		return a, nil
	}

	// Dashboard mode
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.signals)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "o", "enter":
		if len(a.signals) > 0 && a.cursor < len(a.signals) {
			return a, openBrowserCmd(a.signals[a.cursor].ReferenceURL)
		}
		return a, nil
	case "/":
		a.mode = modeKeyword
		a.keywordInput.SetValue("")
		a.keywordInput.Focus()
		return a, textinput.Blink
	case "s":
		if !a.scanning {
			a.scanning = true
			return a, tea.Batch(a.scanCmd(), a.spinner.Tick)
		}
		return a, nil
	case "d":
		if a.scan.Simulated() && !a.scan.LiveReady() {
			a.err = fmt.Errorf("no YouTube API key configured; staying in demo mode")
			return a, nil
		}
		a.scan.SetSimulated(!a.scan.Simulated())
		return a, nil
	case "b":
		if a.requester != nil && !a.briefing && len(a.signals) > 0 {
			a.briefing = true
			return a, tea.Batch(a.briefCmd(), a.spinner.Tick)
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleKeywordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeDashboard
		a.keywordInput.Blur()
		return a, nil
	case "enter":
		keyword := strings.TrimSpace(a.keywordInput.Value())
		a.mode = modeDashboard
		a.keywordInput.Blur()
		if keyword == "" || keyword == a.scan.Keyword() {
			return a, nil
		}
		// Reset happens inside SetKeyword; start a fresh cycle at once.
		a.scan.SetKeyword(keyword)
		a.signals = nil
		a.cursor = 0
		a.scanning = true
		return a, tea.Batch(a.scanCmd(), a.spinner.Tick)
	}

	var cmd tea.Cmd
	a.keywordInput, cmd = a.keywordInput.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAlert).Render("  repscan")
	}

	if a.mode == modeBrief && a.briefText != "" {
		return renderBriefOverlay(a.briefText, a.width, a.height)
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	report := threat.Aggregate(a.signals)

	// Layout calculations
	headerHeight := 1
	statsHeight := 4
	statusHeight := 1
	contentHeight := a.height - headerHeight - statsHeight - statusHeight - 2 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	streamWidth := int(float64(a.width) * 0.55)
	sideWidth := a.width - streamWidth - 1 // gap

	// Header
	headerLeft := headerStyle.Render("repscan") + " " +
		headerKeywordStyle.Render(a.scan.Keyword())
	headerRight := headerDateStyle.Render(time.Now().Format("Jan 2 15:04"))
	if a.updateVersion != "" {
		headerRight = headerDateStyle.Render("update v"+a.updateVersion+" available · ") + headerRight
	}
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Stats row
	stats := renderStatsRow(report, a.vel.Average(), a.width)

	// Stream pane
	innerStreamW := streamWidth - 4 // border + padding
	streamContent := renderStream(a.signals, a.cursor, contentHeight, innerStreamW)
	streamPane := streamPaneStyle.Width(streamWidth - 2).Height(contentHeight).Render(streamContent)

	// Side pane: pulse over threats
	innerSideW := sideWidth - 4
	sideContent := renderPulsePanel(a.vel.Samples(), a.vel.Average(), innerSideW) +
		"\n\n" + renderThreatPanel(report, innerSideW)
	sidePane := sidePaneStyle.Width(sideWidth - 2).Height(contentHeight).Render(sideContent)

	content := lipgloss.JoinHorizontal(lipgloss.Top, streamPane, sidePane)

	// Status bar, replaced by the keyword input while editing
	status := renderStatusBar(a.scan.Keyword(), a.scanning, a.scan.Simulated(), a.briefing, a.width)
	if a.mode == modeKeyword {
		status = a.keywordInput.View()
	} else if a.scanning || a.briefing {
		status = a.spinner.View() + " " + status
	}

	// Error display
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAlert).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, stats, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAlert).Bold(true).Render("repscan")
	dim := helpDimStyle

	help := title + dim.Render(" - Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Move through the signal stream\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter      Open signal source in browser\n" +
		"  s             Run a scan cycle now\n" +
		"  d             Toggle demo mode\n" +
		"  b             Request tactical brief\n" +
		"  /             Change monitored keyword\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  esc           Close overlay\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
