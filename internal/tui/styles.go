package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors for dark/light terminals
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorDim       = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAlert     = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	colorWarn      = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	colorBorder    = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorActiveBdr = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}
	colorStatusBg  = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}
	colorStatusFg  = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorGreen     = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerKeywordStyle = lipgloss.NewStyle().
				Foreground(colorAlert).
				Bold(true)

	headerDateStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Align(lipgloss.Right)

	statBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	statValueStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	statAlertStyle = lipgloss.NewStyle().
			Foreground(colorAlert).
			Bold(true)

	streamPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorActiveBdr)

	sidePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAlert).
				Bold(true)

	itemAuthorStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	itemTimeStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	sentimentNegStyle = lipgloss.NewStyle().
				Foreground(colorAlert).
				Bold(true)

	sentimentPosStyle = lipgloss.NewStyle().
				Foreground(colorGreen)

	sentimentNeuStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	pulseStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	threatNameStyle = lipgloss.NewStyle().
			Foreground(colorAlert).
			Bold(true)

	threatMetaStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	briefCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarn).
			Padding(1, 2)

	briefTitleStyle = lipgloss.NewStyle().
			Foreground(colorWarn).
			Bold(true)

	briefBodyStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	helpCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	helpDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Foreground(colorStatusFg).
			PaddingLeft(1).
			PaddingRight(1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAlert)

	keywordPromptStyle = lipgloss.NewStyle().
				Foreground(colorAlert).
				Bold(true)
)
