package tui

import "github.com/ALOKESHWARGOUD/repscan/internal/intercept"

type tickMsg struct{}

type scanDoneMsg struct {
	count   int
	signals []intercept.Signal
	err     error
}

type briefReadyMsg struct {
	text string
}

type updateMsg struct {
	version string
}

type openErrMsg struct {
	err error
}
