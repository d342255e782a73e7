package tui

import (
	"github.com/csheth/docsask/internal/api"
)

type stage int

const (
	stageIdle stage = iota
	stageSubmitting
	stageAnswered
	stageErrored
)

func (s stage) String() string {
	switch s {
	case stageSubmitting:
		return "submitting"
	case stageAnswered:
		return "answered"
	case stageErrored:
		return "errored"
	default:
		return "idle"
	}
}

type apiStatus int

const (
	statusChecking apiStatus = iota
	statusOnline
	statusOffline
)

func (s apiStatus) Label() string {
	switch s {
	case statusOnline:
		return "API connected"
	case statusOffline:
		return "API disconnected"
	default:
		return "Checking…"
	}
}

type focusArea int

const (
	focusInput focusArea = iota
	focusExamples
)

const (
	minComposerWidth          = 30
	viewportHorizontalPadding = 4
	composerRows              = 4
)

const (
	composerPlaceholder = "e.g., What are the main strategic goals? What indicators are mentioned?"
	emptyQuestionError  = "Please enter a question."
	busyLabel           = "Processing…"
)

type askResultMsg struct {
	seq    int
	answer api.Answer
	err    error
}

type healthResultMsg struct {
	report api.HealthReport
	err    error
}

type healthTickMsg struct{}
