package tui

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/docsask/internal/api"
)

// Backend is the slice of the API client the TUI depends on.
type Backend interface {
	Health(ctx context.Context) (api.HealthReport, error)
	Ask(ctx context.Context, question string) (api.Answer, error)
}

// askJob is detached from the model's lifetime: a submission is never
// cancelled, its result is dropped if the model has shut down.
func askJob(seq int, client Backend, question string, timeout time.Duration) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), timeout)
		defer cancel()
		answer, err := client.Ask(ctx, question)
		if err != nil {
			log.Printf("[ask] failed: %v", err)
		} else {
			log.Printf("[ask] answered request=%s chars=%d", answer.RequestID, len(answer.Text))
		}
		return askResultMsg{seq: seq, answer: answer, err: err}, err
	}
}

func healthJob(client Backend, timeout time.Duration) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		report, err := client.Health(ctx)
		if err != nil {
			log.Printf("[health] offline: %v", err)
		}
		return healthResultMsg{report: report, err: err}, err
	}
}

func healthTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return healthTickMsg{}
	})
}
