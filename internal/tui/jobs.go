package tui

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type jobKind string

type jobStatus string

const (
	jobKindAsk    jobKind = "ask"
	jobKindHealth jobKind = "health"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Seq         int // submission number for ask jobs, zero for health checks
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter int64
}

func newJobBus() *jobBus {
	return &jobBus{}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start emits a running snapshot, then runs runner with parent and wraps its
// payload in a result envelope tagged with seq.
func (b *jobBus) Start(parent context.Context, kind jobKind, seq int, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Seq: seq, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	runCmd := func() tea.Msg {
		payload, err := runner(parent)
		return jobResultEnvelope{Snapshot: finishSnapshot(startSnapshot, err), Payload: payload}
	}

	return tea.Sequence(startCmd, runCmd)
}

func finishSnapshot(start jobSnapshot, err error) jobSnapshot {
	snapshot := start
	snapshot.CompletedAt = time.Now()
	if err != nil {
		snapshot.Status = jobStatusFailed
		snapshot.Err = err.Error()
	} else {
		snapshot.Status = jobStatusSucceeded
	}
	snapshot.Duration = snapshot.CompletedAt.Sub(snapshot.StartedAt)
	log.Printf("[jobs] %s %s (seq=%d, duration=%s, err=%v)", snapshot.Kind, snapshot.Status, snapshot.Seq, snapshot.Duration, err)
	return snapshot
}
