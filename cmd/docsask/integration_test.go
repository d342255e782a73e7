package main

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/csheth/docsask/internal/apitest"
	"github.com/csheth/docsask/internal/tuitest"
)

func TestAskRoundTrip(t *testing.T) {
	t.Parallel()

	backend := apitest.New()
	defer backend.Close()

	binary := buildBinary(t, moduleDir(t))
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "-no-alt-screen", "-api", backend.URL},
		Env:     []string{"DOCSASK_CONFIG=", "DOCSASK_LOG="},
		Width:   100,
		Height:  40,
		Steps: []tuitest.Step{
			{WaitFor: "API connected"},
			tuitest.Type("What is the vision?"),
			tuitest.Press(tuitest.KeyEnter, "What is the vision?"),
			tuitest.Press(tuitest.KeyCtrlC, "You asked: What is the vision?"),
		},
		Timeout: 20 * time.Second,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}

	if !rec.Contains("You asked: What is the vision?") {
		t.Fatalf("answer never rendered:\n%s", tuitest.Plain(string(rec.Raw)))
	}
	if got := backend.AskCount(); got != 1 {
		t.Fatalf("backend asks: got %d want 1", got)
	}
	for _, req := range backend.Requests() {
		if req.Path == "/ask" && req.RequestID == "" {
			t.Fatal("ask should carry a request id")
		}
	}
}

func TestBackendErrorShown(t *testing.T) {
	t.Parallel()

	backend := apitest.New()
	defer backend.Close()
	backend.SetAsk(apitest.FailWith(503, "RAG system not initialized."))

	binary := buildBinary(t, moduleDir(t))
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "-no-alt-screen", "-api", backend.URL, "-examples", "resume"},
		Env:     []string{"DOCSASK_CONFIG=", "DOCSASK_LOG="},
		Width:   100,
		Height:  40,
		Steps: []tuitest.Step{
			tuitest.Press(tuitest.KeyTab, "API connected"),
			tuitest.Press([]byte("2"), "esc to go back"),
			tuitest.Press(tuitest.KeyEnter, "Tell me about this resume"),
			tuitest.Press(tuitest.KeyCtrlC, "RAG system not initialized."),
		},
		Timeout: 20 * time.Second,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}
	if !rec.Contains("Error:") {
		t.Fatalf("error panel missing:\n%s", tuitest.Plain(string(rec.Raw)))
	}
}

func TestUnreachableBackendShowsOffline(t *testing.T) {
	t.Parallel()

	binary := buildBinary(t, moduleDir(t))
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "-no-alt-screen", "-api", "http://127.0.0.1:1"},
		Env:     []string{"DOCSASK_CONFIG=", "DOCSASK_LOG="},
		Steps: []tuitest.Step{
			tuitest.Press(tuitest.KeyCtrlC, "API disconnected"),
		},
		Timeout: 20 * time.Second,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}
	if frame, ok := rec.FinalFrame(); !ok || frame.Plain == "" {
		t.Fatal("no frames captured")
	}
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	name := "docsask-integration"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), name)
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build CLI: %v\n%s", err, output)
	}
	return binPath
}
