package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/docsask/internal/api"
	"github.com/csheth/docsask/internal/config"
	"github.com/csheth/docsask/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// run owns every resource it opens; main only turns its error into an exit code.
func run(args []string) error {
	flags := flag.NewFlagSet("docsask", flag.ContinueOnError)
	configPath := flags.String("config", os.Getenv("DOCSASK_CONFIG"), "path to a YAML config file")
	apiURL := flags.String("api", "", "backend base URL (eg. http://localhost:8000)")
	exampleSet := flags.String("examples", "", "example set to show ("+strings.Join(config.Presets(), ", ")+")")
	theme := flags.String("theme", "", "color theme (paper, dusk)")
	noAltScreen := flags.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	logPath := flags.String("log", os.Getenv("DOCSASK_LOG"), "append debug logs to this file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "docsask")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("[main] %v", err)
		return err
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *exampleSet != "" {
		cfg.ExampleSet = *exampleSet
		cfg.Examples = nil
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		log.Printf("[main] %v", err)
		return err
	}
	log.Printf("[main] backend=%s examples=%s theme=%s", cfg.APIBaseURL, cfg.ExampleSet, cfg.Theme)

	client := api.New(api.Options{BaseURL: cfg.APIBaseURL})

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Settings: cfg,
			Client:   client,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		log.Printf("[main] program error: %v", err)
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
