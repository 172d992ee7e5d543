package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/vistapra/content-hub-go/internal/client"
	"github.com/vistapra/content-hub-go/internal/editor"
	contentsync "github.com/vistapra/content-hub-go/internal/sync"
)

func main() {
	godotenv.Load()

	// Logging to stdout would fight the TUI; persist failures go to a
	// file when CONTENT_EDITOR_LOG is set, otherwise they are dropped.
	logger := log.New(io.Discard, "", log.LstdFlags)
	if path := os.Getenv("CONTENT_EDITOR_LOG"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			defer f.Close()
			logger = log.New(f, "", log.LstdFlags)
		}
	}

	var remote contentsync.Remote
	if apiURL := os.Getenv("CONTENT_API_URL"); apiURL != "" {
		remote = client.New(apiURL, 10*time.Second)
	}
	engine := contentsync.NewEngine(remote, logger)

	program := tea.NewProgram(editor.New(engine), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "content-editor: %v\n", err)
		os.Exit(1)
	}
	engine.Flush()
}
