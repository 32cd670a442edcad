package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"slidepane/internal/config"
	"slidepane/internal/shell"
	"slidepane/internal/trace"
	"slidepane/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "slidepane:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	rec, err := trace.NewRecorder(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "slidepane: tracing:", err)
		os.Exit(1)
	}

	model := ui.NewAppModel(cfg, shell.CreackPTY{}, rec)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := rec.Shutdown(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "slidepane: trace shutdown:", err)
	}
}
