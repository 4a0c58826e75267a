package main

import (
	"fmt"
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"seeker/internal/log"
	"seeker/internal/tui"
)

func (rt *rootOptions) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the terminal user interface",
		Long:  `Launch Seeker in the terminal. Logs go to a file so they never draw over the screen.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runTUI()
		},
	}
}

func (rt *rootOptions) runTUI() error {
	fallback := filepath.Join(filepath.Dir(rt.cfgPath), "seeker.log")
	opts, err := rt.logOptions(&fallback)
	if err != nil {
		return err
	}
	log.Configure(append([]log.Option{log.WithOutput(io.Discard)}, opts...)...)
	defer log.Default().Close()

	repo, err := rt.openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	w := openWatcher()
	if w != nil {
		if err := w.Start(); err != nil {
			log.LogWithError(err).Warn("directory watcher not started")
		}
		defer w.Stop()
	}

	m, err := tui.New(tui.Options{
		Config:  rt.cfg,
		Store:   repo,
		Watcher: w,
		Version: version,
	})
	if err != nil {
		return err
	}

	log.LogWithFields(log.F("version", version)).Info("starting TUI")
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
