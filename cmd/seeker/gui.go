package main

import (
	"github.com/spf13/cobra"

	"seeker/internal/gui"
	"seeker/internal/log"
)

func (rt *rootOptions) guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the graphical user interface",
		Long:  `Launch the desktop version of Seeker with its file dialog windows.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runGUI()
		},
	}
}

func (rt *rootOptions) runGUI() error {
	repo, err := rt.openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	w := openWatcher()
	if w != nil {
		// Run stops it; this covers a failed start
		defer w.Stop()
	}

	log.LogWithFields(log.F("version", version), log.F("config", rt.cfgPath)).Info("starting GUI")
	return gui.Start(gui.Options{
		Config:     rt.cfg,
		ConfigPath: rt.cfgPath,
		Store:      repo,
		Watcher:    w,
		Version:    version,
	})
}
