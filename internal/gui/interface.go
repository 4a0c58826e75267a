package gui

import (
	"seeker/internal/config"
	"seeker/internal/store"
	"seeker/internal/watch"
)

// Interface defines the contract for GUI operations
type Interface interface {
	Run()
	ShowError(title string, err error)
}

// Options wires the GUI to its collaborators.
type Options struct {
	Config *config.Config
	// ConfigPath is where theme changes are saved; empty keeps them in memory.
	ConfigPath string
	Store      store.Repository
	Watcher    *watch.Watcher
	Version    string
}
