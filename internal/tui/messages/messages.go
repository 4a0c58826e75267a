package messages

import (
	"seeker/internal/dialog"
	"seeker/internal/store"
)

type ErrorMsg struct {
	Err error
}

// ColumnLoadedMsg carries a navigation step whose filesystem work finished.
type ColumnLoadedMsg struct {
	Result dialog.Result
	Level  dialog.Level
	Focus  bool
}

// DirectoryChangeMsg reports that the listing of Path changed on disk.
type DirectoryChangeMsg struct {
	Path string
}

// WatchClosedMsg is sent once the watcher's change channel is closed.
type WatchClosedMsg struct{}

// ToastTickMsg asks the model to expire toasts.
type ToastTickMsg struct{}

type ProjectsLoadedMsg struct {
	Projects []store.Project
	Error    error
}
