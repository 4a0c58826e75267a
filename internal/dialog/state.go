package dialog

// Mode is the host application's top-level screen.
type Mode int

const (
	ModeHome Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "home"
}

// DialogState tells whether the file dialog is open.
type DialogState int

const (
	DialogNone DialogState = iota
	DialogOpen
)

// NewFolderState tells whether the New-Folder sub-dialog is open.
type NewFolderState int

const (
	NewFolderNone NewFolderState = iota
	NewFolderOpen
)

// Action is produced by the dialog's buttons.
type Action int

const (
	ActionNewFolder Action = iota
	ActionCancel
	ActionOpen
	ActionNewFolderCancel
	ActionNewFolderCreate
)

var actionNames = [...]string{
	ActionNewFolder:       "new-folder",
	ActionCancel:          "cancel",
	ActionOpen:            "open",
	ActionNewFolderCancel: "new-folder-cancel",
	ActionNewFolderCreate: "new-folder-create",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}
