//go:build nogui

package gui

import (
	"fmt"

	"seeker/internal/errors"
)

// Start is a stub implementation for builds with GUI disabled
func Start(opts Options) error {
	fmt.Println("GUI is disabled in this build. Please use the terminal interface.")
	return errors.New("GUI not available in this build")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
