// Package dialog is the toolkit independent core of Seeker's file dialog.
//
// A dialog shows a directory as cascading columns. Selecting a row in the
// column at level d prunes every column at level d+1 and beyond, then opens
// a listing (for a directory) or a detail view (for a file) at d+1. All UI
// elements live in a Tree arena keyed by NodeID; a side index maps each
// level to its column so pruning is a direct lookup. Nodes are tagged with a
// Scope and the Coordinator despawns the whole dialog scope however the
// dialog is left.
//
// Frontends translate their input into Session.Select (or Begin, Load and
// Complete when reads happen off the UI goroutine), NewFolder key and IME
// events, and Coordinator.Dispatch actions, and render Session.Columns.
package dialog
