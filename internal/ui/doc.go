// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow for browsing the catalog:
//  1. [PlaylistListView] : Browse the user's playlists
//  2. [TrackListView] : Inspect a playlist's tracks and toggle favorites
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Change broadcasts from the playlist service flow through a channel into the
// update loop, so the playlist list refreshes whenever a mutation commits.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, f, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
