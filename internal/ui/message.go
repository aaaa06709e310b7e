package ui

import (
	"chinook/internal/views"
)

// playlistsFetchedMsg carries the refreshed playlist listing.
type playlistsFetchedMsg struct {
	playlists []views.Playlist
	err       error
}

// playlistFetchedMsg carries one playlist with membership loaded.
type playlistFetchedMsg struct {
	playlist *views.Playlist
	err      error
}

// favoriteToggledMsg reports the outcome of a favorite mutation. The
// playlist id is re-fetched on success so flags stay current.
type favoriteToggledMsg struct {
	playlistID int64
	err        error
}

// libraryChangedMsg arrives whenever the playlist service broadcasts a
// change, including changes made outside this TUI session.
type libraryChangedMsg struct{}
