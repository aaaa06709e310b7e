package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"chinook/internal/views"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = trackItem{}
)

// playlistItem wraps [views.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist views.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	return fmt.Sprintf("shared with %d user(s)", len(i.playlist.UserIDs))
}

// trackItem wraps [views.Track] to implement [list.Item].
type trackItem struct {
	track views.Track
}

func (i trackItem) FilterValue() string { return i.track.TrackName }
func (i trackItem) Title() string {
	if i.track.IsFavorite {
		return fmt.Sprintf("★ %s", i.track.TrackName)
	}
	return i.track.TrackName
}
func (i trackItem) Description() string {
	desc := i.track.ArtistName
	if i.track.AlbumTitle != views.NoAlbumTitle {
		if desc != "" {
			desc = fmt.Sprintf("%s • %s", desc, i.track.AlbumTitle)
		} else {
			desc = i.track.AlbumTitle
		}
	}
	return desc
}
