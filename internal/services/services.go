// package services defines the domain operations exposed to the
// presentation layer
package services

import (
	"context"

	"chinook/internal/views"
)

// Catalog is the read-only browsing surface over artists, albums, and
// tracks.
type Catalog interface {
	// ListArtists retrieves all artists ordered by id ascending, each
	// with nested albums.
	ListArtists(ctx context.Context) ([]views.Artist, error)

	// GetArtist retrieves one artist. Lookups are permissive: an
	// unknown id yields (nil, nil), not an error.
	GetArtist(ctx context.Context, artistID int64) (*views.Artist, error)

	// SearchArtists retrieves artists whose name contains query,
	// case-insensitively. An empty query returns all artists.
	SearchArtists(ctx context.Context, query string) ([]views.Artist, error)

	// ListAlbumsForArtist retrieves an artist's albums ordered by title.
	ListAlbumsForArtist(ctx context.Context, artistID int64) ([]views.Album, error)

	// ListTracksForArtist retrieves the artist's tracks with the
	// favorite flag computed for userID.
	ListTracksForArtist(ctx context.Context, artistID int64, userID string) ([]views.Track, error)
}

// PlaylistManager owns playlist creation, track membership mutation,
// and the per-user favorites singleton.
type PlaylistManager interface {
	// AddFavoriteTrack adds a track to the user's favorites playlist,
	// creating the playlist on first use.
	AddFavoriteTrack(ctx context.Context, userID string, trackID int64) error

	// RemoveFavoriteTrack removes a track from the user's favorites
	// playlist.
	RemoveFavoriteTrack(ctx context.Context, userID string, trackID int64) error

	// HasFavoritePlaylist reports whether the user already has a
	// favorites playlist.
	HasFavoritePlaylist(ctx context.Context, userID string) (bool, error)

	// AddTrackToPlaylist adds a track to an arbitrary playlist.
	// Duplicate membership is a conflict.
	AddTrackToPlaylist(ctx context.Context, playlistID, trackID int64) error

	// RemoveTrackFromPlaylist removes a track from a playlist. Removing
	// a track that is not a member is a silent no-op; the asymmetry
	// with AddTrackToPlaylist is deliberate.
	RemoveTrackFromPlaylist(ctx context.Context, trackID, playlistID int64) error

	// ListPlaylists retrieves all playlists, favorites-named playlists
	// first, then by id ascending.
	ListPlaylists(ctx context.Context) ([]views.Playlist, error)

	// ListPlaylistsForUser filters ListPlaylists down to playlists
	// associated with userID, keeping the same order.
	ListPlaylistsForUser(ctx context.Context, userID string) ([]views.Playlist, error)

	// GetPlaylist retrieves one playlist with its member tracks, each
	// flagged against userID's favorites no matter who owns the playlist.
	// An unknown playlist id yields (nil, nil).
	GetPlaylist(ctx context.Context, userID string, playlistID int64) (*views.Playlist, error)

	// CreatePlaylist creates a playlist named name owned by userID and
	// returns its view.
	CreatePlaylist(ctx context.Context, name, userID string) (*views.Playlist, error)
}

var (
	_ Catalog         = (*ArtistService)(nil)
	_ PlaylistManager = (*PlaylistService)(nil)
)
