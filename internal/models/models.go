// package models defines the data model for the music catalog service
package models

// FavoritesPlaylistName is the reserved playlist name identifying a user's
// favorite tracks. At most one playlist with this name may be associated
// with any given user; the playlists service enforces this.
const FavoritesPlaylistName = "My favorite tracks"

// Artist is a recording artist. Albums is populated by catalog queries
// that load the artist's discography alongside the artist row.
type Artist struct {
	ArtistID int64
	Name     string
	Albums   []Album
}

// Album belongs to exactly one artist.
type Album struct {
	AlbumID  int64
	Title    string
	ArtistID int64
}

// Track is a single recording. AlbumID is nil for tracks that are not
// part of any album.
type Track struct {
	TrackID int64
	Name    string
	AlbumID *int64
}

// TrackDetail is a track row joined with its (optional) album and artist
// names, as returned by catalog and membership queries. AlbumTitle and
// ArtistName are nil when the track has no album, or the album's artist
// row is missing.
type TrackDetail struct {
	TrackID    int64
	Name       string
	AlbumTitle *string
	ArtistName *string
}

// Playlist is a named set of track memberships. UserIDs holds the ids of
// users associated with the playlist via user_playlists rows; Tracks is
// populated only when the playlist is loaded with its membership.
type Playlist struct {
	PlaylistID int64
	Name       string
	UserIDs    []string
	Tracks     []TrackDetail
}

// UserPlaylist associates a user with a playlist they own or can access.
type UserPlaylist struct {
	UserID     string
	PlaylistID int64
}

// User is an account known to the catalog. Authentication happens
// elsewhere; ids arrive already resolved.
type User struct {
	ID          string
	Email       string
	DisplayName string
}
