// package views converts persisted entities into flattened, read-only
// shapes for presentation
package views

import "chinook/internal/models"

// NoAlbumTitle is the album-title sentinel for tracks that are not part
// of any album.
const NoAlbumTitle = "-"

// Track is a flattened track projection. IsFavorite is relative to the
// user whose favorite set produced it.
type Track struct {
	TrackID    int64
	TrackName  string
	AlbumTitle string
	ArtistName string
	IsFavorite bool
}

// Playlist is a flattened playlist projection. Tracks is nil for
// listing operations that do not load membership.
type Playlist struct {
	PlaylistID int64
	Name       string
	UserIDs    []string
	Tracks     []Track
}

// IsFavorites reports whether this playlist carries the reserved
// favorites name.
func (p Playlist) IsFavorites() bool {
	return p.Name == models.FavoritesPlaylistName
}

// HasUser reports whether userID is associated with the playlist.
func (p Playlist) HasUser(userID string) bool {
	for _, id := range p.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Album is a flattened album projection.
type Album struct {
	AlbumID  int64
	Title    string
	ArtistID int64
}

// Artist is a flattened artist projection with nested albums.
type Artist struct {
	ArtistID int64
	Name     string
	Albums   []Album
}

// TrackView maps one joined track row to its client shape. The favorite
// flag is a set lookup against ids precomputed by one membership query,
// never a walk of the track's playlist graph.
func TrackView(d models.TrackDetail, favorites map[int64]bool) Track {
	albumTitle := NoAlbumTitle
	if d.AlbumTitle != nil {
		albumTitle = *d.AlbumTitle
	}

	artistName := ""
	if d.ArtistName != nil {
		artistName = *d.ArtistName
	}

	return Track{
		TrackID:    d.TrackID,
		TrackName:  d.Name,
		AlbumTitle: albumTitle,
		ArtistName: artistName,
		IsFavorite: favorites[d.TrackID],
	}
}

// TrackViews maps a sequence of joined track rows, preserving their
// order exactly. Ordering belongs to the query that produced the rows.
func TrackViews(details []models.TrackDetail, favorites map[int64]bool) []Track {
	tracks := make([]Track, len(details))
	for i, d := range details {
		tracks[i] = TrackView(d, favorites)
	}
	return tracks
}

// PlaylistView maps a playlist and its loaded membership to the client
// shape, applying [TrackView] to every member row.
func PlaylistView(p models.Playlist, favorites map[int64]bool) Playlist {
	view := Playlist{
		PlaylistID: p.PlaylistID,
		Name:       p.Name,
		UserIDs:    p.UserIDs,
	}
	if p.Tracks != nil {
		view.Tracks = TrackViews(p.Tracks, favorites)
	}
	return view
}

// PlaylistViews maps playlists for listing operations, preserving the
// input order.
func PlaylistViews(playlists []models.Playlist) []Playlist {
	views := make([]Playlist, len(playlists))
	for i, p := range playlists {
		views[i] = PlaylistView(p, nil)
	}
	return views
}

// AlbumView maps an album row.
func AlbumView(a models.Album) Album {
	return Album{AlbumID: a.AlbumID, Title: a.Title, ArtistID: a.ArtistID}
}

// ArtistView maps an artist row with its nested albums.
func ArtistView(a models.Artist) Artist {
	view := Artist{ArtistID: a.ArtistID, Name: a.Name}
	for _, al := range a.Albums {
		view.Albums = append(view.Albums, AlbumView(al))
	}
	return view
}

// ArtistViews maps artists for listing operations, preserving input
// order.
func ArtistViews(artists []models.Artist) []Artist {
	views := make([]Artist, len(artists))
	for i, a := range artists {
		views[i] = ArtistView(a)
	}
	return views
}
