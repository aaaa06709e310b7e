package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/charmbracelet/log"

	"chinook/internal/repositories"
	"chinook/internal/shared"
	"chinook/internal/views"
)

// ArtistService implements [Catalog]. All operations are read-only.
type ArtistService struct {
	artists   *repositories.ArtistRepository
	playlists *repositories.PlaylistRepository
	logger    *log.Logger
}

// NewArtistService creates an ArtistService over the given database
// connection. logger defaults to stderr when nil.
func NewArtistService(db *sql.DB, logger *log.Logger) *ArtistService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ArtistService{
		artists:   repositories.NewArtistRepository(db),
		playlists: repositories.NewPlaylistRepository(db),
		logger:    logger,
	}
}

// ListArtists implements [Catalog].
func (s *ArtistService) ListArtists(ctx context.Context) ([]views.Artist, error) {
	artists, err := s.artists.List(ctx)
	if err != nil {
		return nil, err
	}
	return views.ArtistViews(artists), nil
}

// GetArtist implements [Catalog].
func (s *ArtistService) GetArtist(ctx context.Context, artistID int64) (*views.Artist, error) {
	artist, err := s.artists.Get(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, nil
	}

	view := views.ArtistView(*artist)
	return &view, nil
}

// SearchArtists implements [Catalog].
func (s *ArtistService) SearchArtists(ctx context.Context, query string) ([]views.Artist, error) {
	all, err := s.ListArtists(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}

	needle := strings.ToLower(query)
	var matches []views.Artist
	for _, a := range all {
		if strings.Contains(strings.ToLower(a.Name), needle) {
			matches = append(matches, a)
		}
	}
	return matches, nil
}

// ListAlbumsForArtist implements [Catalog].
func (s *ArtistService) ListAlbumsForArtist(ctx context.Context, artistID int64) ([]views.Album, error) {
	albums, err := s.artists.Albums(ctx, artistID)
	if err != nil {
		return nil, err
	}

	albumViews := make([]views.Album, len(albums))
	for i, al := range albums {
		albumViews[i] = views.AlbumView(al)
	}
	return albumViews, nil
}

// ListTracksForArtist implements [Catalog]. The favorite flag on each
// track is computed from userID's favorite set, loaded once.
func (s *ArtistService) ListTracksForArtist(ctx context.Context, artistID int64, userID string) ([]views.Track, error) {
	if userID == "" {
		return nil, shared.ErrMissingUserID
	}

	favorites, err := s.playlists.FavoriteTrackIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	tracks, err := s.artists.TracksForArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	return views.TrackViews(tracks, favorites), nil
}
