package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"chinook/internal/models"
	"chinook/internal/notify"
	"chinook/internal/repositories"
	"chinook/internal/shared"
	"chinook/internal/views"
)

// PlaylistService implements [PlaylistManager] over the SQLite store.
//
// Two of its sequences are check-then-act and must not interleave:
// resolving-or-creating a user's favorites playlist, and assigning the
// next playlist id. createMu serializes both; everything else runs
// concurrently and relies on the membership table's composite primary
// key to reject duplicate rows that race past the pre-check.
type PlaylistService struct {
	playlists *repositories.PlaylistRepository
	tracks    *repositories.TrackRepository
	users     *repositories.UserRepository
	notifier  *notify.Manager
	logger    *log.Logger

	createMu sync.Mutex
}

// NewPlaylistService creates a PlaylistService over the given database
// connection. notifier receives a broadcast after every playlist
// creation; logger defaults to stderr when nil.
func NewPlaylistService(db *sql.DB, notifier *notify.Manager, logger *log.Logger) *PlaylistService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PlaylistService{
		playlists: repositories.NewPlaylistRepository(db),
		tracks:    repositories.NewTrackRepository(db),
		users:     repositories.NewUserRepository(db),
		notifier:  notifier,
		logger:    logger,
	}
}

// AddFavoriteTrack implements [PlaylistManager].
func (s *PlaylistService) AddFavoriteTrack(ctx context.Context, userID string, trackID int64) error {
	if userID == "" {
		return shared.ErrMissingUserID
	}

	favorites, err := s.favoritesFor(ctx, userID)
	if err != nil {
		return err
	}

	track, err := s.tracks.Find(ctx, trackID)
	if err != nil {
		return err
	}
	if track == nil {
		return fmt.Errorf("%w: id %d", shared.ErrTrackNotFound, trackID)
	}

	member, err := s.playlists.HasTrack(ctx, favorites.PlaylistID, trackID)
	if err != nil {
		return err
	}
	if member {
		return fmt.Errorf("%w: id %d", shared.ErrDuplicateFavorite, trackID)
	}

	if err := s.playlists.AddTrack(ctx, favorites.PlaylistID, trackID); err != nil {
		return err
	}

	s.logger.Debug("favorite added", "user", userID, "track", trackID)
	return nil
}

// RemoveFavoriteTrack implements [PlaylistManager].
func (s *PlaylistService) RemoveFavoriteTrack(ctx context.Context, userID string, trackID int64) error {
	if userID == "" {
		return shared.ErrMissingUserID
	}

	favorites, err := s.playlists.FindByUserAndName(ctx, userID, models.FavoritesPlaylistName)
	if err != nil {
		return err
	}
	if favorites == nil {
		return fmt.Errorf("%w: %q", shared.ErrNoFavorites, userID)
	}

	member, err := s.playlists.HasTrack(ctx, favorites.PlaylistID, trackID)
	if err != nil {
		return err
	}
	if !member {
		return fmt.Errorf("%w: id %d is not a favorite", shared.ErrTrackNotFound, trackID)
	}

	if err := s.playlists.RemoveTrack(ctx, favorites.PlaylistID, trackID); err != nil {
		return err
	}

	s.logger.Debug("favorite removed", "user", userID, "track", trackID)
	return nil
}

// HasFavoritePlaylist implements [PlaylistManager].
func (s *PlaylistService) HasFavoritePlaylist(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, shared.ErrMissingUserID
	}
	return s.playlists.HasFavorites(ctx, userID)
}

// AddTrackToPlaylist implements [PlaylistManager].
func (s *PlaylistService) AddTrackToPlaylist(ctx context.Context, playlistID, trackID int64) error {
	if playlistID < 1 {
		return fmt.Errorf("%w: got %d", shared.ErrBadPlaylistID, playlistID)
	}

	playlist, err := s.playlists.FindByID(ctx, playlistID, false)
	if err != nil {
		return err
	}
	if playlist == nil {
		return fmt.Errorf("%w: id %d", shared.ErrPlaylistNotFound, playlistID)
	}

	track, err := s.tracks.Find(ctx, trackID)
	if err != nil {
		return err
	}
	if track == nil {
		return fmt.Errorf("%w: id %d", shared.ErrTrackNotFound, trackID)
	}

	member, err := s.playlists.HasTrack(ctx, playlistID, trackID)
	if err != nil {
		return err
	}
	if member {
		return fmt.Errorf("%w: %q is already in %q", shared.ErrDuplicateTrack, track.Name, playlist.Name)
	}

	if err := s.playlists.AddTrack(ctx, playlistID, trackID); err != nil {
		return err
	}

	s.logger.Debug("track added to playlist", "playlist", playlistID, "track", trackID)
	return nil
}

// RemoveTrackFromPlaylist implements [PlaylistManager]. Unlike adding,
// removing a track that is not a member succeeds without effect.
func (s *PlaylistService) RemoveTrackFromPlaylist(ctx context.Context, trackID, playlistID int64) error {
	playlist, err := s.playlists.FindByID(ctx, playlistID, false)
	if err != nil {
		return err
	}
	if playlist == nil {
		return fmt.Errorf("%w: id %d", shared.ErrPlaylistNotFound, playlistID)
	}

	member, err := s.playlists.HasTrack(ctx, playlistID, trackID)
	if err != nil {
		return err
	}
	if !member {
		return nil
	}

	if err := s.playlists.RemoveTrack(ctx, playlistID, trackID); err != nil {
		return err
	}

	s.logger.Debug("track removed from playlist", "playlist", playlistID, "track", trackID)
	return nil
}

// ListPlaylists implements [PlaylistManager].
func (s *PlaylistService) ListPlaylists(ctx context.Context) ([]views.Playlist, error) {
	playlists, err := s.playlists.List(ctx)
	if err != nil {
		return nil, err
	}
	return views.PlaylistViews(playlists), nil
}

// ListPlaylistsForUser implements [PlaylistManager]. Filtering happens
// over the full list so the favorites-first order is inherited.
func (s *PlaylistService) ListPlaylistsForUser(ctx context.Context, userID string) ([]views.Playlist, error) {
	all, err := s.ListPlaylists(ctx)
	if err != nil {
		return nil, err
	}

	var mine []views.Playlist
	for _, p := range all {
		if p.HasUser(userID) {
			mine = append(mine, p)
		}
	}
	return mine, nil
}

// GetPlaylist implements [PlaylistManager]. The favorite flags on the
// returned tracks are userID's, even when the playlist belongs to
// someone else.
func (s *PlaylistService) GetPlaylist(ctx context.Context, userID string, playlistID int64) (*views.Playlist, error) {
	if userID == "" {
		return nil, shared.ErrMissingUserID
	}

	favorites, err := s.playlists.FavoriteTrackIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	playlist, err := s.playlists.FindByID(ctx, playlistID, true)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, nil
	}

	view := views.PlaylistView(*playlist, favorites)
	return &view, nil
}

// CreatePlaylist implements [PlaylistManager].
func (s *PlaylistService) CreatePlaylist(ctx context.Context, name, userID string) (*views.Playlist, error) {
	user, err := s.users.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %q", shared.ErrUserNotFound, userID)
	}

	existing, err := s.playlists.FindByUserAndName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q", shared.ErrDuplicatePlaylist, name)
	}

	s.createMu.Lock()
	playlistID, err := s.nextPlaylistID(ctx)
	if err != nil {
		s.createMu.Unlock()
		return nil, err
	}

	playlist := models.Playlist{PlaylistID: playlistID, Name: name, UserIDs: []string{userID}}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		s.createMu.Unlock()
		return nil, err
	}
	if err := s.playlists.Associate(ctx, userID, playlistID); err != nil {
		s.createMu.Unlock()
		return nil, err
	}
	s.createMu.Unlock()

	s.notifier.NotifyPlaylistsChanged()
	s.logger.Info("playlist created", "playlist", playlistID, "name", name, "user", userID)

	view := views.PlaylistView(playlist, nil)
	return &view, nil
}

// favoritesFor resolves the user's favorites playlist, creating it on
// first use. The create path re-checks under createMu: two sessions of
// the same user may both observe the playlist missing, and only one may
// create it.
func (s *PlaylistService) favoritesFor(ctx context.Context, userID string) (*models.Playlist, error) {
	favorites, err := s.playlists.FindByUserAndName(ctx, userID, models.FavoritesPlaylistName)
	if err != nil {
		return nil, err
	}
	if favorites != nil {
		return favorites, nil
	}

	s.createMu.Lock()
	favorites, err = s.playlists.FindByUserAndName(ctx, userID, models.FavoritesPlaylistName)
	if err != nil {
		s.createMu.Unlock()
		return nil, err
	}
	if favorites != nil {
		s.createMu.Unlock()
		return favorites, nil
	}

	playlistID, err := s.nextPlaylistID(ctx)
	if err != nil {
		s.createMu.Unlock()
		return nil, err
	}

	playlist := models.Playlist{
		PlaylistID: playlistID,
		Name:       models.FavoritesPlaylistName,
		UserIDs:    []string{userID},
	}
	if err := s.playlists.CreateWithUser(ctx, playlist, userID); err != nil {
		s.createMu.Unlock()
		return nil, err
	}
	s.createMu.Unlock()

	s.notifier.NotifyPlaylistsChanged()
	s.logger.Info("favorites playlist created", "playlist", playlistID, "user", userID)

	return &playlist, nil
}

// nextPlaylistID scans all playlist ids and returns max+1. SQLite
// cannot retrofit an AUTOINCREMENT constraint onto the existing id
// column, so ids stay service-assigned. Callers must hold createMu:
// two concurrent scans would hand out the same id.
//
// TODO: rebuild the playlists table with an AUTOINCREMENT id and drop
// this scan.
func (s *PlaylistService) nextPlaylistID(ctx context.Context) (int64, error) {
	ids, err := s.playlists.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	var max int64
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1, nil
}
