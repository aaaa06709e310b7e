package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"chinook/internal/models"
)

// PlaylistRepository handles playlists, their user associations, and
// their track membership rows.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// FindByID retrieves a playlist with its user associations. When
// withTracks is set the track membership is loaded as joined track
// details, ordered by track id ascending (the order the views layer
// must preserve). Returns (nil, nil) when no playlist has the given id.
func (r *PlaylistRepository) FindByID(ctx context.Context, playlistID int64, withTracks bool) (*models.Playlist, error) {
	var p models.Playlist
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM playlists WHERE id = ?", playlistID).
		Scan(&p.PlaylistID, &p.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	userIDs, err := r.userIDs(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	p.UserIDs = userIDs

	if withTracks {
		tracks, err := r.memberTracks(ctx, playlistID)
		if err != nil {
			return nil, err
		}
		p.Tracks = tracks
	}

	return &p, nil
}

// FindByUserAndName retrieves the playlist with the given name among
// those associated with userID. Returns (nil, nil) when the user has no
// such playlist.
func (r *PlaylistRepository) FindByUserAndName(ctx context.Context, userID, name string) (*models.Playlist, error) {
	query := `
		SELECT p.id, p.name
		FROM playlists p
		JOIN user_playlists up ON up.playlist_id = p.id
		WHERE up.user_id = ? AND p.name = ?
		LIMIT 1
	`

	var p models.Playlist
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&p.PlaylistID, &p.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	userIDs, err := r.userIDs(ctx, p.PlaylistID)
	if err != nil {
		return nil, err
	}
	p.UserIDs = userIDs

	return &p, nil
}

// List retrieves all playlists with their user associations. Playlists
// carrying the reserved favorites name sort before all others, ties
// broken by id ascending. The favorites-first flag is global: another
// user's favorites playlist still sorts first.
func (r *PlaylistRepository) List(ctx context.Context) ([]models.Playlist, error) {
	query := `
		SELECT id, name FROM playlists
		ORDER BY (name = ?) DESC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, models.FavoritesPlaylistName)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []models.Playlist
	index := map[int64]int{}
	for rows.Next() {
		var p models.Playlist
		if err := rows.Scan(&p.PlaylistID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		index[p.PlaylistID] = len(playlists)
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	assocRows, err := r.db.QueryContext(ctx, "SELECT user_id, playlist_id FROM user_playlists")
	if err != nil {
		return nil, fmt.Errorf("failed to query user playlists: %w", err)
	}
	defer assocRows.Close()

	for assocRows.Next() {
		var up models.UserPlaylist
		if err := assocRows.Scan(&up.UserID, &up.PlaylistID); err != nil {
			return nil, fmt.Errorf("failed to scan user playlist: %w", err)
		}
		if i, ok := index[up.PlaylistID]; ok {
			playlists[i].UserIDs = append(playlists[i].UserIDs, up.UserID)
		}
	}
	if err := assocRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// ListIDs retrieves the ids of all playlists. Used by the playlists
// service to compute the next playlist id.
func (r *PlaylistRepository) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM playlists")
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan playlist id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ids, nil
}

// Create inserts a playlist row with the id already assigned by the
// caller.
func (r *PlaylistRepository) Create(ctx context.Context, p models.Playlist) error {
	_, err := r.db.ExecContext(ctx, "INSERT INTO playlists (id, name) VALUES (?, ?)", p.PlaylistID, p.Name)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}
	return nil
}

// Associate inserts a user_playlists row linking userID to playlistID.
func (r *PlaylistRepository) Associate(ctx context.Context, userID string, playlistID int64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO user_playlists (user_id, playlist_id) VALUES (?, ?)", userID, playlistID)
	if err != nil {
		return fmt.Errorf("failed to insert user playlist: %w", err)
	}
	return nil
}

// CreateWithUser inserts a playlist and its user association in one
// transaction. Used for the favorites singleton so the playlist never
// exists without its owner row.
func (r *PlaylistRepository) CreateWithUser(ctx context.Context, p models.Playlist, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "INSERT INTO playlists (id, name) VALUES (?, ?)", p.PlaylistID, p.Name); err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO user_playlists (user_id, playlist_id) VALUES (?, ?)", userID, p.PlaylistID); err != nil {
		return fmt.Errorf("failed to insert user playlist: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit playlist creation: %w", err)
	}
	return nil
}

// HasTrack reports whether the track is currently a member of the
// playlist.
func (r *PlaylistRepository) HasTrack(ctx context.Context, playlistID, trackID int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM playlist_tracks WHERE playlist_id = ? AND track_id = ?",
		playlistID, trackID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}

// AddTrack inserts a membership row. The composite primary key on
// (playlist_id, track_id) rejects duplicates at commit time even when
// two writers race past the service's membership check.
func (r *PlaylistRepository) AddTrack(ctx context.Context, playlistID, trackID int64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO playlist_tracks (playlist_id, track_id) VALUES (?, ?)", playlistID, trackID)
	if err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}
	return nil
}

// RemoveTrack deletes a membership row. Deleting an absent row affects
// nothing and reports no error.
func (r *PlaylistRepository) RemoveTrack(ctx context.Context, playlistID, trackID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM playlist_tracks WHERE playlist_id = ? AND track_id = ?", playlistID, trackID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return nil
}

// FavoriteTrackIDs retrieves the ids of all tracks in the user's
// favorites playlist as a lookup set. One query, O(1) membership tests
// afterwards; an absent favorites playlist yields an empty set.
func (r *PlaylistRepository) FavoriteTrackIDs(ctx context.Context, userID string) (map[int64]bool, error) {
	query := `
		SELECT pt.track_id
		FROM playlists p
		JOIN user_playlists up ON up.playlist_id = p.id
		JOIN playlist_tracks pt ON pt.playlist_id = p.id
		WHERE up.user_id = ? AND p.name = ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, models.FavoritesPlaylistName)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorite tracks: %w", err)
	}
	defer rows.Close()

	favorites := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan track id: %w", err)
		}
		favorites[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return favorites, nil
}

// HasFavorites reports whether userID has a playlist carrying the
// reserved favorites name.
func (r *PlaylistRepository) HasFavorites(ctx context.Context, userID string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM playlists p
		JOIN user_playlists up ON up.playlist_id = p.id
		WHERE up.user_id = ? AND p.name = ?
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, models.FavoritesPlaylistName).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check favorites: %w", err)
	}
	return count > 0, nil
}

// userIDs retrieves the user ids associated with one playlist.
func (r *PlaylistRepository) userIDs(ctx context.Context, playlistID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT user_id FROM user_playlists WHERE playlist_id = ?", playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user playlists: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ids, nil
}

// memberTracks retrieves the playlist's member tracks joined with album
// and artist names, ordered by track id ascending.
func (r *PlaylistRepository) memberTracks(ctx context.Context, playlistID int64) ([]models.TrackDetail, error) {
	query := `
		SELECT t.id, t.name, a.title, ar.name
		FROM playlist_tracks pt
		JOIN tracks t ON t.id = pt.track_id
		LEFT JOIN albums a ON a.id = t.album_id
		LEFT JOIN artists ar ON ar.id = a.artist_id
		WHERE pt.playlist_id = ?
		ORDER BY t.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.TrackDetail
	for rows.Next() {
		detail, err := scanTrackDetail(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}
