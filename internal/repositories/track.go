package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"chinook/internal/models"
)

// TrackRepository serves track lookups by id.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new TrackRepository with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Find retrieves a track by id. Returns (nil, nil) when no track has
// the given id.
func (r *TrackRepository) Find(ctx context.Context, trackID int64) (*models.Track, error) {
	var (
		t       models.Track
		albumID sql.NullInt64
	)

	err := r.db.QueryRowContext(ctx, "SELECT id, name, album_id FROM tracks WHERE id = ?", trackID).
		Scan(&t.TrackID, &t.Name, &albumID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	if albumID.Valid {
		t.AlbumID = &albumID.Int64
	}

	return &t, nil
}
