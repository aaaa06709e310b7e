package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"chinook/internal/models"
)

// ArtistRepository serves read-only catalog queries over artists,
// albums, and per-artist track listings.
type ArtistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates a new ArtistRepository with the given database connection
func NewArtistRepository(db *sql.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// List retrieves all artists ordered by id ascending, each with its
// albums nested. Albums are fetched in one query and grouped in memory
// to avoid a per-artist round trip.
func (r *ArtistRepository) List(ctx context.Context) ([]models.Artist, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM artists ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []models.Artist
	index := map[int64]int{}
	for rows.Next() {
		var a models.Artist
		if err := rows.Scan(&a.ArtistID, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		index[a.ArtistID] = len(artists)
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	albumRows, err := r.db.QueryContext(ctx, "SELECT id, title, artist_id FROM albums ORDER BY artist_id ASC, title ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}
	defer albumRows.Close()

	for albumRows.Next() {
		var al models.Album
		if err := albumRows.Scan(&al.AlbumID, &al.Title, &al.ArtistID); err != nil {
			return nil, fmt.Errorf("failed to scan album: %w", err)
		}
		if i, ok := index[al.ArtistID]; ok {
			artists[i].Albums = append(artists[i].Albums, al)
		}
	}
	if err := albumRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return artists, nil
}

// Get retrieves a single artist with nested albums. Returns (nil, nil)
// when no artist has the given id.
func (r *ArtistRepository) Get(ctx context.Context, artistID int64) (*models.Artist, error) {
	var a models.Artist
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM artists WHERE id = ?", artistID).
		Scan(&a.ArtistID, &a.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan artist: %w", err)
	}

	albums, err := r.Albums(ctx, artistID)
	if err != nil {
		return nil, err
	}
	a.Albums = albums

	return &a, nil
}

// Albums retrieves the albums of one artist ordered by title ascending.
func (r *ArtistRepository) Albums(ctx context.Context, artistID int64) ([]models.Album, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, artist_id FROM albums WHERE artist_id = ? ORDER BY title ASC", artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}
	defer rows.Close()

	var albums []models.Album
	for rows.Next() {
		var al models.Album
		if err := rows.Scan(&al.AlbumID, &al.Title, &al.ArtistID); err != nil {
			return nil, fmt.Errorf("failed to scan album: %w", err)
		}
		albums = append(albums, al)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return albums, nil
}

// TracksForArtist retrieves the tracks on an artist's albums, joined
// with album title and artist name, ordered by track id ascending.
// Tracks without an album never belong to an artist's listing.
func (r *ArtistRepository) TracksForArtist(ctx context.Context, artistID int64) ([]models.TrackDetail, error) {
	query := `
		SELECT t.id, t.name, a.title, ar.name
		FROM tracks t
		JOIN albums a ON a.id = t.album_id
		JOIN artists ar ON ar.id = a.artist_id
		WHERE a.artist_id = ?
		ORDER BY t.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query artist tracks: %w", err)
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

// scanTrackDetail scans a (track id, track name, album title, artist
// name) row where the album and artist columns may be NULL.
func scanTrackDetail(rows *sql.Rows) (models.TrackDetail, error) {
	var (
		detail     models.TrackDetail
		albumTitle sql.NullString
		artistName sql.NullString
	)

	if err := rows.Scan(&detail.TrackID, &detail.Name, &albumTitle, &artistName); err != nil {
		return models.TrackDetail{}, fmt.Errorf("failed to scan track: %w", err)
	}

	if albumTitle.Valid {
		detail.AlbumTitle = &albumTitle.String
	}
	if artistName.Valid {
		detail.ArtistName = &artistName.String
	}

	return detail, nil
}
