package repositories

import (
	"context"
	"database/sql"
	"testing"

	"chinook/internal/models"
	"chinook/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// seedCatalog inserts a small catalog: two artists, two albums, four
// tracks (one without an album), and one user.
func seedCatalog(t *testing.T, db *sql.DB) {
	t.Helper()

	stmts := []string{
		`INSERT INTO artists (id, name) VALUES (1, 'Iron Horse'), (2, 'The Lanterns')`,
		`INSERT INTO albums (id, title, artist_id) VALUES (1, 'Coal and Steam', 1), (2, 'Night Signals', 2)`,
		`INSERT INTO tracks (id, name, album_id) VALUES
			(1, 'Boiler Room', 1),
			(2, 'Last Spike', 1),
			(3, 'Harbour Lights', 2),
			(4, 'Field Recording', NULL)`,
		`INSERT INTO users (id, email, display_name) VALUES ('user-1', 'u1@example.com', 'User One')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to seed catalog: %v", err)
		}
	}
}

func TestArtistRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		seedCatalog(t, db)

		repo := NewArtistRepository(db)
		artists, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list artists: %v", err)
		}

		if len(artists) != 2 {
			t.Fatalf("expected 2 artists, got %d", len(artists))
		}
		if artists[0].ArtistID != 1 || artists[1].ArtistID != 2 {
			t.Errorf("artists not ordered by id: %v, %v", artists[0].ArtistID, artists[1].ArtistID)
		}
		if len(artists[0].Albums) != 1 || artists[0].Albums[0].Title != "Coal and Steam" {
			t.Errorf("expected nested album for first artist, got %+v", artists[0].Albums)
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		seedCatalog(t, db)

		repo := NewArtistRepository(db)
		artist, err := repo.Get(ctx, 2)
		if err != nil {
			t.Fatalf("failed to get artist: %v", err)
		}
		if artist == nil || artist.Name != "The Lanterns" {
			t.Fatalf("expected The Lanterns, got %+v", artist)
		}
	})

	t.Run("Get Missing", func(t *testing.T) {
		db := setupTestDB(t)
		seedCatalog(t, db)

		repo := NewArtistRepository(db)
		artist, err := repo.Get(ctx, 99)
		if err != nil {
			t.Fatalf("missing artist should not error: %v", err)
		}
		if artist != nil {
			t.Errorf("expected nil for missing artist, got %+v", artist)
		}
	})

	t.Run("Albums Ordered By Title", func(t *testing.T) {
		db := setupTestDB(t)
		seedCatalog(t, db)
		if _, err := db.Exec(`INSERT INTO albums (id, title, artist_id) VALUES (3, 'Axle Grease', 1)`); err != nil {
			t.Fatalf("failed to insert album: %v", err)
		}

		repo := NewArtistRepository(db)
		albums, err := repo.Albums(ctx, 1)
		if err != nil {
			t.Fatalf("failed to list albums: %v", err)
		}
		if len(albums) != 2 {
			t.Fatalf("expected 2 albums, got %d", len(albums))
		}
		if albums[0].Title != "Axle Grease" || albums[1].Title != "Coal and Steam" {
			t.Errorf("albums not ordered by title: %s, %s", albums[0].Title, albums[1].Title)
		}
	})

	t.Run("TracksForArtist", func(t *testing.T) {
		db := setupTestDB(t)
		seedCatalog(t, db)

		repo := NewArtistRepository(db)
		tracks, err := repo.TracksForArtist(ctx, 1)
		if err != nil {
			t.Fatalf("failed to list artist tracks: %v", err)
		}
		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(tracks))
		}
		if tracks[0].AlbumTitle == nil || *tracks[0].AlbumTitle != "Coal and Steam" {
			t.Errorf("expected joined album title, got %+v", tracks[0].AlbumTitle)
		}
		if tracks[0].ArtistName == nil || *tracks[0].ArtistName != "Iron Horse" {
			t.Errorf("expected joined artist name, got %+v", tracks[0].ArtistName)
		}
	})
}

func TestTrackRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Find", func(t *testing.T) {
		db := setupTestDB(t)
		seedCatalog(t, db)

		repo := NewTrackRepository(db)
		track, err := repo.Find(ctx, 1)
		if err != nil {
			t.Fatalf("failed to find track: %v", err)
		}
		if track == nil || track.Name != "Boiler Room" {
			t.Fatalf("expected Boiler Room, got %+v", track)
		}
		if track.AlbumID == nil || *track.AlbumID != 1 {
			t.Errorf("expected album id 1, got %+v", track.AlbumID)
		}
	})

	t.Run("Find Orphan Track", func(t *testing.T) {
		db := setupTestDB(t)
		seedCatalog(t, db)

		repo := NewTrackRepository(db)
		track, err := repo.Find(ctx, 4)
		if err != nil {
			t.Fatalf("failed to find track: %v", err)
		}
		if track == nil || track.AlbumID != nil {
			t.Fatalf("expected track without album, got %+v", track)
		}
	})

	t.Run("Find Missing", func(t *testing.T) {
		db := setupTestDB(t)

		repo := NewTrackRepository(db)
		track, err := repo.Find(ctx, 42)
		if err != nil {
			t.Fatalf("missing track should not error: %v", err)
		}
		if track != nil {
			t.Errorf("expected nil for missing track, got %+v", track)
		}
	})
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create And Find", func(t *testing.T) {
		db := setupTestDB(t)

		repo := NewUserRepository(db)
		user := models.User{ID: shared.GenerateID(), Email: "test@example.com", DisplayName: "Test User"}

		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		found, err := repo.Find(ctx, user.ID)
		if err != nil {
			t.Fatalf("failed to find user: %v", err)
		}
		if found == nil || found.Email != user.Email {
			t.Fatalf("expected %+v, got %+v", user, found)
		}
	})

	t.Run("Find Missing", func(t *testing.T) {
		db := setupTestDB(t)

		repo := NewUserRepository(db)
		found, err := repo.Find(ctx, "nobody")
		if err != nil {
			t.Fatalf("missing user should not error: %v", err)
		}
		if found != nil {
			t.Errorf("expected nil for missing user, got %+v", found)
		}
	})
}

func TestPlaylistRepository(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*sql.DB, *PlaylistRepository) {
		t.Helper()
		db := setupTestDB(t)
		seedCatalog(t, db)
		return db, NewPlaylistRepository(db)
	}

	t.Run("Create FindByID", func(t *testing.T) {
		_, repo := setup(t)

		p := models.Playlist{PlaylistID: 1, Name: "Road Trip"}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}
		if err := repo.Associate(ctx, "user-1", 1); err != nil {
			t.Fatalf("failed to associate user: %v", err)
		}

		found, err := repo.FindByID(ctx, 1, false)
		if err != nil {
			t.Fatalf("failed to find playlist: %v", err)
		}
		if found == nil || found.Name != "Road Trip" {
			t.Fatalf("expected Road Trip, got %+v", found)
		}
		if len(found.UserIDs) != 1 || found.UserIDs[0] != "user-1" {
			t.Errorf("expected user association, got %+v", found.UserIDs)
		}
		if found.Tracks != nil {
			t.Errorf("tracks should not be loaded without withTracks")
		}
	})

	t.Run("FindByID Missing", func(t *testing.T) {
		_, repo := setup(t)

		found, err := repo.FindByID(ctx, 9, false)
		if err != nil {
			t.Fatalf("missing playlist should not error: %v", err)
		}
		if found != nil {
			t.Errorf("expected nil for missing playlist, got %+v", found)
		}
	})

	t.Run("Membership", func(t *testing.T) {
		_, repo := setup(t)

		if err := repo.Create(ctx, models.Playlist{PlaylistID: 1, Name: "Road Trip"}); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		has, err := repo.HasTrack(ctx, 1, 1)
		if err != nil {
			t.Fatalf("failed to check membership: %v", err)
		}
		if has {
			t.Error("new playlist should have no members")
		}

		if err := repo.AddTrack(ctx, 1, 1); err != nil {
			t.Fatalf("failed to add track: %v", err)
		}
		if err := repo.AddTrack(ctx, 1, 4); err != nil {
			t.Fatalf("failed to add orphan track: %v", err)
		}

		// Composite primary key rejects a duplicate row.
		if err := repo.AddTrack(ctx, 1, 1); err == nil {
			t.Error("duplicate membership insert should fail")
		}

		found, err := repo.FindByID(ctx, 1, true)
		if err != nil {
			t.Fatalf("failed to load playlist with tracks: %v", err)
		}
		if len(found.Tracks) != 2 {
			t.Fatalf("expected 2 member tracks, got %d", len(found.Tracks))
		}
		if found.Tracks[0].TrackID != 1 || found.Tracks[1].TrackID != 4 {
			t.Errorf("tracks not ordered by id: %+v", found.Tracks)
		}
		if found.Tracks[1].AlbumTitle != nil {
			t.Errorf("orphan track should have nil album title, got %v", *found.Tracks[1].AlbumTitle)
		}

		if err := repo.RemoveTrack(ctx, 1, 1); err != nil {
			t.Fatalf("failed to remove track: %v", err)
		}
		// Removing an absent row is not an error.
		if err := repo.RemoveTrack(ctx, 1, 1); err != nil {
			t.Fatalf("removing absent membership should not error: %v", err)
		}
	})

	t.Run("List Favorites First", func(t *testing.T) {
		_, repo := setup(t)

		for _, p := range []models.Playlist{
			{PlaylistID: 1, Name: "Road Trip"},
			{PlaylistID: 2, Name: "Workout"},
			{PlaylistID: 5, Name: models.FavoritesPlaylistName},
		} {
			if err := repo.Create(ctx, p); err != nil {
				t.Fatalf("failed to create playlist: %v", err)
			}
		}

		playlists, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}

		got := []int64{playlists[0].PlaylistID, playlists[1].PlaylistID, playlists[2].PlaylistID}
		want := []int64{5, 1, 2}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected order %v, got %v", want, got)
			}
		}
	})

	t.Run("FindByUserAndName FavoriteTrackIDs", func(t *testing.T) {
		_, repo := setup(t)

		if err := repo.CreateWithUser(ctx, models.Playlist{PlaylistID: 1, Name: models.FavoritesPlaylistName}, "user-1"); err != nil {
			t.Fatalf("failed to create favorites: %v", err)
		}
		if err := repo.AddTrack(ctx, 1, 2); err != nil {
			t.Fatalf("failed to add track: %v", err)
		}
		if err := repo.AddTrack(ctx, 1, 3); err != nil {
			t.Fatalf("failed to add track: %v", err)
		}

		found, err := repo.FindByUserAndName(ctx, "user-1", models.FavoritesPlaylistName)
		if err != nil {
			t.Fatalf("failed to find favorites: %v", err)
		}
		if found == nil || found.PlaylistID != 1 {
			t.Fatalf("expected favorites playlist, got %+v", found)
		}

		none, err := repo.FindByUserAndName(ctx, "someone-else", models.FavoritesPlaylistName)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if none != nil {
			t.Errorf("expected nil for other user, got %+v", none)
		}

		favs, err := repo.FavoriteTrackIDs(ctx, "user-1")
		if err != nil {
			t.Fatalf("failed to load favorite ids: %v", err)
		}
		if len(favs) != 2 || !favs[2] || !favs[3] {
			t.Errorf("expected favorite set {2,3}, got %v", favs)
		}

		has, err := repo.HasFavorites(ctx, "user-1")
		if err != nil {
			t.Fatalf("failed to check favorites: %v", err)
		}
		if !has {
			t.Error("user-1 should have a favorites playlist")
		}
	})
}
