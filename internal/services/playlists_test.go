package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chinook/internal/models"
	"chinook/internal/notify"
	"chinook/internal/shared"
)

// newTestDB creates an in-memory store with the schema applied and a
// small catalog: two artists, two albums, four tracks (one with no
// album), and two users.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, shared.RunMigrations(db))

	stmts := []string{
		`INSERT INTO artists (id, name) VALUES (1, 'Iron Horse'), (2, 'The Lanterns')`,
		`INSERT INTO albums (id, title, artist_id) VALUES (1, 'Coal and Steam', 1), (2, 'Night Signals', 2)`,
		`INSERT INTO tracks (id, name, album_id) VALUES
			(1, 'Boiler Room', 1),
			(2, 'Last Spike', 1),
			(3, 'Harbour Lights', 2),
			(4, 'Field Recording', NULL)`,
		`INSERT INTO users (id, email, display_name) VALUES
			('user-1', 'u1@example.com', 'User One'),
			('user-2', 'u2@example.com', 'User Two')`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	return db
}

func newPlaylistService(t *testing.T) (*PlaylistService, *notify.Manager, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	notifier := notify.NewManager()
	return NewPlaylistService(db, notifier, shared.NewLogger(nil)), notifier, db
}

// favoritesCount counts the user's playlists carrying the reserved name.
func favoritesCount(t *testing.T, db *sql.DB, userID string) int {
	t.Helper()
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM playlists p
		JOIN user_playlists up ON up.playlist_id = p.id
		WHERE up.user_id = ? AND p.name = ?
	`, userID, models.FavoritesPlaylistName).Scan(&count)
	require.NoError(t, err)
	return count
}

func TestPlaylistService_AddFavoriteTrack(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the favorites playlist on first use", func(t *testing.T) {
		svc, notifier, db := newPlaylistService(t)

		var notified int
		notifier.Subscribe(func() { notified++ })

		require.NoError(t, svc.AddFavoriteTrack(ctx, "user-1", 1))

		assert.Equal(t, 1, favoritesCount(t, db, "user-1"))
		assert.Equal(t, 1, notified, "favorites creation should broadcast once")

		has, err := svc.HasFavoritePlaylist(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("keeps a single favorites playlist across calls", func(t *testing.T) {
		svc, _, db := newPlaylistService(t)

		require.NoError(t, svc.AddFavoriteTrack(ctx, "user-1", 1))
		require.NoError(t, svc.AddFavoriteTrack(ctx, "user-1", 2))
		require.NoError(t, svc.AddFavoriteTrack(ctx, "user-1", 3))

		assert.Equal(t, 1, favoritesCount(t, db, "user-1"))
	})

	t.Run("each user gets their own favorites playlist", func(t *testing.T) {
		svc, _, db := newPlaylistService(t)

		require.NoError(t, svc.AddFavoriteTrack(ctx, "user-1", 1))
		require.NoError(t, svc.AddFavoriteTrack(ctx, "user-2", 1))

		assert.Equal(t, 1, favoritesCount(t, db, "user-1"))
		assert.Equal(t, 1, favoritesCount(t, db, "user-2"))
	})

	t.Run("duplicate favorite is a conflict", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		require.NoError(t, svc.AddFavoriteTrack(ctx, "user-1", 1))

		err := svc.AddFavoriteTrack(ctx, "user-1", 1)
		assert.ErrorIs(t, err, shared.ErrConflict)
		assert.ErrorIs(t, err, shared.ErrDuplicateFavorite)
	})

	t.Run("empty user id is a validation error", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		err := svc.AddFavoriteTrack(ctx, "", 1)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("unknown track is not found", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		err := svc.AddFavoriteTrack(ctx, "user-1", 42)
		assert.ErrorIs(t, err, shared.ErrTrackNotFound)
	})

	t.Run("concurrent first favorites create one playlist", func(t *testing.T) {
		svc, _, db := newPlaylistService(t)

		trackIDs := []int64{1, 2, 3, 4}
		var wg sync.WaitGroup
		for _, trackID := range trackIDs {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				assert.NoError(t, svc.AddFavoriteTrack(ctx, "user-1", id))
			}(trackID)
		}
		wg.Wait()

		assert.Equal(t, 1, favoritesCount(t, db, "user-1"))
	})
}

func TestPlaylistService_RemoveFavoriteTrack(t *testing.T) {
	ctx := context.Background()

	t.Run("removes an existing favorite", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		require.NoError(t, svc.AddFavoriteTrack(ctx, "user-1", 1))
		require.NoError(t, svc.RemoveFavoriteTrack(ctx, "user-1", 1))

		// Removed track can be favorited again.
		assert.NoError(t, svc.AddFavoriteTrack(ctx, "user-1", 1))
	})

	t.Run("without a favorites playlist is a validation error", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		err := svc.RemoveFavoriteTrack(ctx, "user-1", 1)
		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.ErrorIs(t, err, shared.ErrNoFavorites)
	})

	t.Run("track not in favorites is not found", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		require.NoError(t, svc.AddFavoriteTrack(ctx, "user-1", 1))

		err := svc.RemoveFavoriteTrack(ctx, "user-1", 2)
		assert.ErrorIs(t, err, shared.ErrTrackNotFound)
	})

	t.Run("empty user id is a validation error", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		err := svc.RemoveFavoriteTrack(ctx, "", 1)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestPlaylistService_AddTrackToPlaylist(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a track", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		created, err := svc.CreatePlaylist(ctx, "Road Trip", "user-1")
		require.NoError(t, err)

		require.NoError(t, svc.AddTrackToPlaylist(ctx, created.PlaylistID, 1))

		view, err := svc.GetPlaylist(ctx, "user-1", created.PlaylistID)
		require.NoError(t, err)
		require.Len(t, view.Tracks, 1)
		assert.Equal(t, int64(1), view.Tracks[0].TrackID)
	})

	t.Run("non-positive playlist id is a validation error", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		assert.ErrorIs(t, svc.AddTrackToPlaylist(ctx, 0, 1), shared.ErrValidation)
		assert.ErrorIs(t, svc.AddTrackToPlaylist(ctx, -3, 1), shared.ErrValidation)
	})

	t.Run("unknown playlist and unknown track fail distinctly", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		err := svc.AddTrackToPlaylist(ctx, 7, 1)
		assert.ErrorIs(t, err, shared.ErrPlaylistNotFound)

		created, cerr := svc.CreatePlaylist(ctx, "Road Trip", "user-1")
		require.NoError(t, cerr)

		err = svc.AddTrackToPlaylist(ctx, created.PlaylistID, 42)
		assert.ErrorIs(t, err, shared.ErrTrackNotFound)
		assert.NotErrorIs(t, err, shared.ErrPlaylistNotFound)
	})

	t.Run("duplicate membership is a conflict naming track and playlist", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		created, err := svc.CreatePlaylist(ctx, "Road Trip", "user-1")
		require.NoError(t, err)
		require.NoError(t, svc.AddTrackToPlaylist(ctx, created.PlaylistID, 1))

		err = svc.AddTrackToPlaylist(ctx, created.PlaylistID, 1)
		assert.ErrorIs(t, err, shared.ErrDuplicateTrack)
		assert.Contains(t, err.Error(), "Boiler Room")
		assert.Contains(t, err.Error(), "Road Trip")
	})
}

func TestPlaylistService_RemoveTrackFromPlaylist(t *testing.T) {
	ctx := context.Background()

	t.Run("second removal is a no-op, not an error", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		created, err := svc.CreatePlaylist(ctx, "Road Trip", "user-1")
		require.NoError(t, err)
		require.NoError(t, svc.AddTrackToPlaylist(ctx, created.PlaylistID, 1))

		assert.NoError(t, svc.RemoveTrackFromPlaylist(ctx, 1, created.PlaylistID))
		assert.NoError(t, svc.RemoveTrackFromPlaylist(ctx, 1, created.PlaylistID))
	})

	t.Run("unknown playlist is not found", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		err := svc.RemoveTrackFromPlaylist(ctx, 1, 7)
		assert.ErrorIs(t, err, shared.ErrPlaylistNotFound)
	})
}

func TestPlaylistService_CreatePlaylist(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns max existing id plus one", func(t *testing.T) {
		svc, _, db := newPlaylistService(t)

		_, err := db.Exec(`INSERT INTO playlists (id, name) VALUES (10, 'Old Mixtape')`)
		require.NoError(t, err)

		created, err := svc.CreatePlaylist(ctx, "Road Trip", "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(11), created.PlaylistID)
		assert.Equal(t, "Road Trip", created.Name)
		assert.Equal(t, []string{"user-1"}, created.UserIDs)
	})

	t.Run("first playlist gets id 1", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		created, err := svc.CreatePlaylist(ctx, "Road Trip", "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.PlaylistID)
	})

	t.Run("same name twice for one user is a conflict", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		_, err := svc.CreatePlaylist(ctx, "Road Trip", "user-1")
		require.NoError(t, err)

		_, err = svc.CreatePlaylist(ctx, "Road Trip", "user-1")
		assert.ErrorIs(t, err, shared.ErrDuplicatePlaylist)
	})

	t.Run("same name for different users is allowed", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		_, err := svc.CreatePlaylist(ctx, "Road Trip", "user-1")
		require.NoError(t, err)

		_, err = svc.CreatePlaylist(ctx, "Road Trip", "user-2")
		assert.NoError(t, err)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		_, err := svc.CreatePlaylist(ctx, "Road Trip", "nobody")
		assert.ErrorIs(t, err, shared.ErrUserNotFound)
	})

	t.Run("notifies subscribers after creation", func(t *testing.T) {
		svc, notifier, _ := newPlaylistService(t)

		var notified int
		notifier.Subscribe(func() { notified++ })

		_, err := svc.CreatePlaylist(ctx, "Road Trip", "user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, notified)
	})
}

func TestPlaylistService_ListPlaylists(t *testing.T) {
	ctx := context.Background()

	t.Run("favorites sorts first regardless of owner", func(t *testing.T) {
		svc, _, db := newPlaylistService(t)

		stmts := []string{
			`INSERT INTO playlists (id, name) VALUES (1, 'Road Trip'), (2, 'Workout')`,
			`INSERT INTO playlists (id, name) VALUES (5, '` + models.FavoritesPlaylistName + `')`,
			`INSERT INTO user_playlists (user_id, playlist_id) VALUES ('user-1', 1), ('user-2', 2), ('user-2', 5)`,
		}
		for _, stmt := range stmts {
			_, err := db.Exec(stmt)
			require.NoError(t, err)
		}

		playlists, err := svc.ListPlaylists(ctx)
		require.NoError(t, err)
		require.Len(t, playlists, 3)

		got := []int64{playlists[0].PlaylistID, playlists[1].PlaylistID, playlists[2].PlaylistID}
		assert.Equal(t, []int64{5, 1, 2}, got)
	})

	t.Run("user filter keeps the global order", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		require.NoError(t, svc.AddFavoriteTrack(ctx, "user-1", 1)) // favorites becomes playlist 1
		_, err := svc.CreatePlaylist(ctx, "Road Trip", "user-1")
		require.NoError(t, err)
		_, err = svc.CreatePlaylist(ctx, "Other", "user-2")
		require.NoError(t, err)

		mine, err := svc.ListPlaylistsForUser(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, models.FavoritesPlaylistName, mine[0].Name)
		assert.Equal(t, "Road Trip", mine[1].Name)
	})
}

func TestPlaylistService_GetPlaylist(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown playlist yields nil without error", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		view, err := svc.GetPlaylist(ctx, "user-1", 7)
		require.NoError(t, err)
		assert.Nil(t, view)
	})

	t.Run("empty user id is a validation error", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		_, err := svc.GetPlaylist(ctx, "", 1)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("favorite flags follow the caller, not the owner", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		// user-2 owns a playlist holding tracks 1 and 2; user-1 has
		// favorited track 2 only.
		created, err := svc.CreatePlaylist(ctx, "Owned By Two", "user-2")
		require.NoError(t, err)
		require.NoError(t, svc.AddTrackToPlaylist(ctx, created.PlaylistID, 1))
		require.NoError(t, svc.AddTrackToPlaylist(ctx, created.PlaylistID, 2))
		require.NoError(t, svc.AddFavoriteTrack(ctx, "user-1", 2))

		view, err := svc.GetPlaylist(ctx, "user-1", created.PlaylistID)
		require.NoError(t, err)
		require.Len(t, view.Tracks, 2)

		assert.False(t, view.Tracks[0].IsFavorite, "track 1 is not a favorite of user-1")
		assert.True(t, view.Tracks[1].IsFavorite, "track 2 is a favorite of user-1")

		// The owner sees their own flags: none favorited.
		ownerView, err := svc.GetPlaylist(ctx, "user-2", created.PlaylistID)
		require.NoError(t, err)
		assert.False(t, ownerView.Tracks[0].IsFavorite)
		assert.False(t, ownerView.Tracks[1].IsFavorite)
	})

	t.Run("tracks without an album map to the sentinel title", func(t *testing.T) {
		svc, _, _ := newPlaylistService(t)

		created, err := svc.CreatePlaylist(ctx, "Mixed", "user-1")
		require.NoError(t, err)
		require.NoError(t, svc.AddTrackToPlaylist(ctx, created.PlaylistID, 3))
		require.NoError(t, svc.AddTrackToPlaylist(ctx, created.PlaylistID, 4))

		view, err := svc.GetPlaylist(ctx, "user-1", created.PlaylistID)
		require.NoError(t, err)
		require.Len(t, view.Tracks, 2)

		assert.Equal(t, "Night Signals", view.Tracks[0].AlbumTitle)
		assert.Equal(t, "The Lanterns", view.Tracks[0].ArtistName)
		assert.Equal(t, "-", view.Tracks[1].AlbumTitle)
		assert.Equal(t, "", view.Tracks[1].ArtistName)
	})
}
