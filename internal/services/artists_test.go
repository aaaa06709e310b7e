package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chinook/internal/notify"
	"chinook/internal/shared"
)

func newArtistService(t *testing.T) (*ArtistService, *PlaylistService) {
	t.Helper()
	db := newTestDB(t)
	notifier := notify.NewManager()
	logger := shared.NewLogger(nil)
	return NewArtistService(db, logger), NewPlaylistService(db, notifier, logger)
}

func TestArtistService_ListArtists(t *testing.T) {
	ctx := context.Background()
	svc, _ := newArtistService(t)

	artists, err := svc.ListArtists(ctx)
	require.NoError(t, err)
	require.Len(t, artists, 2)

	assert.Equal(t, "Iron Horse", artists[0].Name)
	assert.Equal(t, "The Lanterns", artists[1].Name)

	require.Len(t, artists[0].Albums, 1)
	assert.Equal(t, "Coal and Steam", artists[0].Albums[0].Title)
}

func TestArtistService_GetArtist(t *testing.T) {
	ctx := context.Background()
	svc, _ := newArtistService(t)

	t.Run("known artist", func(t *testing.T) {
		artist, err := svc.GetArtist(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, artist)
		assert.Equal(t, "The Lanterns", artist.Name)
	})

	t.Run("unknown artist yields nil without error", func(t *testing.T) {
		artist, err := svc.GetArtist(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, artist)
	})
}

func TestArtistService_SearchArtists(t *testing.T) {
	ctx := context.Background()
	svc, _ := newArtistService(t)

	t.Run("case-insensitive substring match", func(t *testing.T) {
		artists, err := svc.SearchArtists(ctx, "lantern")
		require.NoError(t, err)
		require.Len(t, artists, 1)
		assert.Equal(t, "The Lanterns", artists[0].Name)
	})

	t.Run("empty query returns everything", func(t *testing.T) {
		artists, err := svc.SearchArtists(ctx, "")
		require.NoError(t, err)
		assert.Len(t, artists, 2)
	})

	t.Run("no match returns an empty slice", func(t *testing.T) {
		artists, err := svc.SearchArtists(ctx, "zzz")
		require.NoError(t, err)
		assert.Empty(t, artists)
	})
}

func TestArtistService_ListTracksForArtist(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the caller's favorites", func(t *testing.T) {
		svc, playlists := newArtistService(t)

		require.NoError(t, playlists.AddFavoriteTrack(ctx, "user-1", 2))

		tracks, err := svc.ListTracksForArtist(ctx, 1, "user-1")
		require.NoError(t, err)
		require.Len(t, tracks, 2)

		assert.Equal(t, "Boiler Room", tracks[0].TrackName)
		assert.False(t, tracks[0].IsFavorite)
		assert.Equal(t, "Last Spike", tracks[1].TrackName)
		assert.True(t, tracks[1].IsFavorite)
	})

	t.Run("no favorites playlist means no flags", func(t *testing.T) {
		svc, _ := newArtistService(t)

		tracks, err := svc.ListTracksForArtist(ctx, 1, "user-1")
		require.NoError(t, err)
		for _, track := range tracks {
			assert.False(t, track.IsFavorite)
		}
	})

	t.Run("empty user id is a validation error", func(t *testing.T) {
		svc, _ := newArtistService(t)

		_, err := svc.ListTracksForArtist(ctx, 1, "")
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestArtistService_ListAlbumsForArtist(t *testing.T) {
	ctx := context.Background()
	svc, _ := newArtistService(t)

	albums, err := svc.ListAlbumsForArtist(ctx, 1)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, "Coal and Steam", albums[0].Title)
}
