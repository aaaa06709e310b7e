package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// FavoritesList prints the acting user's favorite tracks.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	userID, err := r.resolveUser(cmd)
	if err != nil {
		return err
	}

	has, err := r.library.HasFavoritePlaylist(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check favorites: %w", err)
	}
	if !has {
		r.writePlain("No favorites yet. Add one with 'chinook favorites add --track-id <id>'\n")
		return nil
	}

	playlists, err := r.library.ListPlaylistsForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	for _, playlist := range playlists {
		if !playlist.IsFavorites() {
			continue
		}
		loaded, err := r.library.GetPlaylist(ctx, userID, playlist.PlaylistID)
		if err != nil {
			return fmt.Errorf("failed to load favorites: %w", err)
		}
		if cmd.Bool("json") {
			return r.writeJSON(loaded, true)
		}
		r.printPlaylist(loaded)
		return nil
	}

	r.writePlain("No favorites yet.\n")
	return nil
}

// FavoritesAdd marks a track as a favorite, creating the favorites
// playlist on first use.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	userID, err := r.resolveUser(cmd)
	if err != nil {
		return err
	}
	trackID := cmd.Int64("track-id")

	if err := r.library.AddFavoriteTrack(ctx, userID, trackID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	r.writePlain("★ Track %d added to favorites\n", trackID)
	return nil
}

// FavoritesRemove unmarks a favorite track.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	userID, err := r.resolveUser(cmd)
	if err != nil {
		return err
	}
	trackID := cmd.Int64("track-id")

	if err := r.library.RemoveFavoriteTrack(ctx, userID, trackID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	r.writePlain("Track %d removed from favorites\n", trackID)
	return nil
}
