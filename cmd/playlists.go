package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"chinook/internal/formatter"
	"chinook/internal/shared"
	"chinook/internal/tasks"
	"chinook/internal/views"
)

// PlaylistsList prints playlists, favorites first. With --user it shows
// only that user's playlists.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	var playlists []views.Playlist
	var err error
	if userID := cmd.String("user"); userID != "" {
		playlists, err = r.library.ListPlaylistsForUser(ctx, userID)
	} else {
		playlists, err = r.library.ListPlaylists(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	r.writePlainHeader(fmt.Sprintf("Playlists (%d)", len(playlists)))
	for _, playlist := range playlists {
		r.writePlain("%d. %s (shared with %d user(s))\n", playlist.PlaylistID, playlist.Name, len(playlist.UserIDs))
	}
	return nil
}

// PlaylistsGet prints one playlist with membership, flagging the acting
// user's favorites.
func (r *Runner) PlaylistsGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	userID, err := r.resolveUser(cmd)
	if err != nil {
		return err
	}
	playlistID := cmd.Int64("id")

	playlist, err := r.library.GetPlaylist(ctx, userID, playlistID)
	if err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}
	if playlist == nil {
		r.writePlain("No playlist with id %d\n", playlistID)
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlist, true)
	}

	r.printPlaylist(playlist)
	return nil
}

// PlaylistsCreate creates a named playlist for the acting user.
func (r *Runner) PlaylistsCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	userID, err := r.resolveUser(cmd)
	if err != nil {
		return err
	}
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrValidation)
	}

	playlist, err := r.library.CreatePlaylist(ctx, name, userID)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	r.writePlain("✓ Created playlist '%s' with id %d\n", playlist.Name, playlist.PlaylistID)
	return nil
}

// PlaylistsAddTrack adds a track to a playlist.
func (r *Runner) PlaylistsAddTrack(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	playlistID := cmd.Int64("playlist-id")
	trackID := cmd.Int64("track-id")

	if err := r.library.AddTrackToPlaylist(ctx, playlistID, trackID); err != nil {
		return fmt.Errorf("failed to add track: %w", err)
	}

	r.writePlain("✓ Added track %d to playlist %d\n", trackID, playlistID)
	return nil
}

// PlaylistsRemoveTrack removes a track from a playlist. Removing a
// track that is not a member is a quiet no-op.
func (r *Runner) PlaylistsRemoveTrack(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	playlistID := cmd.Int64("playlist-id")
	trackID := cmd.Int64("track-id")

	if err := r.library.RemoveTrackFromPlaylist(ctx, trackID, playlistID); err != nil {
		return fmt.Errorf("failed to remove track: %w", err)
	}

	r.writePlain("✓ Removed track %d from playlist %d\n", trackID, playlistID)
	return nil
}

// PlaylistsExport writes a playlist to disk as csv, markdown, or text.
func (r *Runner) PlaylistsExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	userID, err := r.resolveUser(cmd)
	if err != nil {
		return err
	}
	playlistID := cmd.Int64("id")

	playlist, err := r.library.GetPlaylist(ctx, userID, playlistID)
	if err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}
	if playlist == nil {
		return fmt.Errorf("%w: no playlist with id %d", shared.ErrPlaylistNotFound, playlistID)
	}

	output := cmd.String("output")
	switch format := strings.ToLower(cmd.String("format")); format {
	case "csv":
		result, err := formatter.WriteCSVExport(playlist, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported tracks to %s\n", result.TracksFile)
		r.writePlain("✓ Exported metadata to %s\n", result.MetadataFile)
	case "markdown", "md":
		mdFile, err := formatter.WriteMarkdownExport(playlist, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported playlist to %s\n", mdFile)
	case "text", "txt":
		textFile, err := formatter.WriteTextExport(playlist, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported playlist to %s\n", textFile)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrValidation, format)
	}

	return nil
}

// PlaylistsExportAll writes every playlist of the acting user through
// the bulk export worker pool, streaming progress to the output.
func (r *Runner) PlaylistsExportAll(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	userID, err := r.resolveUser(cmd)
	if err != nil {
		return err
	}

	exporter := tasks.NewExporter(r.library)
	prog := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := exporter.BulkExport(ctx, prog, userID, tasks.BulkExportOpts{
		Format:     strings.ToLower(cmd.String("format")),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int64("workers")),
	})
	close(prog)
	<-done
	if err != nil {
		return fmt.Errorf("bulk export failed: %w", err)
	}

	r.writePlainln("✓ Exported %d/%d playlist(s) to %s", result.SuccessfulExports, result.TotalPlaylists, result.OutputDirectory)
	if result.FailedExports > 0 {
		r.writePlain("✗ %d playlist(s) failed, see %s\n", result.FailedExports, result.ManifestPath)
	}
	return nil
}

func (r *Runner) printPlaylist(playlist *views.Playlist) {
	r.writePlainHeader(fmt.Sprintf("%s (%d track(s))", playlist.Name, len(playlist.Tracks)))
	for _, track := range playlist.Tracks {
		marker := " "
		if track.IsFavorite {
			marker = "★"
		}
		r.writePlain("%s %d. %s - %s [%s]\n", marker, track.TrackID, track.ArtistName, track.TrackName, track.AlbumTitle)
	}
}
