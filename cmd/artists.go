package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// ArtistsList prints every artist in the catalog with its albums.
func (r *Runner) ArtistsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	artists, err := r.catalog.ListArtists(ctx)
	if err != nil {
		return fmt.Errorf("failed to list artists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(artists, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Artists (%d)", len(artists)))
	for _, artist := range artists {
		r.writePlain("%d. %s\n", artist.ArtistID, artist.Name)
		for _, album := range artist.Albums {
			r.writePlain("   - %s\n", album.Title)
		}
	}
	return nil
}

// ArtistsSearch prints artists whose names match the query.
func (r *Runner) ArtistsSearch(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	query := cmd.StringArg("query")
	r.logger.Debug("searching artists", "query", query)

	artists, err := r.catalog.SearchArtists(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to search artists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(artists, true)
	}

	if len(artists) == 0 {
		r.writePlain("No artists matched %q\n", query)
		return nil
	}
	for _, artist := range artists {
		r.writePlain("%d. %s (%d album(s))\n", artist.ArtistID, artist.Name, len(artist.Albums))
	}
	return nil
}

// ArtistsTracks prints an artist's tracks with the acting user's
// favorites marked.
func (r *Runner) ArtistsTracks(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	userID, err := r.resolveUser(cmd)
	if err != nil {
		return err
	}
	artistID := cmd.Int64("id")

	artist, err := r.catalog.GetArtist(ctx, artistID)
	if err != nil {
		return fmt.Errorf("failed to load artist: %w", err)
	}
	if artist == nil {
		r.writePlain("No artist with id %d\n", artistID)
		return nil
	}

	tracks, err := r.catalog.ListTracksForArtist(ctx, artistID, userID)
	if err != nil {
		return fmt.Errorf("failed to list tracks: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s (%d track(s))", artist.Name, len(tracks)))
	for _, track := range tracks {
		marker := " "
		if track.IsFavorite {
			marker = "★"
		}
		r.writePlain("%s %d. %s [%s]\n", marker, track.TrackID, track.TrackName, track.AlbumTitle)
	}
	return nil
}
