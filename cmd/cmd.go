// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// configFlag is shared by commands that read the TOML config file.
func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// userFlag selects the acting user for user-scoped operations.
func userFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "Acting user id (defaults to app.default_user)",
	}
}

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "seed",
				Usage:  "Load the sample catalog into the database",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SeedDatabase,
			},
		},
	}
}

// artistsCommand handles catalog browsing operations.
func artistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "artists",
		Aliases: []string{"art"},
		Usage:   "Browse the artist catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all artists with their albums",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.ArtistsList,
			},
			{
				Name:  "search",
				Usage: "Search artists by name",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.ArtistsSearch,
			},
			{
				Name:  "tracks",
				Usage: "List an artist's tracks with favorite markers",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Artist ID",
						Required: true,
					},
					userFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.ArtistsTracks,
			},
		},
	}
}

// playlistsCommand handles playlist operations.
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List playlists (all, or one user's with --user)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "Filter to one user's playlists"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.PlaylistsList,
			},
			{
				Name:  "get",
				Usage: "Show a playlist with its tracks",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Playlist ID",
						Required: true,
					},
					userFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.PlaylistsGet,
			},
			{
				Name:  "create",
				Usage: "Create a playlist for a user",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags:  []cli.Flag{userFlag()},
				Action: r.PlaylistsCreate,
			},
			{
				Name:  "add",
				Usage: "Add a track to a playlist",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "playlist-id",
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.Int64Flag{
						Name:     "track-id",
						Usage:    "Track ID",
						Required: true,
					},
				},
				Action: r.PlaylistsAddTrack,
			},
			{
				Name:  "remove",
				Usage: "Remove a track from a playlist",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "playlist-id",
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.Int64Flag{
						Name:     "track-id",
						Usage:    "Track ID",
						Required: true,
					},
				},
				Action: r.PlaylistsRemoveTrack,
			},
			{
				Name:  "export",
				Usage: "Export a playlist to csv, markdown, or text",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Usage:    "Playlist ID",
						Required: true,
					},
					userFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, or text",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (base filename for csv, directory for markdown)",
					},
				},
				Action: r.PlaylistsExport,
			},
			{
				Name:  "export-all",
				Usage: "Export every playlist of a user concurrently",
				Flags: []cli.Flag{
					userFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, or txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: playlist_export_{epoch})",
					},
					&cli.Int64Flag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 5,
					},
				},
				Action: r.PlaylistsExportAll,
			},
		},
	}
}

// favoritesCommand handles the favorites playlist.
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage a user's favorite tracks",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show the user's favorite tracks",
				Flags: []cli.Flag{
					userFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.FavoritesList,
			},
			{
				Name:  "add",
				Usage: "Mark a track as a favorite",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "track-id",
						Usage:    "Track ID",
						Required: true,
					},
					userFlag(),
				},
				Action: r.FavoritesAdd,
			},
			{
				Name:  "remove",
				Usage: "Unmark a favorite track",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "track-id",
						Usage:    "Track ID",
						Required: true,
					},
					userFlag(),
				},
				Action: r.FavoritesRemove,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing playlists",
		Flags:   []cli.Flag{userFlag()},
		Action:  r.TUI,
	}
}
