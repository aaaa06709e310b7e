package tasks

import (
	"context"

	"chinook/internal/views"
)

// PlaylistReader is the subset of the playlist service the exporter
// reads from. The abstraction allows failure injection in tests.
type PlaylistReader interface {
	ListPlaylistsForUser(ctx context.Context, userID string) ([]views.Playlist, error)
	GetPlaylist(ctx context.Context, userID string, playlistID int64) (*views.Playlist, error)
}

// PlaylistExportJob is one unit of work for an export worker.
type PlaylistExportJob struct {
	Playlist *views.Playlist
}

// PlaylistExportResult represents the outcome of exporting one playlist.
type PlaylistExportResult struct {
	PlaylistID   int64    // Playlist that was exported
	PlaylistName string   // Name at export time
	Success      bool     // Whether every file was written
	Files        []string // Paths of the files produced
	Error        error    // Failure cause when Success is false
}

// BulkExportResult contains all data from a bulk export run.
type BulkExportResult struct {
	TotalPlaylists    int                    // Playlists considered
	SuccessfulExports int                    // Playlists fully written
	FailedExports     int                    // Playlists that failed
	OutputDirectory   string                 // Base directory of the run
	ManifestPath      string                 // Path of the manifest file
	Results           []PlaylistExportResult // Per-playlist outcomes
}

// Exporter implements bulk playlist export over a playlist reader.
type Exporter struct {
	library PlaylistReader
}

// NewExporter creates an Exporter reading from the provided service.
func NewExporter(library PlaylistReader) *Exporter {
	return &Exporter{library: library}
}

// sendProgress sends an update without blocking. Slow consumers drop
// updates rather than stalling the export.
func (e *Exporter) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}
