package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"chinook/internal/formatter"
	"chinook/internal/shared"
	"chinook/internal/views"
)

// BulkExportOpts contains configuration for bulk playlist exports.
type BulkExportOpts struct {
	Format     string // Export format: json, csv, markdown, txt
	OutputDir  string // Base output directory (default: playlist_export_{epoch})
	NumWorkers int    // Concurrent workers (default: 5, max: 10)
}

// BulkExport writes every playlist of a user concurrently with progress tracking.
//
// A worker pool bounds filesystem concurrency. Per-playlist failures are
// collected in the result rather than aborting the run, and a manifest
// file summarizing the outcome is written last.
func (e *Exporter) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	userID string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if userID == "" {
		return nil, shared.ErrMissingUserID
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("playlist_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}

	e.sendProgress(prog, fetchingPlaylistsUpdate(userID))

	playlists, err := e.library.ListPlaylistsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	e.sendProgress(prog, foundPlaylistsUpdate(len(playlists)))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalPlaylists:  len(playlists),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistExportResult, 0, len(playlists)),
	}

	jobs := make(chan PlaylistExportJob, len(playlists))
	results := make(chan PlaylistExportResult, len(playlists))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, playlist := range playlists {
			select {
			case <-ctx.Done():
				return
			default:
			}

			loaded, err := e.library.GetPlaylist(ctx, userID, playlist.PlaylistID)
			if err != nil {
				results <- PlaylistExportResult{
					PlaylistID:   playlist.PlaylistID,
					PlaylistName: playlist.Name,
					Success:      false,
					Error:        fmt.Errorf("failed to load playlist: %w", err),
				}
				continue
			}
			if loaded == nil {
				results <- PlaylistExportResult{
					PlaylistID:   playlist.PlaylistID,
					PlaylistName: playlist.Name,
					Success:      false,
					Error:        fmt.Errorf("%w: playlist %d vanished during export", shared.ErrPlaylistNotFound, playlist.PlaylistID),
				}
				continue
			}

			jobs <- PlaylistExportJob{Playlist: loaded}
			e.sendProgress(prog, exportingPlaylistUpdate(i+1, len(playlists), loaded.Name))
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(playlists), res.PlaylistName, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(playlists), res.PlaylistName, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := writeManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker drains the jobs channel, writing one playlist at a time.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan PlaylistExportJob,
	results chan<- PlaylistExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- exportSinglePlaylist(job.Playlist, opts)
	}
}

// exportSinglePlaylist writes one playlist in the requested format.
func exportSinglePlaylist(playlist *views.Playlist, opts BulkExportOpts) PlaylistExportResult {
	result := PlaylistExportResult{
		PlaylistID:   playlist.PlaylistID,
		PlaylistName: playlist.Name,
		Success:      false,
		Files:        []string{},
	}
	base := fmt.Sprintf("%d", playlist.PlaylistID)

	switch opts.Format {
	case "csv":
		csvRes, err := formatter.WriteCSVExport(playlist, filepath.Join(opts.OutputDir, base))
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.TracksFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown":
		mdFile, err := formatter.WriteMarkdownExport(playlist, filepath.Join(opts.OutputDir, base))
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = []string{mdFile}
		result.Success = true

	case "txt":
		txtPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_tracks.txt", base))
		written, err := formatter.WriteTextExport(playlist, txtPath)
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{written}
		result.Success = true

	case "json":
		fallthrough
	default:
		jsonPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.json", base))
		data, err := json.MarshalIndent(playlist, "", "  ")
		if err != nil {
			result.Error = fmt.Errorf("JSON marshal failed: %w", err)
			return result
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Errorf("JSON write failed: %w", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}
	return result
}

// manifest is the serialized summary of a bulk export run.
type manifest struct {
	Format            string          `json:"format"`
	TotalPlaylists    int             `json:"total_playlists"`
	SuccessfulExports int             `json:"successful_exports"`
	FailedExports     int             `json:"failed_exports"`
	OutputDirectory   string          `json:"output_directory"`
	Playlists         []manifestEntry `json:"playlists"`
}

type manifestEntry struct {
	PlaylistID   int64    `json:"playlist_id"`
	PlaylistName string   `json:"playlist_name"`
	Success      bool     `json:"success"`
	Files        []string `json:"files,omitempty"`
	Error        string   `json:"error,omitempty"`
}

func writeManifest(result *BulkExportResult, format, path string) error {
	m := manifest{
		Format:            format,
		TotalPlaylists:    result.TotalPlaylists,
		SuccessfulExports: result.SuccessfulExports,
		FailedExports:     result.FailedExports,
		OutputDirectory:   result.OutputDirectory,
		Playlists:         make([]manifestEntry, 0, len(result.Results)),
	}
	for _, res := range result.Results {
		entry := manifestEntry{
			PlaylistID:   res.PlaylistID,
			PlaylistName: res.PlaylistName,
			Success:      res.Success,
			Files:        res.Files,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		m.Playlists = append(m.Playlists, entry)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
