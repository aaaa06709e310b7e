package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchPlaylists Phase = iota
	ExportPlaylist
)

func (p Phase) String() string {
	switch p {
	case FetchPlaylists:
		return "fetch_playlists"
	case ExportPlaylist:
		return "export_playlist"
	default:
		return ""
	}
}

func fetchingPlaylistsUpdate(userID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylists,
		Step:    0,
		Total:   0,
		Message: fmt.Sprintf("Fetching playlists for %s...", userID),
	}
}

func foundPlaylistsUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylists,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Found %d playlist(s)", total),
	}
}

func exportingPlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
