// package formatter exports playlist views to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"chinook/internal/views"
)

// favoriteMarker is appended to favorited tracks in text renderings.
const favoriteMarker = "*"

// ExportToCSV converts a playlist view to CSV format with columns: ID, Title, Album, Artist, Favorite
func ExportToCSV(playlist *views.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Album", "Artist", "Favorite"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range playlist.Tracks {
		record := []string{
			strconv.FormatInt(track.TrackID, 10),
			track.TrackName,
			track.AlbumTitle,
			track.ArtistName,
			strconv.FormatBool(track.IsFavorite),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist view to Markdown format
func ExportToMarkdown(playlist *views.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Name))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", len(playlist.Tracks)))
	buf.WriteString(fmt.Sprintf("**Shared with**: %d user(s)\n\n", len(playlist.UserIDs)))

	buf.WriteString("## Tracks\n\n")
	for i, track := range playlist.Tracks {
		albumPart := ""
		if track.AlbumTitle != views.NoAlbumTitle {
			albumPart = fmt.Sprintf(" (%s)", track.AlbumTitle)
		}
		marker := ""
		if track.IsFavorite {
			marker = " " + favoriteMarker
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s%s\n", i+1, track.ArtistName, track.TrackName, albumPart, marker))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist view to plain text format
func ExportToText(playlist *views.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", playlist.Name))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(playlist.Tracks)))

	for i, track := range playlist.Tracks {
		marker := ""
		if track.IsFavorite {
			marker = " " + favoriteMarker
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s\n", i+1, track.ArtistName, track.TrackName, marker))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of playlist metadata (without tracks)
func ToMetadataJSON(playlist *views.Playlist) ([]byte, error) {
	metadata := struct {
		PlaylistID int64    `json:"playlist_id"`
		Name       string   `json:"name"`
		UserIDs    []string `json:"user_ids"`
		TrackCount int      `json:"track_count"`
	}{
		PlaylistID: playlist.PlaylistID,
		Name:       playlist.Name,
		UserIDs:    playlist.UserIDs,
		TrackCount: len(playlist.Tracks),
	}
	return json.MarshalIndent(metadata, "", "  ")
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	TracksFile   string
	MetadataFile string
}

// WriteCSVExport exports a playlist to CSV format with accompanying metadata JSON file.
//
// Defaults to the playlist ID as the base filename & creates {base}_tracks.csv and {base}_metadata.json
func WriteCSVExport(playlist *views.Playlist, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = strconv.FormatInt(playlist.PlaylistID, 10)
	}

	csvData, err := ExportToCSV(playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	tracksFile := baseFilepath + "_tracks.csv"
	if err := os.WriteFile(tracksFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		TracksFile:   tracksFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport exports a playlist to Markdown in a dedicated directory.
//
// Directory name defaults to the playlist ID. Creates {dir}/README.md.
func WriteMarkdownExport(playlist *views.Playlist, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = strconv.FormatInt(playlist.PlaylistID, 10)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(playlist)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return mdFile, nil
}

// WriteTextExport exports a playlist to plain text format.
//
// Defaults to {playlistID}_tracks.txt as the filename.
func WriteTextExport(playlist *views.Playlist, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%d_tracks.txt", playlist.PlaylistID)
	}

	textData, err := ExportToText(playlist)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
