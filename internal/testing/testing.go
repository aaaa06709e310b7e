// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"chinook/internal/views"
)

// MockLibrary is a test double for the playlist read path with
// injectable behavior per method.
type MockLibrary struct {
	ListPlaylistsForUserFunc func(ctx context.Context, userID string) ([]views.Playlist, error)
	GetPlaylistFunc          func(ctx context.Context, userID string, playlistID int64) (*views.Playlist, error)
}

func (m *MockLibrary) ListPlaylistsForUser(ctx context.Context, userID string) ([]views.Playlist, error) {
	if m.ListPlaylistsForUserFunc != nil {
		return m.ListPlaylistsForUserFunc(ctx, userID)
	}
	return []views.Playlist{}, nil
}

func (m *MockLibrary) GetPlaylist(ctx context.Context, userID string, playlistID int64) (*views.Playlist, error) {
	if m.GetPlaylistFunc != nil {
		return m.GetPlaylistFunc(ctx, userID, playlistID)
	}
	return nil, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
