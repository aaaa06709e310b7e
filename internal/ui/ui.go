package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"chinook/internal/notify"
	"chinook/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	TrackListView
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	lib    services.PlaylistManager
	userID string

	notifier *notify.Manager
	subID    string
	changes  chan struct{}

	view         ViewState
	width        int
	height       int
	playlistList list.Model
	trackList    list.Model
	selected     int64
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model browsing playlists as the given user.
// The model subscribes to change broadcasts so its playlist list stays
// current; call [Model.Close] once the program exits.
func NewModel(ctx context.Context, lib services.PlaylistManager, notifier *notify.Manager, userID string) *Model {
	m := &Model{
		ctx:      ctx,
		lib:      lib,
		userID:   userID,
		notifier: notifier,
		changes:  make(chan struct{}, 1),
		view:     PlaylistListView,
		help:     help.New(),
		keys:     newKeyMap(),
	}
	m.subID = notifier.Subscribe(func() {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	return m
}

// Close drops the change subscription.
func (m *Model) Close() {
	m.notifier.Unsubscribe(m.subID)
}

// Init fetches the playlist listing and starts watching for changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchPlaylists(), m.waitForChange())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.trackList.Width() == 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		}

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "Playlists"
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case playlistFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = PlaylistListView
			return m, nil
		}
		if msg.playlist == nil {
			m.view = PlaylistListView
			return m, m.fetchPlaylists()
		}
		m.selected = msg.playlist.PlaylistID
		cursor := m.trackList.Index()
		items := make([]list.Item, len(msg.playlist.Tracks))
		for i, track := range msg.playlist.Tracks {
			items[i] = trackItem{track: track}
		}
		m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.trackList.Title = fmt.Sprintf("Tracks in '%s'", msg.playlist.Name)
		m.trackList.SetSize(m.width-4, m.height-8)
		if m.view == TrackListView && cursor < len(items) {
			m.trackList.Select(cursor)
		}
		m.view = TrackListView
		return m, nil

	case favoriteToggledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, m.fetchPlaylist(msg.playlistID)

	case libraryChangedMsg:
		return m, tea.Batch(m.fetchPlaylists(), m.waitForChange())
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case TrackListView:
		return m.renderTrackList()
	default:
		return ""
	}
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.playlistList.SelectedItem()
		if selected != nil {
			if pl, ok := selected.(playlistItem); ok {
				return m, m.fetchPlaylist(pl.playlist.PlaylistID)
			}
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PlaylistListView
		return m, nil
	case "f":
		selected := m.trackList.SelectedItem()
		if selected != nil {
			if tr, ok := selected.(trackItem); ok {
				return m, m.toggleFavorite(tr.track.TrackID, tr.track.IsFavorite)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case TrackListView:
		m.trackList, cmd = m.trackList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.lib.ListPlaylistsForUser(m.ctx, m.userID)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchPlaylist(playlistID int64) tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.lib.GetPlaylist(m.ctx, m.userID, playlistID)
		return playlistFetchedMsg{playlist: playlist, err: err}
	}
}

func (m *Model) toggleFavorite(trackID int64, favorited bool) tea.Cmd {
	playlistID := m.selected
	return func() tea.Msg {
		var err error
		if favorited {
			err = m.lib.RemoveFavoriteTrack(m.ctx, m.userID, trackID)
		} else {
			err = m.lib.AddFavoriteTrack(m.ctx, m.userID, trackID)
		}
		return favoriteToggledMsg{playlistID: playlistID, err: err}
	}
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return libraryChangedMsg{}
	}
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderTrackList() string {
	helpKeys := []key.Binding{m.keys.favorite, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.trackList.View(), helpView)
}
