// Package notify provides the process-wide broadcast point for playlist
// changes.
//
// Consumers register a handler with [Manager.Subscribe] and revoke it
// with [Manager.Unsubscribe] when their lifetime ends.
// [Manager.NotifyPlaylistsChanged] invokes all current handlers
// synchronously, in registration order; a handler that panics is
// isolated so the remaining handlers still run. Callers must not hold a
// write transaction open while notifying.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Handler is invoked when playlists change.
type Handler func()

// subscription pairs a handler with its revocation id.
type subscription struct {
	id      string
	handler Handler
}

// Manager manages playlist-change subscriptions and broadcasting.
type Manager struct {
	mu            sync.RWMutex
	subscriptions []subscription
}

// NewManager creates a new notification manager.
func NewManager() *Manager {
	return &Manager{}
}

// Subscribe registers a handler and returns its subscription id.
func (m *Manager) Subscribe(h Handler) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.subscriptions = append(m.subscriptions, subscription{id: id, handler: h})
	return id
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (m *Manager) Unsubscribe(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscriptions {
		if sub.id == id {
			m.subscriptions = append(m.subscriptions[:i], m.subscriptions[i+1:]...)
			return
		}
	}
}

// NotifyPlaylistsChanged invokes every subscribed handler in
// registration order. The subscription list is copied first so handlers
// may subscribe or unsubscribe without deadlocking.
func (m *Manager) NotifyPlaylistsChanged() {
	m.mu.RLock()
	subs := make([]subscription, len(m.subscriptions))
	copy(subs, m.subscriptions)
	m.mu.RUnlock()

	for _, sub := range subs {
		invoke(sub.handler)
	}
}

// SubscriberCount returns the number of active subscriptions.
func (m *Manager) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// invoke runs one handler, containing a panic so one failing handler
// cannot stop the rest of the fan-out.
func invoke(h Handler) {
	defer func() {
		_ = recover()
	}()
	h()
}
