package session

import "sync"

// Manager keys live controllers by chat ID, creating one on first use.
type Manager struct {
	mu         sync.Mutex
	sessions   map[int64]*Controller
	newSession func(chatID int64) *Controller
}

func NewManager(newSession func(chatID int64) *Controller) *Manager {
	return &Manager{
		sessions:   make(map[int64]*Controller),
		newSession: newSession,
	}
}

// Get returns the controller for a chat, creating it if absent.
func (m *Manager) Get(chatID int64) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.sessions[chatID]; ok {
		return c
	}
	c := m.newSession(chatID)
	m.sessions[chatID] = c
	return c
}

// Len reports how many sessions are live.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
