package lobby

import (
	"sync"

	"github.com/google/uuid"
)

// Manager manages multiple lobbies.
type Manager struct {
	mu       sync.Mutex
	maxSeats int
	lobbies  map[string]*Lobby
}

func NewManager(maxSeats int) *Manager {
	return &Manager{maxSeats: maxSeats, lobbies: make(map[string]*Lobby)}
}

// Create opens a new lobby and returns it.
func (m *Manager) Create() *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := NewLobby(uuid.NewString(), m.maxSeats)
	m.lobbies[l.ID] = l
	return l
}

// Get returns a lobby by ID, or nil.
func (m *Manager) Get(id string) *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lobbies[id]
}

// Remove forgets a lobby.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lobbies, id)
}
