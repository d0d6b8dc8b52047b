package lobby

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"fortunestreet/internal/engine"
)

var (
	ErrLobbyFull    = errors.New("lobby is full")
	ErrLobbyStarted = errors.New("game already started")
	ErrNoSeats      = errors.New("no seats taken")
	ErrEmptyName    = errors.New("seat name is empty")
)

// Lobby collects the seats of a game before its session is created.
// Once started the roster is frozen.
type Lobby struct {
	mu       sync.Mutex
	ID       string
	seats    []engine.Seat
	MaxSeats int
	Started  bool
}

func NewLobby(id string, maxSeats int) *Lobby {
	return &Lobby{ID: id, MaxSeats: maxSeats}
}

// Sit adds a seat. Names are trimmed and must be unique.
func (l *Lobby) Sit(name string, kind engine.PlayerKind) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if l.Started {
		return ErrLobbyStarted
	}
	if len(l.seats) >= l.MaxSeats {
		return ErrLobbyFull
	}
	for _, s := range l.seats {
		if s.Name == name {
			return fmt.Errorf("seat %q already taken", name)
		}
	}
	l.seats = append(l.seats, engine.Seat{Name: name, Kind: kind})
	return nil
}

// Start freezes the roster and returns it in seating order.
func (l *Lobby) Start() ([]engine.Seat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return nil, ErrLobbyStarted
	}
	if len(l.seats) == 0 {
		return nil, ErrNoSeats
	}
	l.Started = true
	return l.copySeats(), nil
}

// Seats returns a copy of the roster.
func (l *Lobby) Seats() []engine.Seat {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.copySeats()
}

func (l *Lobby) copySeats() []engine.Seat {
	out := make([]engine.Seat, len(l.seats))
	copy(out, l.seats)
	return out
}
