package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"fortunestreet/internal/config"
	"fortunestreet/internal/engine"
	"fortunestreet/internal/lobby"
	"fortunestreet/internal/qrcode"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	ctx      context.Context // hubs run until this is cancelled
	settings config.Settings
	lobbies  *lobby.Manager
	log      *zap.Logger

	mu       sync.Mutex
	hubs     map[*lobby.Lobby]*Hub
	sessions uint64
}

func NewHandlers(ctx context.Context, settings config.Settings, log *zap.Logger) *Handlers {
	return &Handlers{
		ctx:      ctx,
		settings: settings,
		lobbies:  lobby.NewManager(settings.MaxSeats),
		log:      log,
		hubs:     make(map[*lobby.Lobby]*Hub),
	}
}

// HandleCreateGame seats the requested players, starts a session and
// redirects to its board view.
//
//	/api/create?human=Hero&bots=2
//
// human may repeat; an empty human= seats bots only. With no parameters
// the roster is Hero and two bots.
func (h *Handlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	humans := []string{"Hero"}
	if names, ok := q["human"]; ok {
		humans = humans[:0]
		for _, name := range names {
			if name != "" {
				humans = append(humans, name)
			}
		}
	}
	bots := 2
	if v := q.Get("bots"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "bots must be a non-negative integer", http.StatusBadRequest)
			return
		}
		bots = n
	}

	lob := h.lobbies.Create()
	seats, err := seat(lob, humans, bots)
	if err != nil {
		h.lobbies.Remove(lob.ID)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session := engine.NewSession(h.settings.Game, seats, h.nextSource())
	session.ID = lob.ID
	hub := NewHub(session, h.settings.BotInterval(), h.settings.IdleTimeout(), h.log)

	h.mu.Lock()
	if len(h.hubs) >= h.settings.MaxSessions {
		h.mu.Unlock()
		h.lobbies.Remove(lob.ID)
		http.Error(w, ErrTooManySessions.Error(), http.StatusServiceUnavailable)
		return
	}
	h.hubs[lob] = hub
	h.mu.Unlock()

	go func() {
		hub.Run(h.ctx)
		h.drop(lob)
	}()

	h.log.Info("game created", zap.String("session", session.ID), zap.Strings("seats", seatNames(lob.Seats())))
	http.Redirect(w, r, fmt.Sprintf("/board.html?game=%s", session.ID), http.StatusSeeOther)
}

func seat(lob *lobby.Lobby, humans []string, bots int) ([]engine.Seat, error) {
	for _, name := range humans {
		if err := lob.Sit(name, engine.Human); err != nil {
			return nil, fmt.Errorf("seat %q: %w", name, err)
		}
	}
	for i := 0; i < bots; i++ {
		name := fmt.Sprintf("Bot %c", 'A'+i)
		if err := lob.Sit(name, engine.Bot); err != nil {
			return nil, fmt.Errorf("seat %q: %w", name, err)
		}
	}
	return lob.Start()
}

func seatNames(seats []engine.Seat) []string {
	names := make([]string, len(seats))
	for i, s := range seats {
		names[i] = s.Name
	}
	return names
}

// drop forgets a game whose hub has stopped.
func (h *Handlers) drop(lob *lobby.Lobby) {
	h.mu.Lock()
	delete(h.hubs, lob)
	h.mu.Unlock()
	h.lobbies.Remove(lob.ID)
	h.log.Debug("game dropped", zap.String("session", lob.ID))
}

// nextSource gives each session its own generator. With a configured seed
// the n-th session of a process always replays the same game.
func (h *Handlers) nextSource() engine.Source {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions++
	seed := h.settings.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return engine.NewSource(seed + h.sessions)
}

func (h *Handlers) hub(w http.ResponseWriter, r *http.Request) (*Hub, bool) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return nil, false
	}
	lob := h.lobbies.Get(gameID)
	h.mu.Lock()
	hub, ok := h.hubs[lob]
	h.mu.Unlock()
	if lob == nil || !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return nil, false
	}
	return hub, true
}

// HandleState returns the public view of a game as JSON.
func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	hub, ok := h.hub(w, r)
	if !ok {
		return
	}
	view, err := hub.View(r.Context())
	if err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, context.Canceled) {
			status = http.StatusRequestTimeout
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		h.log.Warn("write state", zap.Error(err))
	}
}

// HandleQR returns a QR code PNG linking to the game's board view.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.hub(w, r); !ok {
		return
	}
	png, err := qrcode.BoardLink(r.Host, r.URL.Query().Get("game"))
	if err != nil {
		h.log.Error("qr", zap.Error(err))
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleWS attaches a board display to a game.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	hub, ok := h.hub(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade", zap.Error(err))
		return
	}

	client := NewClient(hub, conn)
	if err := hub.Register(client); err != nil {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
