package server

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fortunestreet/internal/engine"
	"fortunestreet/internal/protocol"

	"go.uber.org/zap"
)

var (
	ErrNotHumanTurn   = errors.New("it is not a human player's turn")
	ErrStaleRoll      = errors.New("roll is for a player who is not active")
	ErrUnknownMessage = errors.New("unknown message type")
	ErrHubStopped     = errors.New("game has stopped")

	ErrTooManySessions = errors.New("too many live sessions")
)

// Hub owns one session and every display watching it. All session access
// happens on the Run goroutine, so turns never overlap and views never see
// a half-resolved turn.
type Hub struct {
	session  *engine.Session
	interval time.Duration
	idle     time.Duration // stop after this long without displays; 0 never stops
	log      *zap.Logger

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	views      chan chan engine.PublicViewData
	done       chan struct{}
}

// NewHub wraps session. Bots take a turn every interval. The hub stops by
// itself once no display has been attached for idle.
func NewHub(session *engine.Session, interval, idle time.Duration, log *zap.Logger) *Hub {
	return &Hub{
		session:    session,
		interval:   interval,
		idle:       idle,
		log:        log.With(zap.String("session", session.ID)),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		views:      make(chan chan engine.PublicViewData),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	idleSince := time.Now()
	defer func() {
		ticker.Stop()
		for client := range h.clients {
			close(client.send)
		}
		close(h.done)
		h.log.Info("hub stopped")
	}()

	h.log.Info("hub started",
		zap.Int("players", len(h.session.Players)),
		zap.Duration("bot_interval", h.interval),
	)

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.clients[client] = true
			h.sendState(client)

		case client := <-h.unregister:
			h.removeClient(client)
			if len(h.clients) == 0 {
				idleSince = time.Now()
			}

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case reply := <-h.views:
			reply <- h.session.PublicView()

		case <-ticker.C:
			if h.idle > 0 && len(h.clients) == 0 && time.Since(idleSince) >= h.idle {
				h.log.Info("hub idle", zap.Duration("idle", time.Since(idleSince)))
				return
			}
			if p := h.session.Active(); p != nil && p.Kind == engine.Bot {
				h.takeTurn()
			}
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

// Register attaches a display. It fails once the hub has stopped.
func (h *Hub) Register(c *Client) error {
	select {
	case h.register <- c:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// View returns a snapshot of the session taken between turns.
func (h *Hub) View(ctx context.Context) (engine.PublicViewData, error) {
	reply := make(chan engine.PublicViewData, 1)
	select {
	case h.views <- reply:
	case <-h.done:
		return engine.PublicViewData{}, ErrHubStopped
	case <-ctx.Done():
		return engine.PublicViewData{}, ctx.Err()
	}
	return <-reply, nil
}

// handleMessage ignores frames from displays that have already left; their
// send channel is closed.
func (h *Hub) handleMessage(msg IncomingMessage) {
	if !h.clients[msg.Client] {
		return
	}
	switch msg.Envelope.Type {
	case protocol.MsgRoll:
		if err := h.handleRoll(msg.Envelope); err != nil {
			h.sendError(msg.Client, err)
		}
	default:
		h.sendError(msg.Client, ErrUnknownMessage)
	}
}

func (h *Hub) handleRoll(env protocol.Envelope) error {
	var roll protocol.RollMsg
	if len(env.Payload) > 0 {
		if err := env.Decode(&roll); err != nil {
			return err
		}
	}

	active := h.session.Active()
	if active == nil || active.Kind != engine.Human {
		return ErrNotHumanTurn
	}
	if roll.PlayerID != "" && roll.PlayerID != active.ID {
		return ErrStaleRoll
	}
	h.takeTurn()
	return nil
}

// takeTurn rolls for the active player, resolves the turn and pushes the
// result to every display.
func (h *Hub) takeTurn() {
	p := h.session.Active()
	roll := h.session.Roll()
	events := h.session.TakeTurn(roll)

	h.log.Debug("turn resolved",
		zap.String("player", p.Name),
		zap.Int("roll", roll),
		zap.Int("position", p.Position),
		zap.Int("cash", p.Cash),
		zap.Int("events", len(events)),
	)
	for _, ev := range events {
		if ev.Type == engine.EventLevelUp {
			h.log.Info("level up", zap.String("player", p.Name), zap.Int("level", p.Level))
		}
		h.broadcast(protocol.MustEncode(protocol.MsgEvent, ev))
	}
	h.broadcastState()
}

func (h *Hub) broadcastState() {
	h.broadcast(protocol.MustEncode(protocol.MsgGameState, h.session.PublicView()))
}

func (h *Hub) sendState(client *Client) {
	client.SendEnvelope(protocol.MustEncode(protocol.MsgGameState, h.session.PublicView()))
}

func (h *Hub) broadcast(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("broadcast marshal", zap.Error(err))
		return
	}
	for client := range h.clients {
		client.trySend(data)
	}
}

func (h *Hub) sendError(client *Client, err error) {
	client.SendEnvelope(protocol.MustEncode(protocol.MsgError, protocol.ErrorMsg{Message: err.Error()}))
}
