package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Session holds the entire game state: one board, a fixed roster and the
// active-turn pointer. It is not safe for concurrent use; callers serialise
// turns and reads.
type Session struct {
	ID      string
	Config  Config
	Board   []Tile
	Players []*Player

	Turn  int // index of the active player
	Turns int // turns resolved so far

	// DistrictShopCount counts purchases per district. It only grows.
	DistrictShopCount map[string]int

	src Source
}

// NewSession builds the board from cfg and seats every player at the bank
// with the starting cash. src supplies all randomness of the session.
func NewSession(cfg Config, seats []Seat, src Source) *Session {
	if src == nil {
		panic("engine: nil randomness source")
	}
	if cfg.DieSides < 1 {
		panic(fmt.Sprintf("engine: die with %d sides", cfg.DieSides))
	}
	if cfg.ChanceMin > cfg.ChanceMax {
		panic(fmt.Sprintf("engine: chance range [%d, %d] is empty", cfg.ChanceMin, cfg.ChanceMax))
	}

	s := &Session{
		ID:                uuid.NewString(),
		Config:            cfg,
		Board:             GenerateBoard(cfg.BoardLength, cfg.Lots),
		DistrictShopCount: make(map[string]int),
		src:               src,
	}
	for _, seat := range seats {
		s.Players = append(s.Players, NewPlayer(seat.Name, seat.Kind, cfg.StartingCash))
	}
	return s
}

// Active returns the player whose turn it is, or nil for an empty roster.
func (s *Session) Active() *Player {
	if len(s.Players) == 0 {
		return nil
	}
	return s.Players[s.Turn]
}

// Roll throws the session's die.
func (s *Session) Roll() int {
	return drawBetween(s.src, 1, s.Config.DieSides)
}

// TakeTurn moves the active player by roll, resolves the landing tile and
// passes the turn to the next player. An empty roster is a no-op.
func (s *Session) TakeTurn(roll int) []Event {
	if len(s.Players) == 0 {
		return nil
	}

	current := s.Turn
	events := s.AdvancePlayer(current, roll)

	s.Turn = (s.Turn + 1) % len(s.Players)
	s.Turns++

	return append(events, Event{Type: EventTurnEnd, Player: s.Players[current].ID, Data: map[string]interface{}{
		"next": s.Players[s.Turn].ID, "turns": s.Turns,
	}})
}

// AdvancePlayer moves the player at pi forward by roll tiles, wrapping
// around the loop, and resolves the tile they land on. It does not touch
// the active-turn pointer.
func (s *Session) AdvancePlayer(pi, roll int) []Event {
	p := s.player(pi)
	if roll < 1 {
		panic(fmt.Sprintf("engine: roll %d, need a positive value", roll))
	}

	n := len(s.Board)
	from := p.Position
	p.Position = (p.Position + roll%n) % n

	events := []Event{{Type: EventMoved, Player: p.ID, Data: map[string]interface{}{
		"roll": roll, "from": from, "to": p.Position,
	}}}
	return append(events, s.resolveTile(pi, p.Position)...)
}

func (s *Session) player(i int) *Player {
	if i < 0 || i >= len(s.Players) {
		panic(fmt.Sprintf("engine: player index %d out of range [0, %d)", i, len(s.Players)))
	}
	return s.Players[i]
}

func (s *Session) tile(i int) Tile {
	if i < 0 || i >= len(s.Board) {
		panic(fmt.Sprintf("engine: tile index %d out of range [0, %d)", i, len(s.Board)))
	}
	return s.Board[i]
}
