package engine

import (
	"sort"

	"github.com/google/uuid"
)

// PlayerKind tells the scheduler whether a player rolls on their own.
type PlayerKind int

const (
	Human PlayerKind = iota
	Bot
)

func (k PlayerKind) String() string {
	if k == Bot {
		return "Bot"
	}
	return "Human"
}

// Seat describes a player before the session starts.
type Seat struct {
	Name string
	Kind PlayerKind
}

// Player holds one player's ledger.
type Player struct {
	ID         string
	Name       string
	Kind       PlayerKind
	Cash       int            // no floor; fees may push it negative
	Stocks     map[string]int // district -> invested amount
	Properties map[int]struct{}
	Suits      SuitSet
	Position   int
	Level      int
}

func NewPlayer(name string, kind PlayerKind, cash int) *Player {
	return &Player{
		ID:         uuid.NewString(),
		Name:       name,
		Kind:       kind,
		Cash:       cash,
		Stocks:     make(map[string]int),
		Properties: make(map[int]struct{}),
	}
}

// Owns reports whether the player holds the tile at index.
func (p *Player) Owns(index int) bool {
	_, ok := p.Properties[index]
	return ok
}

// OwnedTiles returns the owned tile indices in ascending order.
func (p *Player) OwnedTiles() []int {
	out := make([]int, 0, len(p.Properties))
	for i := range p.Properties {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// NetWorth is cash plus the price of every owned tile plus stock holdings.
func (p *Player) NetWorth(board []Tile) int {
	worth := p.Cash
	for i := range p.Properties {
		if board[i].Kind == KindProperty {
			worth += board[i].Price
		}
	}
	for _, v := range p.Stocks {
		worth += v
	}
	return worth
}
