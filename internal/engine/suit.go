package engine

import "math/bits"

// Suit is one of the four collectible suits.
type Suit int

const (
	Spade Suit = iota
	Heart
	Diamond
	Club
)

var suitNames = map[Suit]string{
	Spade:   "Spade",
	Heart:   "Heart",
	Diamond: "Diamond",
	Club:    "Club",
}

func (s Suit) String() string {
	if n, ok := suitNames[s]; ok {
		return n
	}
	return "Unknown"
}

// AllSuits returns the four suits in board order.
func AllSuits() []Suit {
	return []Suit{Spade, Heart, Diamond, Club}
}

// SuitSet is the set of suits a player has collected since their last level-up.
type SuitSet uint8

const fullSuitSet SuitSet = 1<<Spade | 1<<Heart | 1<<Diamond | 1<<Club

func (s SuitSet) Has(suit Suit) bool { return s&(1<<suit) != 0 }
func (s SuitSet) Len() int           { return bits.OnesCount8(uint8(s)) }
func (s SuitSet) Complete() bool     { return s == fullSuitSet }

// With returns the set with suit added. Adding a held suit changes nothing.
func (s SuitSet) With(suit Suit) SuitSet {
	return s | 1<<suit
}

// Names lists the held suits in board order.
func (s SuitSet) Names() []string {
	names := []string{}
	for _, suit := range AllSuits() {
		if s.Has(suit) {
			names = append(names, suit.String())
		}
	}
	return names
}
