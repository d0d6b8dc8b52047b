package engine_test

import (
	"encoding/json"
	"fortunestreet/internal/engine"
	"math"
	"strings"
	"testing"
)

// seqSource replays vals in order, wrapping around.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) IntN(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func newTestSession(t *testing.T, n int, draws ...int) *engine.Session {
	t.Helper()
	if len(draws) == 0 {
		draws = []int{0}
	}
	var seats []engine.Seat
	for i := 0; i < n; i++ {
		kind := engine.Bot
		if i == 0 {
			kind = engine.Human
		}
		seats = append(seats, engine.Seat{Name: "Player" + string(rune('1'+i)), Kind: kind})
	}
	return engine.NewSession(engine.DefaultConfig(), seats, &seqSource{vals: draws})
}

func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, 3)
	if len(s.Board) != 17 {
		t.Fatalf("board length: got %d, want 17", len(s.Board))
	}
	if len(s.Players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(s.Players))
	}
	for _, p := range s.Players {
		if p.Cash != 2500 {
			t.Errorf("player %s should start with 2500, got %d", p.Name, p.Cash)
		}
		if p.Position != 0 || p.Level != 0 || p.Suits.Len() != 0 {
			t.Errorf("player %s should start fresh at the bank: %+v", p.Name, p)
		}
		if p.ID == "" {
			t.Errorf("player %s has no id", p.Name)
		}
	}
	if s.Players[0].ID == s.Players[1].ID {
		t.Error("player ids should be unique")
	}
	if s.Active() != s.Players[0] {
		t.Error("first seat should be active")
	}
}

func TestTurnRotationIsClosedCycle(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		s := newTestSession(t, n)
		start := s.Turn
		for i := 0; i < n; i++ {
			before := s.Turn
			s.TakeTurn(1 + i%6)
			if s.Turn != (before+1)%n {
				t.Fatalf("n=%d: turn went %d -> %d", n, before, s.Turn)
			}
		}
		if s.Turn != start {
			t.Errorf("n=%d: after %d turns active index is %d, want %d", n, n, s.Turn, start)
		}
		if s.Turns != n {
			t.Errorf("n=%d: turns counter %d, want %d", n, s.Turns, n)
		}
	}
}

func TestTakeTurnMovesActivePlayerOnly(t *testing.T) {
	s := newTestSession(t, 2)
	events := s.TakeTurn(2) // Spade suit tile
	if s.Players[0].Position != 2 {
		t.Errorf("active player position: got %d, want 2", s.Players[0].Position)
	}
	if s.Players[1].Position != 0 {
		t.Errorf("idle player moved to %d", s.Players[1].Position)
	}
	if len(events) == 0 || events[len(events)-1].Type != engine.EventTurnEnd {
		t.Fatalf("expected turn_end as the last event, got %+v", events)
	}
	if events[0].Type != engine.EventMoved {
		t.Errorf("expected moved as the first event, got %s", events[0].Type)
	}
}

func TestTakeTurnEmptyRoster(t *testing.T) {
	s := engine.NewSession(engine.DefaultConfig(), nil, &seqSource{vals: []int{0}})
	if events := s.TakeTurn(3); events != nil {
		t.Errorf("expected no events, got %+v", events)
	}
	if s.Turn != 0 || s.Turns != 0 {
		t.Errorf("empty roster should not rotate: turn=%d turns=%d", s.Turn, s.Turns)
	}
	if s.Active() != nil {
		t.Error("empty roster has no active player")
	}
}

func TestAdvancePlayerWraps(t *testing.T) {
	tests := []struct {
		start, roll int
	}{
		{0, 1},
		{0, 6},
		{12, 6},
		{16, 1},
		{16, 17},
		{3, 100},
		{5, math.MaxInt},
	}
	for _, tt := range tests {
		s := newTestSession(t, 1)
		p := s.Players[0]
		p.Position = tt.start
		s.AdvancePlayer(0, tt.roll)
		want := (tt.start + tt.roll%17) % 17
		if p.Position != want {
			t.Errorf("start %d roll %d: position %d, want %d", tt.start, tt.roll, p.Position, want)
		}
	}
}

func TestAdvancePlayerDoesNotRotate(t *testing.T) {
	s := newTestSession(t, 3)
	s.AdvancePlayer(2, 4)
	if s.Turn != 0 {
		t.Errorf("AdvancePlayer changed active index to %d", s.Turn)
	}
}

func TestContractViolationsPanic(t *testing.T) {
	s := newTestSession(t, 2)
	mustPanic(t, "negative player", func() { s.AdvancePlayer(-1, 3) })
	mustPanic(t, "player past roster", func() { s.AdvancePlayer(2, 3) })
	mustPanic(t, "zero roll", func() { s.AdvancePlayer(0, 0) })
	mustPanic(t, "negative roll", func() { s.TakeTurn(-4) })
	mustPanic(t, "nil source", func() { engine.NewSession(engine.DefaultConfig(), nil, nil) })

	cfg := engine.DefaultConfig()
	cfg.DieSides = 0
	mustPanic(t, "no die sides", func() { engine.NewSession(cfg, nil, &seqSource{vals: []int{0}}) })

	cfg = engine.DefaultConfig()
	cfg.ChanceMin, cfg.ChanceMax = 10, -10
	mustPanic(t, "empty chance range", func() { engine.NewSession(cfg, nil, &seqSource{vals: []int{0}}) })
}

func TestRoll(t *testing.T) {
	s := engine.NewSession(engine.DefaultConfig(), nil, &seqSource{vals: []int{0, 5, 11}})
	want := []int{1, 6, 6}
	for i, w := range want {
		if got := s.Roll(); got != w {
			t.Errorf("roll %d: got %d, want %d", i, got, w)
		}
	}

	seeded := engine.NewSession(engine.DefaultConfig(), nil, engine.NewSource(42))
	for i := 0; i < 1000; i++ {
		if r := seeded.Roll(); r < 1 || r > 6 {
			t.Fatalf("roll out of range: %d", r)
		}
	}
}

func TestSeededSessionsReplay(t *testing.T) {
	seats := []engine.Seat{{Name: "A", Kind: engine.Bot}, {Name: "B", Kind: engine.Bot}}
	a := engine.NewSession(engine.DefaultConfig(), seats, engine.NewSource(7))
	b := engine.NewSession(engine.DefaultConfig(), seats, engine.NewSource(7))
	for i := 0; i < 200; i++ {
		a.TakeTurn(a.Roll())
		b.TakeTurn(b.Roll())
	}
	for i := range a.Players {
		pa, pb := a.Players[i], b.Players[i]
		if pa.Cash != pb.Cash || pa.Position != pb.Position || pa.Level != pb.Level {
			t.Errorf("player %d diverged: %+v vs %+v", i, pa, pb)
		}
	}
}

// TestLongGameInvariants plays a seeded game and checks the bookkeeping
// invariants after every turn.
func TestLongGameInvariants(t *testing.T) {
	seats := []engine.Seat{
		{Name: "Hero", Kind: engine.Human},
		{Name: "Bot A", Kind: engine.Bot},
		{Name: "Bot B", Kind: engine.Bot},
	}
	s := engine.NewSession(engine.DefaultConfig(), seats, engine.NewSource(2024))
	prevShops := map[string]int{}

	for turn := 0; turn < 2000; turn++ {
		p := s.Active()
		from := p.Position
		roll := s.Roll()
		s.TakeTurn(roll)

		if want := (from + roll) % len(s.Board); p.Position != want {
			t.Fatalf("turn %d: position %d, want %d", turn, p.Position, want)
		}

		seen := map[int]string{}
		perDistrict := map[string]int{}
		for _, pl := range s.Players {
			for idx := range pl.Properties {
				if other, ok := seen[idx]; ok {
					t.Fatalf("turn %d: tile %d owned by %s and %s", turn, idx, other, pl.Name)
				}
				seen[idx] = pl.Name
				if s.Board[idx].Kind != engine.KindProperty {
					t.Fatalf("turn %d: %s owns non-property tile %d", turn, pl.Name, idx)
				}
				perDistrict[s.Board[idx].District]++
			}
			if pl.Suits.Len() > 4 {
				t.Fatalf("turn %d: %s holds %d suits", turn, pl.Name, pl.Suits.Len())
			}
		}
		for d, n := range s.DistrictShopCount {
			if n < prevShops[d] {
				t.Fatalf("turn %d: shop count for %s shrank", turn, d)
			}
			if n != perDistrict[d] {
				t.Fatalf("turn %d: shop count for %s is %d, owned %d", turn, d, n, perDistrict[d])
			}
			prevShops[d] = n
		}
	}
}

func TestPublicView(t *testing.T) {
	s := newTestSession(t, 2)
	s.TakeTurn(1) // Player1 buys Downtown 300
	s.Players[1].Stocks["Harbor"] = 150

	pv := s.PublicView()
	if pv.SessionID != s.ID {
		t.Errorf("session id: got %s", pv.SessionID)
	}
	if pv.ActiveIndex != 1 || pv.ActiveName != "Player2" || pv.ActiveKind != "Bot" {
		t.Errorf("active: %d %s %s", pv.ActiveIndex, pv.ActiveName, pv.ActiveKind)
	}
	if len(pv.Board) != 17 || pv.Board[1].Owner != s.Players[0].ID {
		t.Errorf("board view should show tile 1 owned by Player1: %+v", pv.Board[1])
	}
	if pv.Board[2].Suit != "Spade" || pv.Board[0].Kind != "Bank" {
		t.Errorf("unexpected tile views: %+v %+v", pv.Board[0], pv.Board[2])
	}

	p1 := pv.Players[0]
	if p1.Cash != 2200 || p1.NetWorth != 2500 || p1.PropertyCount != 1 || p1.Properties[0] != 1 {
		t.Errorf("player view: %+v", p1)
	}
	if pv.Players[1].NetWorth != 2650 || pv.Players[1].Stocks["Harbor"] != 150 {
		t.Errorf("stock holdings should count in net worth: %+v", pv.Players[1])
	}
	if pv.DistrictShopCount["Downtown"] != 1 {
		t.Errorf("district shop count: %v", pv.DistrictShopCount)
	}
	if pv.Standings[0].Name != "Player2" {
		t.Errorf("standings should lead with Player2: %+v", pv.Standings)
	}

	// The snapshot is a copy.
	pv.DistrictShopCount["Downtown"] = 99
	pv.Players[1].Stocks["Harbor"] = 0
	if s.DistrictShopCount["Downtown"] != 1 || s.Players[1].Stocks["Harbor"] != 150 {
		t.Error("mutating the view changed the session")
	}

	data, err := json.Marshal(pv)
	if err != nil {
		t.Fatalf("view should marshal: %v", err)
	}
	// Spade is the zero Suit and must still reach the display.
	if !strings.Contains(string(data), `"suit":"Spade"`) {
		t.Error("Spade tile lost its suit in the view JSON")
	}
}

func TestStandingsTies(t *testing.T) {
	s := newTestSession(t, 3)
	s.Players[0].Cash = 1000
	s.Players[1].Cash = 3000
	s.Players[2].Cash = 1000

	st := s.Standings()
	if st[0].Name != "Player2" || st[0].Rank != 1 {
		t.Errorf("leader: %+v", st[0])
	}
	if st[1].Name != "Player1" || st[2].Name != "Player3" {
		t.Errorf("ties should keep roster order: %+v", st)
	}
	if st[1].Rank != 2 || st[2].Rank != 2 {
		t.Errorf("tied players should share rank 2: %+v", st)
	}
}
