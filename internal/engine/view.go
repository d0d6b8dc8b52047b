package engine

// PublicViewData is the read-only snapshot a display renders.
// Nothing in it aliases session state.
type PublicViewData struct {
	SessionID         string         `json:"session_id"`
	Turns             int            `json:"turns"`
	ActiveIndex       int            `json:"active_index"`
	ActiveName        string         `json:"active_name,omitempty"`
	ActiveKind        string         `json:"active_kind,omitempty"`
	Board             []TileView     `json:"board"`
	Players           []PlayerView   `json:"players"`
	DistrictShopCount map[string]int `json:"district_shop_count"`
	Standings         []Standing     `json:"standings"`
}

type TileView struct {
	Index    int     `json:"index"`
	Kind     string  `json:"kind"`
	District string  `json:"district,omitempty"`
	Price    int     `json:"price,omitempty"`
	Fee      int     `json:"fee,omitempty"`
	Suit     string  `json:"suit,omitempty"`
	Owner    string  `json:"owner,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type PlayerView struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Kind          string         `json:"kind"`
	Cash          int            `json:"cash"`
	NetWorth      int            `json:"net_worth"`
	Level         int            `json:"level"`
	Suits         []string       `json:"suits"`
	Position      int            `json:"position"`
	PropertyCount int            `json:"property_count"`
	Properties    []int          `json:"properties"`
	Stocks        map[string]int `json:"stocks"`
}

func (s *Session) PublicView() PublicViewData {
	pv := PublicViewData{
		SessionID:         s.ID,
		Turns:             s.Turns,
		ActiveIndex:       s.Turn,
		DistrictShopCount: make(map[string]int, len(s.DistrictShopCount)),
		Standings:         s.Standings(),
	}
	if p := s.Active(); p != nil {
		pv.ActiveName = p.Name
		pv.ActiveKind = p.Kind.String()
	}
	for d, n := range s.DistrictShopCount {
		pv.DistrictShopCount[d] = n
	}

	for _, t := range s.Board {
		tv := TileView{Index: t.Index, Kind: t.Kind.String(), X: t.Position.X, Y: t.Position.Y}
		switch t.Kind {
		case KindProperty:
			tv.District, tv.Price, tv.Fee = t.District, t.Price, t.Fee
			if owner := s.OwnerOf(t.Index); owner != nil {
				tv.Owner = owner.ID
			}
		case KindSuit:
			tv.Suit = t.Suit.String()
		}
		pv.Board = append(pv.Board, tv)
	}

	for _, p := range s.Players {
		stocks := make(map[string]int, len(p.Stocks))
		for d, v := range p.Stocks {
			stocks[d] = v
		}
		owned := p.OwnedTiles()
		pv.Players = append(pv.Players, PlayerView{
			ID:            p.ID,
			Name:          p.Name,
			Kind:          p.Kind.String(),
			Cash:          p.Cash,
			NetWorth:      p.NetWorth(s.Board),
			Level:         p.Level,
			Suits:         p.Suits.Names(),
			Position:      p.Position,
			PropertyCount: len(owned),
			Properties:    owned,
			Stocks:        stocks,
		})
	}
	return pv
}
