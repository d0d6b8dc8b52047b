package engine

import "sort"

// Standing is one row of the net worth ranking.
type Standing struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	NetWorth int    `json:"net_worth"`
}

// Standings ranks players by net worth, richest first. Ties keep roster
// order and share a rank.
func (s *Session) Standings() []Standing {
	rows := make([]Standing, len(s.Players))
	for i, p := range s.Players {
		rows[i] = Standing{PlayerID: p.ID, Name: p.Name, NetWorth: p.NetWorth(s.Board)}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].NetWorth > rows[j].NetWorth
	})
	for i := range rows {
		if i > 0 && rows[i].NetWorth == rows[i-1].NetWorth {
			rows[i].Rank = rows[i-1].Rank
		} else {
			rows[i].Rank = i + 1
		}
	}
	return rows
}
