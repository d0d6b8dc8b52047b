package engine

import "fmt"

// resolveTile applies the rule of the tile at ti to the player at pi.
// It runs once per landing; tiles passed over are never resolved.
func (s *Session) resolveTile(pi, ti int) []Event {
	p := s.player(pi)
	t := s.tile(ti)

	switch t.Kind {
	case KindBank:
		return s.resolveBank(p)
	case KindProperty:
		return s.resolveProperty(p, t)
	case KindSuit:
		p.Suits = p.Suits.With(t.Suit)
		return []Event{{Type: EventSuitCollected, Player: p.ID, Data: map[string]interface{}{
			"suit": t.Suit.String(), "held": p.Suits.Len(),
		}}}
	case KindChance:
		delta := drawBetween(s.src, s.Config.ChanceMin, s.Config.ChanceMax)
		p.Cash += delta
		return []Event{{Type: EventChance, Player: p.ID, Data: map[string]interface{}{
			"delta": delta, "cash": p.Cash,
		}}}
	default:
		panic(fmt.Sprintf("engine: tile %d has unknown kind %d", t.Index, t.Kind))
	}
}

// resolveBank levels the player up and pays salary when all four suits are held.
// Salary is computed from net worth before the payout.
func (s *Session) resolveBank(p *Player) []Event {
	events := []Event{{Type: EventBankVisit, Player: p.ID, Data: map[string]interface{}{
		"suits": p.Suits.Len(),
	}}}
	if !p.Suits.Complete() {
		return events
	}

	salary := s.Config.Salary(p.NetWorth(s.Board))
	p.Level++
	p.Cash += salary
	p.Suits = 0

	return append(events, Event{Type: EventLevelUp, Player: p.ID, Data: map[string]interface{}{
		"level": p.Level, "salary": salary, "cash": p.Cash,
	}})
}

func (s *Session) resolveProperty(p *Player, t Tile) []Event {
	owner := s.OwnerOf(t.Index)

	switch {
	case owner == p:
		return nil
	case owner != nil:
		p.Cash -= t.Fee
		owner.Cash += t.Fee
		return []Event{{Type: EventFeePaid, Player: p.ID, Data: map[string]interface{}{
			"tile": t.Index, "owner": owner.ID, "fee": t.Fee,
		}}}
	case p.Cash >= t.Price:
		p.Cash -= t.Price
		p.Properties[t.Index] = struct{}{}
		s.DistrictShopCount[t.District]++
		return []Event{{Type: EventPropertyBought, Player: p.ID, Data: map[string]interface{}{
			"tile": t.Index, "district": t.District, "price": t.Price,
		}}}
	default:
		return []Event{{Type: EventPurchaseDeclined, Player: p.ID, Data: map[string]interface{}{
			"tile": t.Index, "price": t.Price, "cash": p.Cash,
		}}}
	}
}

// OwnerOf returns the player holding the tile at index, or nil.
func (s *Session) OwnerOf(index int) *Player {
	for _, p := range s.Players {
		if p.Owns(index) {
			return p
		}
	}
	return nil
}
