package engine

// EventType identifies events emitted by a turn.
type EventType string

const (
	EventMoved            EventType = "moved"
	EventPropertyBought   EventType = "property_bought"
	EventPurchaseDeclined EventType = "purchase_declined"
	EventFeePaid          EventType = "fee_paid"
	EventSuitCollected    EventType = "suit_collected"
	EventBankVisit        EventType = "bank_visit"
	EventLevelUp          EventType = "level_up"
	EventChance           EventType = "chance"
	EventTurnEnd          EventType = "turn_end"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type   EventType              `json:"type"`
	Player string                 `json:"player,omitempty"`
	Data   map[string]interface{} `json:"data,omitempty"`
}
