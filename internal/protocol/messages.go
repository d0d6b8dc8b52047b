package protocol

// Server → display
const (
	MsgGameState = "game_state"
	MsgEvent     = "event"
	MsgError     = "error"
)

// Display → server
const (
	// MsgRoll asks the engine to roll for the active human player.
	MsgRoll = "roll"
)

// RollMsg optionally names the player the display believes is active.
// A mismatch is rejected so a stale screen cannot roll for someone else.
type RollMsg struct {
	PlayerID string `json:"player_id,omitempty"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}
