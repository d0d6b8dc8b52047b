package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"fortunestreet/internal/engine"
)

var ErrInvalid = errors.New("invalid config")

// Settings is the process configuration: server options plus the game
// policy handed to every new session.
type Settings struct {
	Port          int           `json:"port"`
	BotIntervalMS int           `json:"bot_interval_ms"`
	MaxSeats      int           `json:"max_seats"`
	MaxSessions   int           `json:"max_sessions"`
	IdleTimeoutMS int           `json:"idle_timeout_ms"` // drop sessions nobody watches
	Seed          uint64        `json:"seed"`            // 0 seeds from the clock
	Game          engine.Config `json:"game"`
}

func Default() Settings {
	return Settings{
		Port:          8080,
		BotIntervalMS: 2000,
		MaxSeats:      4,
		MaxSessions:   64,
		IdleTimeoutMS: 10 * 60 * 1000,
		Game:          engine.DefaultConfig(),
	}
}

// BotInterval is how long the scheduler waits between bot turns.
func (s Settings) BotInterval() time.Duration {
	return time.Duration(s.BotIntervalMS) * time.Millisecond
}

// IdleTimeout is how long a session may run with no display attached.
func (s Settings) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMS) * time.Millisecond
}

// Load reads a JSON settings file. Keys missing from the file keep their
// defaults. An empty path returns the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects settings the engine would treat as contract violations.
func (s Settings) Validate() error {
	g := s.Game
	switch {
	case s.Port < 0 || s.Port > 65535:
		return fmt.Errorf("%w: port %d", ErrInvalid, s.Port)
	case s.BotIntervalMS <= 0:
		return fmt.Errorf("%w: bot_interval_ms must be positive", ErrInvalid)
	case s.MaxSeats < 1:
		return fmt.Errorf("%w: max_seats must be at least 1", ErrInvalid)
	case s.MaxSessions < 1:
		return fmt.Errorf("%w: max_sessions must be at least 1", ErrInvalid)
	case s.IdleTimeoutMS <= 0:
		return fmt.Errorf("%w: idle_timeout_ms must be positive", ErrInvalid)
	case g.BoardLength < 1:
		return fmt.Errorf("%w: board_length must be at least 1", ErrInvalid)
	case g.BoardLength > 1 && len(g.Lots) == 0:
		return fmt.Errorf("%w: board needs at least one lot", ErrInvalid)
	case g.DieSides < 1:
		return fmt.Errorf("%w: die_sides must be at least 1", ErrInvalid)
	case g.ChanceMin > g.ChanceMax:
		return fmt.Errorf("%w: chance_min %d above chance_max %d", ErrInvalid, g.ChanceMin, g.ChanceMax)
	case g.SalaryRate.IsNegative():
		return fmt.Errorf("%w: salary_rate is negative", ErrInvalid)
	}
	for _, lot := range g.Lots {
		if lot.District == "" || lot.Price <= 0 || lot.Fee <= 0 {
			return fmt.Errorf("%w: lot %+v", ErrInvalid, lot)
		}
	}
	return nil
}
