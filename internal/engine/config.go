package engine

import "github.com/shopspring/decimal"

// Config holds the board layout and the economy policy for a session.
type Config struct {
	BoardLength  int             `json:"board_length"`
	Lots         []Lot           `json:"lots"`
	StartingCash int             `json:"starting_cash"`
	SalaryBase   int             `json:"salary_base"`
	SalaryRate   decimal.Decimal `json:"salary_rate"` // share of net worth paid on level-up
	ChanceMin    int             `json:"chance_min"`
	ChanceMax    int             `json:"chance_max"` // inclusive
	DieSides     int             `json:"die_sides"`
}

func DefaultConfig() Config {
	return Config{
		BoardLength:  17,
		Lots:         DefaultLots(),
		StartingCash: 2500,
		SalaryBase:   500,
		SalaryRate:   decimal.NewFromFloat(0.1),
		ChanceMin:    -150,
		ChanceMax:    200,
		DieSides:     6,
	}
}

// Salary is the bank payout for a player whose net worth is netWorth.
func (c Config) Salary(netWorth int) int {
	bonus := c.SalaryRate.Mul(decimal.NewFromInt(int64(netWorth))).Floor()
	return c.SalaryBase + int(bonus.IntPart())
}
