// Package ledger is the persistent, deduplicated collection of bets.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"betledger/internal/odds"
)

// DateLayout is the on-disk calendar date format for bets.
const DateLayout = "2006-01-02"

// Bet is one wagered event. Profit is never stored; it is derived from
// stake, odds and result on read.
type Bet struct {
	ID           int64
	Date         string // ISO-8601 calendar date, YYYY-MM-DD
	Sport        string
	Book         string
	Type         string
	TeamOrPlayer string
	OddsAmerican float64
	Stake        float64
	Result       odds.Result
	Notes        string
	CreatedAt    string // RFC 3339 UTC, set once on insert
}

// Profit derives the signed profit for this bet.
func (b Bet) Profit() (float64, error) {
	return odds.Profit(b.Stake, b.OddsAmerican, string(b.Result))
}

// Normalize trims the free-text descriptors and canonicalizes the
// result label. Every write path goes through here so the store only
// ever sees clean rows.
func (b Bet) Normalize() (Bet, error) {
	b.Date = strings.TrimSpace(b.Date)
	b.Sport = strings.TrimSpace(b.Sport)
	b.Book = strings.TrimSpace(b.Book)
	b.Type = strings.TrimSpace(b.Type)
	b.TeamOrPlayer = strings.TrimSpace(b.TeamOrPlayer)
	b.Notes = strings.TrimSpace(b.Notes)

	result, err := odds.NormalizeResult(string(b.Result))
	if err != nil {
		return Bet{}, err
	}
	b.Result = result
	return b, nil
}

// Validate checks the fields the CLI and dashboard enforce before a
// bet reaches the store.
func (b Bet) Validate() error {
	if _, err := time.Parse(DateLayout, b.Date); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", b.Date)
	}
	if b.OddsAmerican == 0 {
		return odds.ErrInvalidOdds
	}
	if b.Stake <= 0 {
		return fmt.Errorf("invalid stake %v: must be positive", b.Stake)
	}
	if _, err := odds.NormalizeResult(string(b.Result)); err != nil {
		return err
	}
	return nil
}
