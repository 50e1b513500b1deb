// Package odds converts American odds and computes per-bet profit.
package odds

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidOdds is returned when American odds are zero, where the
// decimal conversion is undefined.
var ErrInvalidOdds = errors.New("american odds cannot be 0")

// Result is the settled (or open) outcome of a bet.
type Result string

const (
	Win  Result = "W"
	Loss Result = "L"
	Push Result = "P"
	Open Result = "OPEN"
)

// InvalidResultError reports a result label outside the closed set.
type InvalidResultError struct {
	Raw string
}

func (e *InvalidResultError) Error() string {
	return fmt.Sprintf("invalid result value %q: expected W, L, P, or OPEN", e.Raw)
}

// NormalizeResult trims and upper-cases raw input, returning the
// canonical Result. Every entry point (CSV import, CLI, dashboard)
// goes through here so the store never sees an invalid result.
func NormalizeResult(raw string) (Result, error) {
	switch r := Result(strings.ToUpper(strings.TrimSpace(raw))); r {
	case Win, Loss, Push, Open:
		return r, nil
	default:
		return "", &InvalidResultError{Raw: raw}
	}
}

// AmericanToDecimal converts American odds to a decimal payout factor.
// Positive odds are profit per 100 staked; negative odds are the stake
// required to profit 100.
func AmericanToDecimal(american float64) (float64, error) {
	if american == 0 {
		return 0, ErrInvalidOdds
	}
	if american > 0 {
		return 1 + american/100, nil
	}
	return 1 + 100/-american, nil
}

// Profit computes the signed profit for a bet. Wins pay
// stake*(decimal-1), losses lose the stake, pushes and open bets are
// flat zero.
func Profit(stake, american float64, result string) (float64, error) {
	r, err := NormalizeResult(result)
	if err != nil {
		return 0, err
	}
	switch r {
	case Win:
		dec, err := AmericanToDecimal(american)
		if err != nil {
			return 0, err
		}
		return stake * (dec - 1), nil
	case Loss:
		return -stake, nil
	default:
		return 0, nil
	}
}
