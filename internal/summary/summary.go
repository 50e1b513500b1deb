// Package summary groups and aggregates bets.
package summary

import (
	"fmt"
	"sort"
	"strings"

	"betledger/internal/ledger"
)

// GroupKey selects the bet field a summary groups by.
type GroupKey string

const (
	BySport GroupKey = "sport"
	ByBook  GroupKey = "book"
	ByType  GroupKey = "type"
)

// ParseGroupKey validates a raw --group value.
func ParseGroupKey(raw string) (GroupKey, error) {
	switch k := GroupKey(strings.ToLower(strings.TrimSpace(raw))); k {
	case BySport, ByBook, ByType:
		return k, nil
	default:
		return "", fmt.Errorf("invalid group key %q: expected sport, book, or type", raw)
	}
}

// GroupSummary aggregates the bets sharing one group value. It is
// recomputed on every call and never persisted.
type GroupSummary struct {
	GroupValue  string
	BetCount    int
	TotalStake  float64
	TotalProfit float64
}

// Summarize groups bets by the trimmed value of the chosen field and
// accumulates count, stake and derived profit. The result is
// independent of input order.
func Summarize(bets []ledger.Bet, key GroupKey) (map[string]GroupSummary, error) {
	groups := make(map[string]GroupSummary)
	for _, bet := range bets {
		var value string
		switch key {
		case BySport:
			value = bet.Sport
		case ByBook:
			value = bet.Book
		case ByType:
			value = bet.Type
		default:
			return nil, fmt.Errorf("invalid group key %q", key)
		}
		value = strings.TrimSpace(value)

		profit, err := bet.Profit()
		if err != nil {
			return nil, fmt.Errorf("computing profit for bet %d: %w", bet.ID, err)
		}

		g := groups[value]
		g.GroupValue = value
		g.BetCount++
		g.TotalStake += bet.Stake
		g.TotalProfit += profit
		groups[value] = g
	}
	return groups, nil
}

// SortedValues returns the group values in ascending lexicographic
// order, the iteration order for display and export.
func SortedValues(groups map[string]GroupSummary) []string {
	values := make([]string, 0, len(groups))
	for v := range groups {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// FilterByDate keeps bets whose date falls inside the inclusive
// [from, to] range. Empty bounds are open; with both bounds empty the
// input is returned unchanged.
func FilterByDate(bets []ledger.Bet, from, to string) []ledger.Bet {
	if from == "" && to == "" {
		return bets
	}
	var filtered []ledger.Bet
	for _, bet := range bets {
		if from != "" && bet.Date < from {
			continue
		}
		if to != "" && bet.Date > to {
			continue
		}
		filtered = append(filtered, bet)
	}
	return filtered
}

// KPIs are the dashboard headline numbers.
type KPIs struct {
	TotalStake  float64
	TotalProfit float64
	ROI         float64 // profit/stake, 0 when stake is 0
	WinRate     float64 // W/(W+L), 0 when no decided bets
}

// Totals computes the KPIs over a slice of bets.
func Totals(bets []ledger.Bet) (KPIs, error) {
	var k KPIs
	var wins, losses int
	for _, bet := range bets {
		profit, err := bet.Profit()
		if err != nil {
			return KPIs{}, fmt.Errorf("computing profit for bet %d: %w", bet.ID, err)
		}
		k.TotalStake += bet.Stake
		k.TotalProfit += profit
		switch bet.Result {
		case "W":
			wins++
		case "L":
			losses++
		}
	}
	if k.TotalStake > 0 {
		k.ROI = k.TotalProfit / k.TotalStake
	}
	if wins+losses > 0 {
		k.WinRate = float64(wins) / float64(wins+losses)
	}
	return k, nil
}
