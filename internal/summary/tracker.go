package summary

import (
	"database/sql"
	"fmt"
)

// Tracker computes ledger-wide metrics directly in SQL. Profit is
// derived in the query from stake, odds and result, mirroring the
// in-memory calculator, so nothing derived is ever persisted.
type Tracker struct {
	db *sql.DB
}

func NewTracker(db *sql.DB) *Tracker {
	return &Tracker{db: db}
}

// Report contains the ledger-wide metrics.
type Report struct {
	TotalBets   int
	OpenBets    int
	TotalStake  float64
	TotalProfit float64
	ROI         float64
	WinRate     float64
}

// profitExpr is the SQL rendering of the American-odds profit rule:
// wins pay stake*(decimal-1), losses lose the stake, pushes and open
// bets are zero.
const profitExpr = `
	CASE result
		WHEN 'W' THEN stake * (CASE WHEN odds_american > 0 THEN odds_american / 100.0 ELSE 100.0 / -odds_american END)
		WHEN 'L' THEN -stake
		ELSE 0
	END`

// Generate computes the full report.
func (t *Tracker) Generate() (*Report, error) {
	r := &Report{}

	row := t.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN result = 'OPEN' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(stake), 0),
		       COALESCE(SUM(` + profitExpr + `), 0)
		FROM bets`)
	if err := row.Scan(&r.TotalBets, &r.OpenBets, &r.TotalStake, &r.TotalProfit); err != nil {
		return nil, fmt.Errorf("computing overall stats: %w", err)
	}

	if r.TotalStake > 0 {
		r.ROI = r.TotalProfit / r.TotalStake
	}

	var wins, decided int
	row = t.db.QueryRow(`
		SELECT COALESCE(SUM(CASE WHEN result = 'W' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN result IN ('W', 'L') THEN 1 ELSE 0 END), 0)
		FROM bets`)
	if err := row.Scan(&wins, &decided); err != nil {
		return nil, fmt.Errorf("computing win rate: %w", err)
	}
	if decided > 0 {
		r.WinRate = float64(wins) / float64(decided)
	}

	return r, nil
}
