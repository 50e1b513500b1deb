package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"betledger/internal/odds"
)

// ErrDuplicate is returned by Insert under ConflictError when the bet
// tuple already exists.
var ErrDuplicate = errors.New("duplicate bet")

// ConflictPolicy controls what Insert does when the uniqueness
// constraint would be violated.
type ConflictPolicy int

const (
	// ConflictIgnore treats a duplicate as a normal SkippedDuplicate
	// outcome. This is the policy used by imports.
	ConflictIgnore ConflictPolicy = iota
	// ConflictError surfaces a duplicate as ErrDuplicate.
	ConflictError
)

// InsertOutcome reports what a single Insert attempt did.
type InsertOutcome int

const (
	Inserted InsertOutcome = iota
	SkippedDuplicate
)

func (o InsertOutcome) String() string {
	if o == Inserted {
		return "inserted"
	}
	return "skipped duplicate"
}

// Order selects the row ordering for Query.
type Order int

const (
	// OrderDisplay is date descending then id descending, newest
	// first, used by the dashboard table.
	OrderDisplay Order = iota
	// OrderChronological is date ascending then id ascending, used by
	// export and summarization.
	OrderChronological
)

// QueryOptions filter and order a Query. Empty fields are not applied.
// Date bounds are inclusive on both ends.
type QueryOptions struct {
	From   string // YYYY-MM-DD
	To     string // YYYY-MM-DD
	Sport  string
	Book   string
	Result odds.Result
	Order  Order
}

// Store persists bets in the bets table.
type Store struct {
	db *sql.DB

	// now is swappable so tests get deterministic created_at stamps.
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

const betColumns = `id, date, sport, book, type, team_or_player, odds_american, stake, result, notes, created_at`

// Insert attempts to store one bet. The bet is normalized first; a row
// matching the full (date, sport, book, type, team_or_player, odds,
// stake, result, notes) tuple is handled per the conflict policy.
func (s *Store) Insert(bet Bet, policy ConflictPolicy) (InsertOutcome, error) {
	bet, err := bet.Normalize()
	if err != nil {
		return SkippedDuplicate, err
	}

	res, err := s.db.Exec(`
		INSERT OR IGNORE INTO bets
		(date, sport, book, type, team_or_player, odds_american, stake, result, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bet.Date, bet.Sport, bet.Book, bet.Type, bet.TeamOrPlayer,
		bet.OddsAmerican, bet.Stake, string(bet.Result), bet.Notes,
		s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return SkippedDuplicate, fmt.Errorf("inserting bet: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return SkippedDuplicate, fmt.Errorf("checking insert outcome: %w", err)
	}
	if affected == 0 {
		if policy == ConflictError {
			return SkippedDuplicate, ErrDuplicate
		}
		return SkippedDuplicate, nil
	}
	return Inserted, nil
}

// InsertMany stores a batch of bets in a single transaction. Each row's
// duplicate check is independent; the counts report how many rows were
// inserted and how many were skipped as duplicates.
func (s *Store) InsertMany(bets []Bet) (inserted, skipped int, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO bets
		(date, sport, book, type, team_or_player, odds_american, stake, result, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	createdAt := s.now().UTC().Format(time.RFC3339)
	for _, bet := range bets {
		bet, err := bet.Normalize()
		if err != nil {
			return 0, 0, err
		}
		res, err := stmt.Exec(
			bet.Date, bet.Sport, bet.Book, bet.Type, bet.TeamOrPlayer,
			bet.OddsAmerican, bet.Stake, string(bet.Result), bet.Notes, createdAt,
		)
		if err != nil {
			return 0, 0, fmt.Errorf("inserting bet: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, 0, fmt.Errorf("checking insert outcome: %w", err)
		}
		if affected == 1 {
			inserted++
		} else {
			skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("committing batch insert: %w", err)
	}
	return inserted, skipped, nil
}

// UpdateResult rewrites the result for one bet id, returning whether a
// row was actually updated. The new result is normalized first.
func (s *Store) UpdateResult(id int64, raw string) (bool, error) {
	result, err := odds.NormalizeResult(raw)
	if err != nil {
		return false, err
	}

	res, err := s.db.Exec(`UPDATE bets SET result = ? WHERE id = ?`, string(result), id)
	if err != nil {
		return false, fmt.Errorf("updating result for bet %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking update outcome: %w", err)
	}
	return affected == 1, nil
}

// Query returns bets matching the options, ordered per opts.Order.
func (s *Store) Query(opts QueryOptions) ([]Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets`
	var clauses []string
	var args []any

	if opts.From != "" {
		clauses = append(clauses, "date >= ?")
		args = append(args, opts.From)
	}
	if opts.To != "" {
		clauses = append(clauses, "date <= ?")
		args = append(args, opts.To)
	}
	if opts.Sport != "" {
		clauses = append(clauses, "sport = ?")
		args = append(args, opts.Sport)
	}
	if opts.Book != "" {
		clauses = append(clauses, "book = ?")
		args = append(args, opts.Book)
	}
	if opts.Result != "" {
		clauses = append(clauses, "result = ?")
		args = append(args, string(opts.Result))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}

	if opts.Order == OrderDisplay {
		query += " ORDER BY date DESC, id DESC"
	} else {
		query += " ORDER BY date ASC, id ASC"
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying bets: %w", err)
	}
	defer rows.Close()

	var bets []Bet
	for rows.Next() {
		var b Bet
		var result string
		if err := rows.Scan(&b.ID, &b.Date, &b.Sport, &b.Book, &b.Type, &b.TeamOrPlayer,
			&b.OddsAmerican, &b.Stake, &result, &b.Notes, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning bet: %w", err)
		}
		b.Result = odds.Result(result)
		bets = append(bets, b)
	}
	return bets, rows.Err()
}

// Get fetches a single bet by id, reporting whether it exists.
func (s *Store) Get(id int64) (Bet, bool, error) {
	var b Bet
	var result string
	err := s.db.QueryRow(`SELECT `+betColumns+` FROM bets WHERE id = ?`, id).Scan(
		&b.ID, &b.Date, &b.Sport, &b.Book, &b.Type, &b.TeamOrPlayer,
		&b.OddsAmerican, &b.Stake, &result, &b.Notes, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Bet{}, false, nil
	}
	if err != nil {
		return Bet{}, false, fmt.Errorf("fetching bet %d: %w", id, err)
	}
	b.Result = odds.Result(result)
	return b, true, nil
}
