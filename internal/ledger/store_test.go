package ledger

import (
	"errors"
	"testing"

	"betledger/internal/db"
	"betledger/internal/odds"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })
	if err := db.Migrate(database); err != nil {
		t.Fatal(err)
	}
	return NewStore(database)
}

func sampleBet() Bet {
	return Bet{
		Date:         "2026-02-01",
		Sport:        "NBA",
		Book:         "DK",
		Type:         "spread",
		TeamOrPlayer: "Knicks -3.5",
		OddsAmerican: -110,
		Stake:        50,
		Result:       odds.Open,
	}
}

func TestInsert_ThenSkipsDuplicate(t *testing.T) {
	store := newTestStore(t)

	outcome, err := store.Insert(sampleBet(), ConflictIgnore)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Inserted {
		t.Fatalf("first insert: got %v, want Inserted", outcome)
	}

	outcome, err = store.Insert(sampleBet(), ConflictIgnore)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != SkippedDuplicate {
		t.Fatalf("second insert: got %v, want SkippedDuplicate", outcome)
	}

	bets, err := store.Query(QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(bets) != 1 {
		t.Errorf("expected 1 stored bet, got %d", len(bets))
	}
}

func TestInsert_ConflictErrorPolicy(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Insert(sampleBet(), ConflictError); err != nil {
		t.Fatal(err)
	}
	_, err := store.Insert(sampleBet(), ConflictError)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestInsert_NormalizesFields(t *testing.T) {
	store := newTestStore(t)

	bet := sampleBet()
	bet.Sport = "  NBA  "
	bet.Result = " w "
	if _, err := store.Insert(bet, ConflictIgnore); err != nil {
		t.Fatal(err)
	}

	bets, err := store.Query(QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if bets[0].Sport != "NBA" {
		t.Errorf("sport not trimmed: %q", bets[0].Sport)
	}
	if bets[0].Result != odds.Win {
		t.Errorf("result not normalized: %q", bets[0].Result)
	}
}

func TestInsert_RejectsInvalidResult(t *testing.T) {
	store := newTestStore(t)

	bet := sampleBet()
	bet.Result = "void"
	_, err := store.Insert(bet, ConflictIgnore)
	var invalid *odds.InvalidResultError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidResultError, got %v", err)
	}
}

func TestInsertMany_CountsOutcomes(t *testing.T) {
	store := newTestStore(t)

	a := sampleBet()
	b := sampleBet()
	b.TeamOrPlayer = "Celtics +3.5"

	if _, err := store.Insert(a, ConflictIgnore); err != nil {
		t.Fatal(err)
	}

	inserted, skipped, err := store.InsertMany([]Bet{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if inserted != 1 || skipped != 1 {
		t.Errorf("got inserted=%d skipped=%d, want 1/1", inserted, skipped)
	}
}

func TestUpdateResult(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Insert(sampleBet(), ConflictIgnore); err != nil {
		t.Fatal(err)
	}
	bets, err := store.Query(QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	id := bets[0].ID

	found, err := store.UpdateResult(id, "w")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected update to find the bet")
	}

	got, ok, err := store.Get(id)
	if err != nil || !ok {
		t.Fatalf("fetching bet: ok=%v err=%v", ok, err)
	}
	if got.Result != odds.Win {
		t.Errorf("result = %q, want W", got.Result)
	}
}

func TestUpdateResult_MissingID(t *testing.T) {
	store := newTestStore(t)

	found, err := store.UpdateResult(9999, "W")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("expected not-found for missing id")
	}
}

func TestQuery_Ordering(t *testing.T) {
	store := newTestStore(t)

	early := sampleBet()
	early.Date = "2026-01-01"
	late := sampleBet()
	late.Date = "2026-03-01"
	for _, b := range []Bet{early, late} {
		if _, err := store.Insert(b, ConflictIgnore); err != nil {
			t.Fatal(err)
		}
	}

	display, err := store.Query(QueryOptions{Order: OrderDisplay})
	if err != nil {
		t.Fatal(err)
	}
	if display[0].Date != "2026-03-01" {
		t.Errorf("display order: first date = %s, want 2026-03-01", display[0].Date)
	}

	chrono, err := store.Query(QueryOptions{Order: OrderChronological})
	if err != nil {
		t.Fatal(err)
	}
	if chrono[0].Date != "2026-01-01" {
		t.Errorf("chronological order: first date = %s, want 2026-01-01", chrono[0].Date)
	}
}

func TestQuery_DateRangeInclusive(t *testing.T) {
	store := newTestStore(t)

	for _, date := range []string{"2026-01-01", "2026-02-01", "2026-03-01"} {
		b := sampleBet()
		b.Date = date
		if _, err := store.Insert(b, ConflictIgnore); err != nil {
			t.Fatal(err)
		}
	}

	bets, err := store.Query(QueryOptions{From: "2026-01-01", To: "2026-02-01"})
	if err != nil {
		t.Fatal(err)
	}
	if len(bets) != 2 {
		t.Fatalf("expected 2 bets in inclusive range, got %d", len(bets))
	}
}

func TestQuery_Filters(t *testing.T) {
	store := newTestStore(t)

	nba := sampleBet()
	nfl := sampleBet()
	nfl.Sport = "NFL"
	nfl.Book = "FD"
	for _, b := range []Bet{nba, nfl} {
		if _, err := store.Insert(b, ConflictIgnore); err != nil {
			t.Fatal(err)
		}
	}

	bets, err := store.Query(QueryOptions{Sport: "NFL"})
	if err != nil {
		t.Fatal(err)
	}
	if len(bets) != 1 || bets[0].Book != "FD" {
		t.Fatalf("sport filter returned %v", bets)
	}
}
