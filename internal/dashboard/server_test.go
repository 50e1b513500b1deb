package dashboard

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"betledger/internal/db"
	"betledger/internal/ledger"
	"betledger/internal/odds"
)

func newTestServer(t *testing.T) (*httptest.Server, *ledger.Store) {
	t.Helper()
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })
	if err := db.Migrate(database); err != nil {
		t.Fatal(err)
	}
	store := ledger.NewStore(database)

	srv, err := New(store)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, store
}

func seed(t *testing.T, store *ledger.Store) {
	t.Helper()
	bets := []ledger.Bet{
		{Date: "2026-02-01", Sport: "NBA", Book: "DK", Type: "spread",
			TeamOrPlayer: "Knicks -3.5", OddsAmerican: 100, Stake: 50, Result: odds.Win},
		{Date: "2026-02-02", Sport: "NFL", Book: "FD", Type: "ml",
			TeamOrPlayer: "Bills", OddsAmerican: -110, Stake: 50, Result: odds.Open},
	}
	if _, _, err := store.InsertMany(bets); err != nil {
		t.Fatal(err)
	}
}

func TestPage_RendersKPIsAndTable(t *testing.T) {
	ts, store := newTestServer(t)
	seed(t, store)

	res, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	html := string(body)
	for _, want := range []string{"Knicks -3.5", "Bills", "Total Stake", "Win Rate"} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestAPI_ListBetsWithFilter(t *testing.T) {
	ts, store := newTestServer(t)
	seed(t, store)

	res, err := http.Get(ts.URL + "/api/bets?sport=NBA")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	var bets []betJSON
	if err := json.NewDecoder(res.Body).Decode(&bets); err != nil {
		t.Fatal(err)
	}
	if len(bets) != 1 {
		t.Fatalf("expected 1 NBA bet, got %d", len(bets))
	}
	if bets[0].Profit != 50 {
		t.Errorf("profit = %v, want 50", bets[0].Profit)
	}
}

func TestAPI_InsertReportsDuplicate(t *testing.T) {
	ts, _ := newTestServer(t)

	payload := `{"date":"2026-02-01","sport":"NBA","book":"DK","type":"spread",
		"team_or_player":"Knicks -3.5","odds_american":100,"stake":50,"result":"open"}`

	post := func() map[string]string {
		res, err := http.Post(ts.URL+"/api/bets", "application/json", strings.NewReader(payload))
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", res.StatusCode)
		}
		var out map[string]string
		if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		return out
	}

	if out := post(); out["outcome"] != "inserted" {
		t.Errorf("first insert outcome = %q", out["outcome"])
	}
	if out := post(); out["outcome"] != "skipped duplicate" {
		t.Errorf("second insert outcome = %q", out["outcome"])
	}
}

func TestAPI_UpdateResult(t *testing.T) {
	ts, store := newTestServer(t)
	seed(t, store)

	bets, err := store.Query(ledger.QueryOptions{Order: ledger.OrderChronological})
	if err != nil {
		t.Fatal(err)
	}
	id := bets[1].ID // the OPEN bet

	res, err := http.Post(ts.URL+"/api/bets/"+strconv.FormatInt(id, 10)+"/result",
		"application/json", strings.NewReader(`{"result":"w"}`))
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}

	updated, ok, err := store.Get(id)
	if err != nil || !ok {
		t.Fatalf("fetching updated bet: ok=%v err=%v", ok, err)
	}
	if updated.Result != odds.Win {
		t.Errorf("result = %q, want W", updated.Result)
	}
}

func TestAPI_UpdateResult_NotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	res, err := http.Post(ts.URL+"/api/bets/999/result",
		"application/json", strings.NewReader(`{"result":"W"}`))
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
}

func TestAPI_KPIs(t *testing.T) {
	ts, store := newTestServer(t)
	seed(t, store)

	res, err := http.Get(ts.URL + "/api/kpis")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	var kpis map[string]float64
	if err := json.NewDecoder(res.Body).Decode(&kpis); err != nil {
		t.Fatal(err)
	}
	if kpis["total_stake"] != 100 {
		t.Errorf("total_stake = %v, want 100", kpis["total_stake"])
	}
	if kpis["win_rate"] != 1 {
		t.Errorf("win_rate = %v, want 1 (one win, no losses)", kpis["win_rate"])
	}
}
