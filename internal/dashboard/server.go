// Package dashboard serves the interactive table and KPI view over HTTP.
package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"betledger/internal/ledger"
	"betledger/internal/odds"
	"betledger/internal/summary"
)

// Server renders the ledger table, the four KPIs, and the add/update
// forms, and exposes a small JSON API for the same operations.
type Server struct {
	store *ledger.Store
	tmpl  *template.Template
}

func New(store *ledger.Store) (*Server, error) {
	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"pct": func(v float64) float64 { return v * 100 },
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Server{store: store, tmpl: tmpl}, nil
}

// Router builds the chi router with CORS enabled so the API is usable
// from local tooling.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/", s.handlePage)
	r.Post("/bets", s.handleAddForm)
	r.Post("/bets/{id}/result", s.handleUpdateForm)

	r.Route("/api", func(r chi.Router) {
		r.Get("/bets", s.handleListBets)
		r.Post("/bets", s.handleInsertBet)
		r.Post("/bets/{id}/result", s.handleUpdateResult)
		r.Get("/kpis", s.handleKPIs)
	})

	return r
}

// ListenAndServe runs the dashboard until the process exits.
func (s *Server) ListenAndServe(addr string) error {
	slog.Info("dashboard listening", "addr", addr)
	return http.ListenAndServe(addr, s.Router())
}

// filtersFromQuery maps the page/API query parameters onto store
// filters. All filtering is inclusive on date bounds.
func filtersFromQuery(r *http.Request) ledger.QueryOptions {
	q := r.URL.Query()
	opts := ledger.QueryOptions{
		From:  q.Get("from"),
		To:    q.Get("to"),
		Sport: q.Get("sport"),
		Book:  q.Get("book"),
		Order: ledger.OrderDisplay,
	}
	if raw := q.Get("result"); raw != "" {
		if result, err := odds.NormalizeResult(raw); err == nil {
			opts.Result = result
		}
	}
	return opts
}

type betRow struct {
	ledger.Bet
	ProfitValue float64
}

// filtersView mirrors QueryOptions with plain strings for the template.
type filtersView struct {
	From   string
	To     string
	Sport  string
	Book   string
	Result string
}

type pageData struct {
	Bets    []betRow
	KPIs    summary.KPIs
	Filters filtersView
	Sports  []string
	Books   []string
	Results []string
	Flash   string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	opts := filtersFromQuery(r)
	bets, err := s.store.Query(opts)
	if err != nil {
		httpError(w, err)
		return
	}

	rows := make([]betRow, 0, len(bets))
	for _, bet := range bets {
		profit, err := bet.Profit()
		if err != nil {
			httpError(w, err)
			return
		}
		rows = append(rows, betRow{Bet: bet, ProfitValue: profit})
	}

	kpis, err := summary.Totals(bets)
	if err != nil {
		httpError(w, err)
		return
	}

	// Filter dropdowns list values from the whole ledger, not the
	// filtered view, so hidden bets stay reachable.
	all, err := s.store.Query(ledger.QueryOptions{Order: ledger.OrderDisplay})
	if err != nil {
		httpError(w, err)
		return
	}
	sports := distinct(all, func(b ledger.Bet) string { return b.Sport })
	books := distinct(all, func(b ledger.Bet) string { return b.Book })

	data := pageData{
		Bets: rows,
		KPIs: kpis,
		Filters: filtersView{
			From:   opts.From,
			To:     opts.To,
			Sport:  opts.Sport,
			Book:   opts.Book,
			Result: string(opts.Result),
		},
		Sports:  sports,
		Books:   books,
		Results: []string{"W", "L", "P", "OPEN"},
		Flash:   r.URL.Query().Get("flash"),
	}
	if err := s.tmpl.Execute(w, data); err != nil {
		slog.Error("rendering page", "error", err)
	}
}

func distinct(bets []ledger.Bet, field func(ledger.Bet) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, b := range bets {
		v := field(b)
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}

func betFromForm(r *http.Request) (ledger.Bet, error) {
	oddsAmerican, err := strconv.ParseFloat(r.FormValue("odds_american"), 64)
	if err != nil {
		return ledger.Bet{}, fmt.Errorf("invalid odds %q", r.FormValue("odds_american"))
	}
	stake, err := strconv.ParseFloat(r.FormValue("stake"), 64)
	if err != nil {
		return ledger.Bet{}, fmt.Errorf("invalid stake %q", r.FormValue("stake"))
	}
	bet := ledger.Bet{
		Date:         r.FormValue("date"),
		Sport:        r.FormValue("sport"),
		Book:         r.FormValue("book"),
		Type:         r.FormValue("type"),
		TeamOrPlayer: r.FormValue("team_or_player"),
		OddsAmerican: oddsAmerican,
		Stake:        stake,
		Result:       odds.Result(r.FormValue("result")),
		Notes:        r.FormValue("notes"),
	}
	bet, err = bet.Normalize()
	if err != nil {
		return ledger.Bet{}, err
	}
	if err := bet.Validate(); err != nil {
		return ledger.Bet{}, err
	}
	return bet, nil
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	bet, err := betFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	outcome, err := s.store.Insert(bet, ledger.ConflictIgnore)
	if err != nil {
		httpError(w, err)
		return
	}
	http.Redirect(w, r, "/?flash="+flashFor(outcome), http.StatusSeeOther)
}

func flashFor(outcome ledger.InsertOutcome) string {
	if outcome == ledger.Inserted {
		return "inserted"
	}
	return "duplicate"
}

func (s *Server) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid bet id", http.StatusBadRequest)
		return
	}
	found, err := s.store.UpdateResult(id, r.FormValue("result"))
	if err != nil {
		var invalid *odds.InvalidResultError
		if errors.As(err, &invalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		httpError(w, err)
		return
	}
	if !found {
		http.Error(w, fmt.Sprintf("bet %d not found", id), http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/?flash=updated", http.StatusSeeOther)
}

type betJSON struct {
	ID           int64   `json:"id"`
	Date         string  `json:"date"`
	Sport        string  `json:"sport"`
	Book         string  `json:"book"`
	Type         string  `json:"type"`
	TeamOrPlayer string  `json:"team_or_player"`
	OddsAmerican float64 `json:"odds_american"`
	Stake        float64 `json:"stake"`
	Result       string  `json:"result"`
	Notes        string  `json:"notes"`
	Profit       float64 `json:"profit"`
}

func toJSON(bet ledger.Bet) (betJSON, error) {
	profit, err := bet.Profit()
	if err != nil {
		return betJSON{}, err
	}
	return betJSON{
		ID:           bet.ID,
		Date:         bet.Date,
		Sport:        bet.Sport,
		Book:         bet.Book,
		Type:         bet.Type,
		TeamOrPlayer: bet.TeamOrPlayer,
		OddsAmerican: bet.OddsAmerican,
		Stake:        bet.Stake,
		Result:       string(bet.Result),
		Notes:        bet.Notes,
		Profit:       profit,
	}, nil
}

func (s *Server) handleListBets(w http.ResponseWriter, r *http.Request) {
	bets, err := s.store.Query(filtersFromQuery(r))
	if err != nil {
		httpError(w, err)
		return
	}
	out := make([]betJSON, 0, len(bets))
	for _, bet := range bets {
		row, err := toJSON(bet)
		if err != nil {
			httpError(w, err)
			return
		}
		out = append(out, row)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleInsertBet(w http.ResponseWriter, r *http.Request) {
	var in betJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	bet := ledger.Bet{
		Date:         in.Date,
		Sport:        in.Sport,
		Book:         in.Book,
		Type:         in.Type,
		TeamOrPlayer: in.TeamOrPlayer,
		OddsAmerican: in.OddsAmerican,
		Stake:        in.Stake,
		Result:       odds.Result(in.Result),
		Notes:        in.Notes,
	}
	normalized, err := bet.Normalize()
	if err == nil {
		err = normalized.Validate()
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	outcome, err := s.store.Insert(normalized, ledger.ConflictIgnore)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"outcome": outcome.String()})
}

func (s *Server) handleUpdateResult(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid bet id", http.StatusBadRequest)
		return
	}
	var in struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	found, err := s.store.UpdateResult(id, in.Result)
	if err != nil {
		var invalid *odds.InvalidResultError
		if errors.As(err, &invalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		httpError(w, err)
		return
	}
	if !found {
		http.Error(w, fmt.Sprintf("bet %d not found", id), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"outcome": "updated"})
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	bets, err := s.store.Query(filtersFromQuery(r))
	if err != nil {
		httpError(w, err)
		return
	}
	kpis, err := summary.Totals(bets)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"total_stake":  kpis.TotalStake,
		"total_profit": kpis.TotalProfit,
		"roi":          kpis.ROI,
		"win_rate":     kpis.WinRate,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func httpError(w http.ResponseWriter, err error) {
	slog.Error("request failed", "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
