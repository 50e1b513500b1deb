// Package csvio loads and writes the ledger CSV format.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"betledger/internal/ledger"
	"betledger/internal/odds"
	"betledger/internal/summary"
)

// Columns is the exact required header for a ledger CSV, in order.
var Columns = []string{
	"date", "sport", "book", "type", "team_or_player",
	"odds_american", "stake", "result", "notes",
}

// SchemaError reports a header that does not exactly match Columns.
type SchemaError struct {
	Missing    []string
	Unexpected []string
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing columns: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unexpected) > 0 {
		parts = append(parts, "unexpected columns: "+strings.Join(e.Unexpected, ", "))
	}
	return "invalid CSV schema; " + strings.Join(parts, "; ")
}

// FieldParseError reports a numeric field that failed to parse. Row is
// 1-based counting the header, so the first data row is row 2.
type FieldParseError struct {
	Field string
	Value string
	Row   int
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("invalid %s value %q on row %d", e.Field, e.Value, e.Row)
}

func validateHeader(header []string) error {
	required := make(map[string]bool, len(Columns))
	for _, c := range Columns {
		required[c] = true
	}
	seen := make(map[string]bool, len(header))
	var unexpected []string
	for _, c := range header {
		c = strings.TrimSpace(c)
		seen[c] = true
		if !required[c] {
			unexpected = append(unexpected, c)
		}
	}
	var missing []string
	for _, c := range Columns {
		if !seen[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 || len(unexpected) > 0 {
		return &SchemaError{Missing: missing, Unexpected: unexpected}
	}
	return nil
}

func parseFloat(raw, field string, row int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &FieldParseError{Field: field, Value: raw, Row: row}
	}
	return v, nil
}

// Load reads a ledger CSV. Any schema mismatch, unparsable numeric
// field, or invalid result fails the whole load; there is no partial
// import of a malformed file.
func Load(path string) ([]ledger.Bet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read is Load over an arbitrary reader.
func Read(r io.Reader) ([]ledger.Bet, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV header row is required")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, c := range header {
		index[strings.TrimSpace(c)] = i
	}

	var bets []ledger.Bet
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", row, err)
		}

		field := func(name string) string { return record[index[name]] }

		oddsAmerican, err := parseFloat(field("odds_american"), "odds_american", row)
		if err != nil {
			return nil, err
		}
		stake, err := parseFloat(field("stake"), "stake", row)
		if err != nil {
			return nil, err
		}
		result, err := odds.NormalizeResult(field("result"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		bets = append(bets, ledger.Bet{
			Date:         strings.TrimSpace(field("date")),
			Sport:        strings.TrimSpace(field("sport")),
			Book:         strings.TrimSpace(field("book")),
			Type:         strings.TrimSpace(field("type")),
			TeamOrPlayer: strings.TrimSpace(field("team_or_player")),
			OddsAmerican: oddsAmerican,
			Stake:        stake,
			Result:       result,
			Notes:        strings.TrimSpace(field("notes")),
		})
	}
	return bets, nil
}

func create(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, nil
}

// WriteLedger writes all ledger columns plus a derived profit column,
// preserving the order the bets were supplied in.
func WriteLedger(path string, bets []ledger.Bet) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append(append([]string{}, Columns...), "profit")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, bet := range bets {
		profit, err := bet.Profit()
		if err != nil {
			return fmt.Errorf("computing profit for bet %d: %w", bet.ID, err)
		}
		record := []string{
			bet.Date, bet.Sport, bet.Book, bet.Type, bet.TeamOrPlayer,
			formatOdds(bet.OddsAmerican),
			strconv.FormatFloat(bet.Stake, 'f', -1, 64),
			string(bet.Result),
			bet.Notes,
			fmt.Sprintf("%.2f", profit),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing bet row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteSummary writes one row per group, sorted by group value
// ascending, with stake and profit formatted to 2 decimal places.
func WriteSummary(path string, key summary.GroupKey, groups map[string]summary.GroupSummary) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{string(key), "bets", "stake", "profit"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, value := range summary.SortedValues(groups) {
		g := groups[value]
		record := []string{
			value,
			strconv.Itoa(g.BetCount),
			fmt.Sprintf("%.2f", g.TotalStake),
			fmt.Sprintf("%.2f", g.TotalProfit),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// formatOdds renders American odds without a trailing fraction when
// they are whole numbers, the common case.
func formatOdds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
