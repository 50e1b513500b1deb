package cli

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"betledger/internal/csvio"
	"betledger/internal/summary"
)

type importCSVCmd struct {
	storeFlags
	dateRangeFlags
	input string
}

func (*importCSVCmd) Name() string     { return "import-csv" }
func (*importCSVCmd) Synopsis() string { return "load a ledger CSV into the store, skipping duplicates" }
func (*importCSVCmd) Usage() string {
	return `betledger import-csv [-input <csv>] [-from <date>] [-to <date>] [-db <store>]

  Validates and loads a bets CSV into the store. Duplicate rows are
  skipped, so re-importing the same file is a no-op. A malformed file
  fails the entire import; nothing is written.
`
}

func (c *importCSVCmd) SetFlags(f *flag.FlagSet) {
	c.storeFlags.register(f)
	c.dateRangeFlags.register(f)
	f.StringVar(&c.input, "input", "", "Path to the bets CSV. Defaults to the configured input, falling back to the sample file.")
}

func (c *importCSVCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.validate(); err != nil {
		return fail(err)
	}

	cfg, store, database, err := c.open()
	if err != nil {
		return fail(err)
	}
	defer database.Close()

	input := selectInput(c.input, cfg.Paths.InputCSV, cfg.Paths.InputFallback)
	bets, err := csvio.Load(input)
	if err != nil {
		return fail(err)
	}
	bets = summary.FilterByDate(bets, c.from, c.to)

	inserted, skipped, err := store.InsertMany(bets)
	if err != nil {
		return fail(err)
	}

	slog.Info("import complete", "input", input, "inserted", inserted, "skipped", skipped)
	fmt.Printf("Imported %d bets from %s (%d inserted, %d duplicates skipped).\n",
		len(bets), input, inserted, skipped)
	return subcommands.ExitSuccess
}

// selectInput picks the requested path, or the configured primary
// input, falling back to the sample file when the primary is missing.
func selectInput(requested, primary, fallback string) string {
	if requested != "" {
		return requested
	}
	if _, err := os.Stat(primary); err == nil {
		return primary
	}
	return fallback
}
