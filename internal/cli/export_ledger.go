package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"betledger/internal/csvio"
	"betledger/internal/ledger"
)

type exportLedgerCmd struct {
	storeFlags
	dateRangeFlags
	output string
}

func (*exportLedgerCmd) Name() string     { return "export-ledger" }
func (*exportLedgerCmd) Synopsis() string { return "write the ledger plus computed profit to a CSV" }
func (*exportLedgerCmd) Usage() string {
	return `betledger export-ledger -output <csv> [-from <date>] [-to <date>] [-db <store>]

  Exports the stored bets in chronological order with a derived profit
  column appended.
`
}

func (c *exportLedgerCmd) SetFlags(f *flag.FlagSet) {
	c.storeFlags.register(f)
	c.dateRangeFlags.register(f)
	f.StringVar(&c.output, "output", "", "Ledger CSV output path (required).")
}

func (c *exportLedgerCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		return fail(fmt.Errorf("-output is required"))
	}
	if err := c.validate(); err != nil {
		return fail(err)
	}

	_, store, database, err := c.open()
	if err != nil {
		return fail(err)
	}
	defer database.Close()

	bets, err := store.Query(ledger.QueryOptions{
		From:  c.from,
		To:    c.to,
		Order: ledger.OrderChronological,
	})
	if err != nil {
		return fail(err)
	}

	if err := csvio.WriteLedger(c.output, bets); err != nil {
		return fail(err)
	}

	fmt.Printf("Exported %d bets to %s.\n", len(bets), c.output)
	return subcommands.ExitSuccess
}
