package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"betledger/internal/csvio"
	"betledger/internal/ledger"
	"betledger/internal/summary"
)

type summaryCmd struct {
	storeFlags
	dateRangeFlags
	group  string
	output string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "group stored bets and write a summary CSV" }
func (*summaryCmd) Usage() string {
	return `betledger summary [-group sport|book|type] [-from <date>] [-to <date>] [-output <csv>] [-db <store>]

  Groups the stored bets by the chosen field, prints the aggregates,
  and writes them to a summary CSV sorted by group value.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.storeFlags.register(f)
	c.dateRangeFlags.register(f)
	f.StringVar(&c.group, "group", "sport", "Group by this column: sport, book, or type.")
	f.StringVar(&c.output, "output", "", "Summary CSV output path. Defaults to the configured report path.")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.validate(); err != nil {
		return fail(err)
	}
	key, err := summary.ParseGroupKey(c.group)
	if err != nil {
		return fail(err)
	}

	cfg, store, database, err := c.open()
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

	groups, err := summary.Summarize(bets, key)
	if err != nil {
		return fail(err)
	}

	output := c.output
	if output == "" {
		output = cfg.Paths.SummaryOutput
	}
	if err := csvio.WriteSummary(output, key, groups); err != nil {
		return fail(err)
	}

	report, err := summary.NewTracker(database).Generate()
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Summarized %d bets (%d open, ledger ROI %.1f%%, win rate %.1f%%).\n",
		len(bets), report.OpenBets, report.ROI*100, report.WinRate*100)
	for _, value := range summary.SortedValues(groups) {
		g := groups[value]
		fmt.Printf("%s: bets=%d stake=%.2f profit=%.2f\n",
			value, g.BetCount, g.TotalStake, g.TotalProfit)
	}
	fmt.Printf("Wrote summary to %s.\n", output)
	return subcommands.ExitSuccess
}
