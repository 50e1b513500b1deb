package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"betledger/internal/ledger"
	"betledger/internal/odds"
)

type addBetCmd struct {
	storeFlags
	date         string
	sport        string
	book         string
	betType      string
	teamOrPlayer string
	oddsAmerican float64
	stake        float64
	result       string
	notes        string
}

func (*addBetCmd) Name() string     { return "add-bet" }
func (*addBetCmd) Synopsis() string { return "record a single bet" }
func (*addBetCmd) Usage() string {
	return `betledger add-bet -date <date> -sport <s> -book <b> -type <t> -team <name> -odds <n> -stake <n> [-result W|L|P|OPEN] [-notes <text>] [-db <store>]

  Inserts one bet into the store. An exact duplicate of an existing bet
  is skipped and reported, not treated as an error.
`
}

func (c *addBetCmd) SetFlags(f *flag.FlagSet) {
	c.storeFlags.register(f)
	f.StringVar(&c.date, "date", "", "Bet date (YYYY-MM-DD).")
	f.StringVar(&c.sport, "sport", "", "Sport, e.g. NBA.")
	f.StringVar(&c.book, "book", "", "Sportsbook, e.g. DK.")
	f.StringVar(&c.betType, "type", "", "Bet type, e.g. spread.")
	f.StringVar(&c.teamOrPlayer, "team", "", "Team or player wagered on.")
	f.Float64Var(&c.oddsAmerican, "odds", 0, "American odds, non-zero.")
	f.Float64Var(&c.stake, "stake", 0, "Stake, positive.")
	f.StringVar(&c.result, "result", "OPEN", "Result: W, L, P, or OPEN (case-insensitive).")
	f.StringVar(&c.notes, "notes", "", "Free-text notes.")
}

func (c *addBetCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bet := ledger.Bet{
		Date:         c.date,
		Sport:        c.sport,
		Book:         c.book,
		Type:         c.betType,
		TeamOrPlayer: c.teamOrPlayer,
		OddsAmerican: c.oddsAmerican,
		Stake:        c.stake,
		Result:       odds.Result(c.result),
		Notes:        c.notes,
	}
	bet, err := bet.Normalize()
	if err != nil {
		return fail(err)
	}
	if err := bet.Validate(); err != nil {
		return fail(err)
	}

	_, store, database, err := c.open()
	if err != nil {
		return fail(err)
	}
	defer database.Close()

	outcome, err := store.Insert(bet, ledger.ConflictIgnore)
	if err != nil {
		return fail(err)
	}

	if outcome == ledger.Inserted {
		fmt.Println("Inserted bet.")
	} else {
		fmt.Println("Skipped duplicate bet.")
	}
	return subcommands.ExitSuccess
}
