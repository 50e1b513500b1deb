package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type updateResultCmd struct {
	storeFlags
	id     int64
	result string
}

func (*updateResultCmd) Name() string     { return "update-result" }
func (*updateResultCmd) Synopsis() string { return "settle or reopen a bet by id" }
func (*updateResultCmd) Usage() string {
	return `betledger update-result -id <n> -result W|L|P|OPEN [-db <store>]

  Rewrites the result for one bet, typically settling an OPEN bet.
`
}

func (c *updateResultCmd) SetFlags(f *flag.FlagSet) {
	c.storeFlags.register(f)
	f.Int64Var(&c.id, "id", 0, "Bet id to update.")
	f.StringVar(&c.result, "result", "", "New result: W, L, P, or OPEN (case-insensitive).")
}

func (c *updateResultCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id <= 0 {
		return fail(fmt.Errorf("-id is required"))
	}

	_, store, database, err := c.open()
	if err != nil {
		return fail(err)
	}
	defer database.Close()

	found, err := store.UpdateResult(c.id, c.result)
	if err != nil {
		return fail(err)
	}
	if !found {
		return fail(fmt.Errorf("bet %d not found", c.id))
	}

	fmt.Printf("Updated bet %d to %s.\n", c.id, c.result)
	return subcommands.ExitSuccess
}
