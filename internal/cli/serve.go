package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"betledger/internal/dashboard"
)

type serveCmd struct {
	storeFlags
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the interactive dashboard" }
func (*serveCmd) Usage() string {
	return `betledger serve [-addr <host:port>] [-db <store>]

  Serves the table and KPI view plus add/update forms over HTTP.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	c.storeFlags.register(f)
	f.StringVar(&c.addr, "addr", "", "Listen address. Defaults to the configured address.")
}

func (c *serveCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, store, database, err := c.open()
	if err != nil {
		return fail(err)
	}
	defer database.Close()

	addr := c.addr
	if addr == "" {
		addr = cfg.Dashboard.ListenAddr
	}

	srv, err := dashboard.New(store)
	if err != nil {
		return fail(err)
	}
	if err := srv.ListenAndServe(addr); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
