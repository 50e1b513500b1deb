// Package cli implements the betledger subcommands.
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"betledger/internal/config"
	"betledger/internal/db"
	"betledger/internal/ledger"
)

// Commands lists every registered subcommand for the commander.
var Commands = []subcommands.Command{
	&importCSVCmd{},
	&summaryCmd{},
	&exportLedgerCmd{},
	&addBetCmd{},
	&updateResultCmd{},
	&serveCmd{},
}

// storeFlags are the flags shared by every subcommand: the config file
// and an optional database path override.
type storeFlags struct {
	configPath string
	dbPath     string
}

func (s *storeFlags) register(f *flag.FlagSet) {
	f.StringVar(&s.configPath, "config", "config.toml", "Path to the TOML config file.")
	f.StringVar(&s.dbPath, "db", "", "Path to the SQLite store. Overrides the config value.")
}

// open loads config, opens the store and runs migrations. The caller
// must close the returned database.
func (s *storeFlags) open() (*config.Config, *ledger.Store, *sql.DB, error) {
	cfg, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	path := cfg.General.DBPath
	if s.dbPath != "" {
		path = s.dbPath
	}

	database, err := db.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.Migrate(database); err != nil {
		database.Close()
		return nil, nil, nil, err
	}
	return cfg, ledger.NewStore(database), database, nil
}

// dateRangeFlags are the optional inclusive --from/--to bounds.
type dateRangeFlags struct {
	from string
	to   string
}

func (d *dateRangeFlags) register(f *flag.FlagSet) {
	f.StringVar(&d.from, "from", "", "Start date, inclusive (YYYY-MM-DD).")
	f.StringVar(&d.to, "to", "", "End date, inclusive (YYYY-MM-DD).")
}

func (d *dateRangeFlags) validate() error {
	for _, raw := range []string{d.from, d.to} {
		if raw == "" {
			continue
		}
		if _, err := time.Parse(ledger.DateLayout, raw); err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
		}
	}
	return nil
}

// fail prints a user-facing error and maps it to a non-zero exit.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
