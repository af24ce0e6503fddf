// Command ledgerctl runs operator tasks against the ledger database.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/infra/db"
	"github.com/finance-tracker/ledger/internal/infra/dependency"
)

var commands = []subcommands.Command{
	&migrateCmd{},
	&setRateCmd{},
	&ratesCmd{},
	&addInstitutionCmd{},
	&closeStatementsCmd{},
	&generateBillsCmd{},
}

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// openLedger connects to the configured database and wires the use cases.
// The returned func closes everything.
func openLedger() (*dependency.Injector, func(), error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	database, err := db.Open(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	injector, err := dependency.NewInjector(cfg, database, nil)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return injector, func() {
		injector.Close()
		database.Close()
	}, nil
}
