package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"bettracker/internal/catalog"
	"bettracker/internal/config"
	"bettracker/internal/form"
	"bettracker/internal/seed"
	"bettracker/internal/store"
)

const usage = `usage: bettracker [-config path] <command> [flags]

commands:
  seed            write the seed set into the store
  sports          list sports and games (-category Sport|Esport)
  teams           list teams for -sport
  tournaments     list tournaments for -sport
  locations       list locations for -sport
  bettypes        list bet types for -sport
  options         show how the option of -bettype is entered for -sport
  add             record a bet (see bettracker add -h)
  list            list recorded bets, newest first (-limit N)
  summary         show totals and per sport results
  add-team        add -name as a team of -sport
  add-tournament  add -name as a tournament of -sport
  add-location    add -name as a location of -sport
  add-bettype     add -name as a bet type of -sport
`

// app holds everything a command needs.
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	store   *store.Store
	form    *form.Form
	seedSet seed.Set
}

func main() {
	// Parse CLI flags.
	configFlag := flag.String("config", "", "Path to the TOML config file")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	name, args := flag.Arg(0), flag.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		flag.Usage()
		os.Exit(2)
	}

	// Load configuration. Only an explicitly named file has to exist.
	configPath := "config.toml"
	if p := os.Getenv("BT_CONFIG_PATH"); p != "" {
		configPath = p
	}
	load := config.LoadOrDefault
	if *configFlag != "" {
		configPath = *configFlag
		load = config.Load
	}
	cfg, err := load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Set up structured logging. Stdout is reserved for command output.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	})))

	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	seedSet, err := seed.LoadSet(cfg.Seed.Path)
	if err != nil {
		slog.Error("failed to load seed set", "error", err)
		os.Exit(1)
	}

	// Initialize database.
	st, err := openStore(cfg.General.DBPath, cfg.Seed.OnOpen, seedSet)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	a := &app{
		cfg:     cfg,
		catalog: cat,
		store:   st,
		form:    form.New(cat, st, cfg.Form),
		seedSet: seedSet,
	}
	if err := cmd(a, args); err != nil {
		slog.Error("command failed", "command", name, "error", err)
		st.Close()
		os.Exit(1)
	}
}

var openDB = store.Open

// openStore opens the database and seeds it when asked to. The store is closed
// again when seeding fails.
func openStore(path string, seedOnOpen bool, set seed.Set) (*store.Store, error) {
	st, err := openDB(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("database initialized", "path", path)

	if seedOnOpen {
		if _, err := seed.EnsureSeeded(st, set); err != nil {
			st.Close()
			return nil, fmt.Errorf("seeding database: %w", err)
		}
	}
	return st, nil
}
