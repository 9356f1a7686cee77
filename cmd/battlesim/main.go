package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rentierek/data-driven-autochess/internal/config"
	"github.com/rentierek/data-driven-autochess/internal/engine"
	"github.com/rentierek/data-driven-autochess/internal/eventstore"
	"github.com/rentierek/data-driven-autochess/internal/hexgrid"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables only")
	}

	if err := newRootCmd().Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		seed       uint64
		configPath string
		verbose    bool
		storePath  string
	)

	cmd := &cobra.Command{
		Use:   "battlesim",
		Short: "Run a deterministic hex-grid auto-battler simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBattle(configPath, seed, verbose, storePath)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 1, "RNG seed for the battle")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a battle configuration YAML file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every event as it is emitted")
	cmd.Flags().StringVar(&storePath, "store", "", "optional SQLite file to append this run's result and event log to")
	cmd.MarkFlagRequired("config")

	return cmd
}

func runBattle(configPath string, seed uint64, verbose bool, storePath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", configPath, err)
	}

	bundle, err := config.Load(data)
	if err != nil {
		return err
	}

	eng, err := config.BuildEngine(bundle, seed)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	result, err := eng.Run(ctx)
	if err != nil {
		return fmt.Errorf("running battle: %w", err)
	}

	if verbose {
		printEvents(eng)
	}
	printSummary(seed, result)

	if storePath != "" {
		if err := recordRun(storePath, seed, eng, result); err != nil {
			return fmt.Errorf("recording run to %s: %w", storePath, err)
		}
	}
	return nil
}

// recordRun appends this battle's summary and full event log to a SQLite
// event store, so a later batch script can SELECT across many runs.
func recordRun(storePath string, seed uint64, eng *engine.Engine, result engine.Result) error {
	store, err := eventstore.Open(storePath)
	if err != nil {
		return err
	}
	defer store.Close()

	width, height := hexgrid.Width, hexgrid.Height
	winner := result.Winner
	ticks := result.Ticks
	outcome := eventstore.RunOutcome{
		ID:         fmt.Sprintf("seed-%d", seed),
		Seed:       seed,
		TickRate:   eng.TickRate(),
		GridWidth:  width,
		GridHeight: height,
		Winner:     &winner,
		Ticks:      &ticks,
	}
	return store.SaveRun(outcome, eng.Log().Events())
}

func printSummary(seed uint64, result engine.Result) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Seed", "Winner", "Ticks"})

	winner := "draw"
	switch result.Winner {
	case 0:
		winner = "team 0"
	case 1:
		winner = "team 1"
	}
	table.Append([]string{fmt.Sprintf("%d", seed), winner, fmt.Sprintf("%d", result.Ticks)})
	table.Render()
}

func printEvents(eng *engine.Engine) {
	for _, e := range eng.Log().Events() {
		fmt.Printf("tick=%d kind=%s unit=%v target=%v data=%v\n", e.Tick, e.Kind, e.UnitID, e.TargetID, e.Data)
	}
}
