// Command haven runs the Village of Haven settlement simulation: a
// headless API server plus maintenance subcommands for ticking,
// inspecting, and exporting save slots.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/haven/internal/api"
	"github.com/talgya/haven/internal/content"
	"github.com/talgya/haven/internal/persistence"
	"github.com/talgya/haven/internal/sim"
)

var (
	dbPath  string
	slot    string
	verbose bool
)

func main() {
	root := &cobra.Command{
		Use:   "haven",
		Short: "Deterministic settlement simulation for the Village of Haven",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "data/haven.db", "path to the save database")
	root.PersistentFlags().StringVar(&slot, "slot", persistence.DefaultSlot, "save slot name")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(serveCmd(), tickCmd(), statusCmd(), savesCmd(), resetCmd(), exportCmd(), importCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDB() (*persistence.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return persistence.Open(dbPath)
}

// loadOrDefault reads the slot, falling back to a fresh settlement when
// the slot is empty or the save cannot be migrated into a valid state.
func loadOrDefault(db *persistence.DB, engine *sim.Simulation) sim.State {
	st, err := db.LoadState(slot, engine)
	if err != nil {
		if !errors.Is(err, persistence.ErrNoSave) {
			slog.Warn("save unusable, starting fresh", "slot", slot, "error", err)
		}
		return engine.DefaultState()
	}
	return st
}

func serveCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the settlement over HTTP",
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			engine := sim.New(content.Default())
			st := loadOrDefault(db, engine)
			slog.Info("settlement loaded", "slot", slot, "day", st.Day, "villagers", len(st.Villagers))

			srv := api.NewServer(engine, st)
			srv.DB = db
			srv.Slot = slot
			srv.Port = port
			srv.AdminKey = os.Getenv("HAVEN_ADMIN_KEY")
			if srv.AdminKey == "" {
				slog.Warn("HAVEN_ADMIN_KEY unset, intent endpoints are open")
			}
			srv.Start()
			select {}
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "listen port")
	return cmd
}

func tickCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Advance the settlement by N days and save",
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			engine := sim.New(content.Default())
			st := loadOrDefault(db, engine)
			before := st.Day
			st = engine.TickDay(st, days)
			if err := db.SaveState(slot, st); err != nil {
				return err
			}
			slog.Info("advanced", "from", before, "to", st.Day, "summonPaused", st.SummonPaused)
			printStatus(st)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 1, "days to advance")
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the settlement's current state",
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			engine := sim.New(content.Default())
			printStatus(loadOrDefault(db, engine))
			return nil
		},
	}
}

func printStatus(st sim.State) {
	fmt.Printf("Day %d — %s\n", st.Day, st.Biome)
	fmt.Printf("morale %.0f  stability %.0f  readiness %.0f\n", st.Morale, st.Stability, st.Readiness)
	fmt.Printf("villagers %d  queue %d  crafting %d\n", len(st.Villagers), len(st.BuildQueue), len(st.Crafting))

	ids := make([]string, 0, len(st.Resources))
	for id := range st.Resources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		delta := st.Deltas[id]
		sign := " "
		if delta > 0 {
			sign = "+"
		}
		fmt.Printf("  %-10s %6s  (%s%s/day)\n", id, humanize.Ftoa(st.Resources[id]), sign, humanize.Ftoa(delta))
	}
	for _, msg := range st.Notifications {
		fmt.Printf("  · %s\n", msg)
	}
}

func savesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "saves",
		Short: "List stored save slots",
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			infos, err := db.ListSaves()
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Println("no saves")
				return nil
			}
			for _, info := range infos {
				fmt.Printf("%-24s day %-5d %s\n", info.Slot, info.Day,
					humanize.Time(time.Unix(info.UpdatedAt, 0)))
			}
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the slot and start a fresh settlement",
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.DeleteSave(slot); err != nil {
				return err
			}
			engine := sim.New(content.Default())
			if err := db.SaveState(slot, engine.DefaultState()); err != nil {
				return err
			}
			slog.Info("slot reset", "slot", slot)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the slot's snapshot to a JSON file",
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			engine := sim.New(content.Default())
			st, err := db.LoadState(slot, engine)
			if err != nil {
				return err
			}
			doc, err := json.MarshalIndent(st, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, doc, 0644); err != nil {
				return err
			}
			slog.Info("exported", "slot", slot, "file", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "savegame.json", "output file")
	return cmd
}

func importCmd() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON snapshot into the slot",
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			doc, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			engine := sim.New(content.Default())
			st, err := persistence.Migrate(doc, engine)
			if err != nil {
				return fmt.Errorf("imported save failed validation: %w", err)
			}
			if err := db.SaveState(slot, st); err != nil {
				return err
			}
			slog.Info("imported", "slot", slot, "day", st.Day)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "savegame.json", "input file")
	cmd.MarkFlagRequired("in")
	return cmd
}
