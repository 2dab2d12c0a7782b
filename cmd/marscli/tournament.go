package main

import (
	"fmt"
	"os"

	"github.com/corewars/go-mars/pkg/corefile"
	"github.com/corewars/go-mars/pkg/mars"
	"github.com/corewars/go-mars/pkg/tournament"
	"github.com/spf13/cobra"
)

func newTournamentCmd() *cobra.Command {
	var coreSize, processes, cycles, workers int
	var verbose bool
	var checkpointPath string

	cmd := &cobra.Command{
		Use:   "tournament [warrior.json...]",
		Short: "Run a round-robin between three or more warriors",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			warriors := make([]tournament.Warrior, 0, len(args))
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				code, name, err := corefile.Load(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("load %s: %w", path, err)
				}
				warriors = append(warriors, tournament.Warrior{Name: name, Code: code})
			}

			var pairings []tournament.Pairing
			for i := 0; i < len(warriors); i++ {
				for j := i + 1; j < len(warriors); j++ {
					pairings = append(pairings, tournament.Pairing{A: warriors[i], B: warriors[j]})
				}
			}

			cfg := mars.Config{Warriors: 2, CoreSize: coreSize, Processes: processes, Cycles: cycles}
			names := make([]string, len(warriors))
			for i, w := range warriors {
				names[i] = w.Name
			}

			var pool *tournament.WorkerPool
			completed := 0
			if checkpointPath != "" {
				if table, comp, _, err := tournament.LoadCheckpoint(checkpointPath); err == nil {
					pool = tournament.NewWorkerPool(workers, cfg, names)
					pool.Table = table
					completed = comp
				}
			}
			if pool == nil {
				pool = tournament.NewWorkerPool(workers, cfg, names)
			}

			remaining := pairings
			if completed > 0 && completed <= len(pairings) {
				remaining = pairings[completed:]
			}
			if err := pool.Run(remaining, verbose); err != nil {
				return err
			}
			if checkpointPath != "" {
				if err := tournament.SaveCheckpoint(checkpointPath, pool.Table, len(pairings), len(pairings)); err != nil {
					return err
				}
			}

			fmt.Println("standings:")
			for i, rec := range pool.Table.Standings() {
				fmt.Printf("  %d. %-20s %d pts (%d-%d-%d)\n", i+1, rec.Name, rec.Score(), rec.Wins, rec.Ties, rec.Losses)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&coreSize, "coresize", 8000, "Core size in cells")
	cmd.Flags().IntVar(&processes, "processes", 8000, "Max processes per warrior")
	cmd.Flags().IntVar(&cycles, "cycles", 80000, "Cycles per warrior before a tie is declared")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of workers (0 = NumCPU)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose progress output")
	cmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "Checkpoint file to resume from and save to")
	return cmd
}
