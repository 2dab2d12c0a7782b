package main

import (
	"fmt"
	"os"

	"github.com/corewars/go-mars/pkg/corefile"
	"github.com/corewars/go-mars/pkg/mars"
	"github.com/spf13/cobra"
)

func newBattleCmd() *cobra.Command {
	var coreSize, processes, cycles int
	var render bool

	cmd := &cobra.Command{
		Use:   "battle [warrior.json...]",
		Short: "Run one battle between two or more warriors",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := mars.Config{
				Warriors:  len(args),
				CoreSize:  coreSize,
				Processes: processes,
				Cycles:    cycles,
			}

			h, err := mars.Allocate(cfg)
			if err != nil {
				return err
			}
			defer h.Free()
			h.ClearCore()

			names := make([]string, len(args))
			starts := make([]int, len(args))
			spacing := coreSize / len(args)
			for i, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				code, name, err := corefile.Load(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("load %s: %w", path, err)
				}
				start := i * spacing
				if err := h.LoadWarrior(start, code); err != nil {
					return fmt.Errorf("load %s: %w", path, err)
				}
				names[i] = name
				starts[i] = start
			}

			alive, deaths, err := h.RunBattle(starts)
			if err != nil {
				return err
			}

			fmt.Printf("cycles budget: %d, alive at end: %d\n", cfg.Cycles, alive)
			died := make(map[int]bool, len(deaths))
			for rank, idx := range deaths {
				fmt.Printf("  %d. %s died (rank %d)\n", idx, names[idx], rank+1)
				died[idx] = true
			}
			for i, name := range names {
				if !died[i] {
					fmt.Printf("  %d. %s survived\n", i, name)
				}
			}

			if render {
				fmt.Println()
				fmt.Println(mars.RenderCoreOwnership(coreSize, starts))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&coreSize, "coresize", 8000, "Core size in cells")
	cmd.Flags().IntVar(&processes, "processes", 8000, "Max processes per warrior")
	cmd.Flags().IntVar(&cycles, "cycles", 80000, "Cycles per warrior before a tie is declared")
	cmd.Flags().BoolVar(&render, "render", false, "Print a colored map of starting core ownership")
	return cmd
}
