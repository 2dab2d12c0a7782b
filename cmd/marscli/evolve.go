package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/corewars/go-mars/pkg/corefile"
	"github.com/corewars/go-mars/pkg/evolve"
	"github.com/corewars/go-mars/pkg/mars"
	"github.com/spf13/cobra"
)

func newEvolveCmd() *cobra.Command {
	var coreSize, processes, cycles int
	var chains, iterations, maxLen int
	var decay float64
	var verbose bool
	var output string

	cmd := &cobra.Command{
		Use:   "evolve",
		Short: "Search for an effective warrior by stochastic mutation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if chains <= 0 {
				chains = runtime.NumCPU()
			}

			cfg := evolve.Config{
				Core:       mars.Config{Warriors: 2, CoreSize: coreSize, Processes: processes, Cycles: cycles},
				Seed:       evolve.Imp().Code,
				Chains:     chains,
				Iterations: iterations,
				Decay:      decay,
				MaxLen:     maxLen,
				Panel:      []evolve.Reference{evolve.Imp(), evolve.Dwarf(coreSize)},
				Verbose:    verbose,
			}

			results := evolve.Run(cfg)

			best := results[0]
			for _, r := range results[1:] {
				if r.Cost < best.Cost {
					best = r
				}
			}

			fmt.Printf("best cost: %.4f (%d instructions)\n", best.Cost, len(best.Code))
			for i, instr := range best.Code {
				fmt.Printf("  %2d: %s\n", i, instr.String())
			}

			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				return corefile.Save(f, "evolved", best.Code)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&coreSize, "coresize", 8000, "Core size in cells")
	cmd.Flags().IntVar(&processes, "processes", 8000, "Max processes per warrior")
	cmd.Flags().IntVar(&cycles, "cycles", 80000, "Cycles per warrior before a tie is declared")
	cmd.Flags().IntVar(&chains, "chains", 0, "Number of MCMC chains (0 = NumCPU)")
	cmd.Flags().IntVar(&iterations, "iterations", 10_000, "Iterations per chain")
	cmd.Flags().Float64Var(&decay, "decay", 0.999, "Temperature decay factor")
	cmd.Flags().IntVar(&maxLen, "max-len", 64, "Maximum warrior length")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose progress output")
	cmd.Flags().StringVar(&output, "output", "", "Output warrior JSON file path")
	return cmd
}
