package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "marscli",
		Short: "go-mars — Core War memory array redcode simulator",
	}

	rootCmd.AddCommand(newBattleCmd())
	rootCmd.AddCommand(newTournamentCmd())
	rootCmd.AddCommand(newEvolveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
