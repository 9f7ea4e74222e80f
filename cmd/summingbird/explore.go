package main

import (
	"github.com/spf13/cobra"

	"github.com/pmehra7/summingbird/internal/tui"
)

var exploreRunner = tui.Run

func newExploreCmd(root *rootFlags) *cobra.Command {
	opts := sourceOptions{}

	cmd := &cobra.Command{
		Use:   "explore <topology>",
		Short: "Browse the physical plan of a topology interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := root.newLogger(cmd)
			if err != nil {
				return err
			}

			planned, err := loadAndPlan(cmd.Context(), args[0], opts, log)
			if err != nil {
				return err
			}

			if err := exploreRunner(cmd.Context(), planned.document()); err != nil {
				return newCommandError("run explorer", planned.location, err, "Run explore from an interactive terminal, or use 'summingbird plan'.")
			}
			return nil
		},
	}

	addSourceFlags(cmd, &opts)
	return cmd
}
