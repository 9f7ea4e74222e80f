package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootFlags) *cobra.Command {
	opts := sourceOptions{}

	cmd := &cobra.Command{
		Use:   "validate <topology>",
		Short: "Check that a topology is well formed and can be planned",
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

			out := cmd.OutOrStdout()
			mark, warn := "OK", "WARN"
			if supportsUnicode(out) {
				mark, warn = "✓", "⚠"
			}

			fmt.Fprintf(out, "%s %s is valid: %d operators in %d stages\n",
				mark, planned.topology.Name, len(planned.graph.ByID), planned.plan.Size())
			for _, id := range planned.graph.Unreachable {
				fmt.Fprintf(out, "%s operator %q is not reachable from terminal %q\n", warn, id, planned.topology.Terminal)
			}
			return nil
		},
	}

	addSourceFlags(cmd, &opts)
	return cmd
}
