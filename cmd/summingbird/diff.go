package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pmehra7/summingbird/internal/render"
	"github.com/pmehra7/summingbird/pkg/diff"
)

func newDiffCmd(root *rootFlags) *cobra.Command {
	opts := sourceOptions{}

	cmd := &cobra.Command{
		Use:   "diff <old-topology> <new-topology>",
		Short: "Compare the physical plans of two topologies",
		Long: `Diff plans both topologies and prints a line diff of their text
renderings. Plans with the same fingerprint are reported as identical.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := root.newLogger(cmd)
			if err != nil {
				return err
			}

			before, err := loadAndPlan(cmd.Context(), args[0], opts, log)
			if err != nil {
				return err
			}
			after, err := loadAndPlan(cmd.Context(), args[1], opts, log)
			if err != nil {
				return err
			}

			oldDoc, newDoc := before.document(), after.document()
			out := cmd.OutOrStdout()
			if oldDoc.Fingerprint == newDoc.Fingerprint {
				fmt.Fprintf(out, "plans are identical (fingerprint %s)\n", newDoc.Fingerprint)
				return nil
			}

			var oldText, newText bytes.Buffer
			if err := render.Text(&oldText, oldDoc, render.TextOptions{}); err != nil {
				return newCommandError("render plan", before.location, err, suggestionFor(err))
			}
			if err := render.Text(&newText, newDoc, render.TextOptions{}); err != nil {
				return newCommandError("render plan", after.location, err, suggestionFor(err))
			}

			fmt.Fprint(out, diff.Lines(oldText.Bytes(), newText.Bytes(), args[0], args[1]))
			return nil
		},
	}

	addSourceFlags(cmd, &opts)

	return cmd
}
