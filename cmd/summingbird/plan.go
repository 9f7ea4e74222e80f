package main

import (
	"github.com/spf13/cobra"

	"github.com/pmehra7/summingbird/internal/render"
)

type planOptions struct {
	source  sourceOptions
	output  string
	noColor bool
}

func newPlanCmd(root *rootFlags) *cobra.Command {
	opts := planOptions{}

	cmd := &cobra.Command{
		Use:   "plan <topology>",
		Short: "Print the physical plan of a topology",
		Long: `Plan loads a topology document, validates it and prints the stages the
planner assigns its operators to. With --git the argument is a git reference
of the form URL[#branch]//path/to/topology.yaml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(opts.output)
			if err != nil {
				return newCommandError("render plan", opts.output, err, "Use --output text, json or yaml.")
			}

			log, err := root.newLogger(cmd)
			if err != nil {
				return err
			}

			planned, err := loadAndPlan(cmd.Context(), args[0], opts.source, log)
			if err != nil {
				return err
			}

			textOpts := render.TextOptions{Color: !opts.noColor && supportsColor(cmd.OutOrStdout())}
			if err := render.Write(cmd.OutOrStdout(), format, planned.document(), textOpts); err != nil {
				return newCommandError("render plan", planned.location, err, "Check that the output stream is writable.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", string(render.FormatText), "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	addSourceFlags(cmd, &opts.source)

	return cmd
}

func addSourceFlags(cmd *cobra.Command, opts *sourceOptions) {
	cmd.Flags().BoolVar(&opts.git, "git", false, "Treat the argument as a git reference URL[#branch]//path")
	cmd.Flags().IntVar(&opts.depth, "depth", 1, "Clone depth for --git; 0 fetches full history")
}
