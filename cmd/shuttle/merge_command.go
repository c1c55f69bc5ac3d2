package main

import (
	"github.com/spf13/cobra"

	"shuttle/internal/merge"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var header string

	cmd := &cobra.Command{
		Use:   "merge <workdir> <output>",
		Short: "Concatenate processed chunks into one document with chapter headings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			workDir, outputFile := args[0], args[1]
			var result *merge.Result
			if err := withWorkAreaLock(workDir, func() error {
				result, err = merge.Merge(workDir, outputFile, header, logger)
				return err
			}); err != nil {
				return err
			}
			return writeJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&header, "header", "", "Header text prepended to the merged document")
	return cmd
}
