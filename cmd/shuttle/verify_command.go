package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shuttle/internal/assemble"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var rawPath string
	var bilingual bool

	cmd := &cobra.Command{
		Use:   "verify <optimized>",
		Short: "Run structural quality checks over an optimized document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := assemble.Verify(args[0], rawPath, bilingual)
			if err := writeJSON(cmd, result); err != nil {
				return err
			}
			if !result.Passed {
				return fmt.Errorf("verification failed with %d warnings", len(result.Warnings))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rawPath, "raw-text", "", "Raw transcript to compare sizes against")
	cmd.Flags().BoolVar(&bilingual, "bilingual", false, "Apply bilingual balance and size expectations")
	return cmd
}
