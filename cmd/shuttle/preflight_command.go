package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shuttle/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Check external tools, directories, and API credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			hardFailures := preflight.HardFailures(results)

			if jsonOutput {
				record := struct {
					Passed       bool               `json:"passed"`
					HardFailures int                `json:"hard_failures"`
					Checks       []preflight.Result `json:"checks"`
				}{
					Passed:       hardFailures == 0,
					HardFailures: hardFailures,
					Checks:       results,
				}
				if err := writeJSON(cmd, record); err != nil {
					return err
				}
			} else {
				stdout := cmd.OutOrStdout()
				colorize := shouldColorize(stdout)

				for _, line := range renderSectionHeader("Preflight Checks", colorize) {
					fmt.Fprintln(stdout, line)
				}

				rows := make([][]string, 0, len(results))
				for _, result := range results {
					kind := statusOK
					label := "OK"
					switch {
					case !result.Passed && result.Optional:
						kind, label = statusWarn, "WARN"
					case !result.Passed:
						kind, label = statusError, "FAIL"
					}
					rows = append(rows, []string{
						result.Name,
						colorizeKind(label, kind, colorize),
						result.Detail,
					})
				}
				fmt.Fprintln(stdout, renderTable(
					[]string{"Check", "Result", "Detail"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
			}

			if hardFailures > 0 {
				return fmt.Errorf("%d preflight checks failed", hardFailures)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON instead of a table")
	return cmd
}
