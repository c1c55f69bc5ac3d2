package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shuttle/internal/pipeline"
	"shuttle/internal/services/transform"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var promptName string
	var extraInstruction string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "process <workdir>",
		Short: "Transform every pending chunk through the configured LLM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			library, err := ctx.promptLibrary()
			if err != nil {
				return err
			}

			workDir := args[0]
			llm := cfg.GetLLM()
			opts := pipeline.Options{
				PromptName:       promptName,
				ExtraInstruction: extraInstruction,
				Model:            llm.Model,
				APIFormat:        llm.APIFormat,
			}

			if dryRun {
				driver := pipeline.NewDriver(workDir, library, nil, logger)
				result, err := driver.DryRun(cmd.Context(), opts)
				if err != nil {
					return err
				}
				return writeJSON(cmd, result)
			}

			var client transform.Client
			client, err = ctx.transformClient()
			if err != nil {
				return err
			}

			var result *pipeline.Result
			if err := withWorkAreaLock(workDir, func() error {
				driver := pipeline.NewDriver(workDir, library, client, logger)
				result, err = driver.Run(cmd.Context(), opts)
				return err
			}); err != nil {
				return err
			}

			if err := writeJSON(cmd, result); err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("processing finished with %d failed chunks and %d warnings", result.FailedCount, len(result.Warnings))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&promptName, "prompt", "", "Prompt template name")
	cmd.Flags().StringVar(&extraInstruction, "extra-instruction", "", "Extra instruction appended to the prompt")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate manifest and prompt without calling the API")
	cmd.MarkFlagRequired("prompt")
	return cmd
}
