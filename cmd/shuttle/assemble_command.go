package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shuttle/internal/assemble"
	"shuttle/internal/logging"
)

func newAssembleCommand(ctx *commandContext) *cobra.Command {
	var meta assemble.Metadata
	var publish bool

	cmd := &cobra.Command{
		Use:   "assemble <optimized> <output>",
		Short: "Build the final markdown document with frontmatter and footer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			result, err := assemble.Assemble(args[0], args[1], meta)
			if err != nil {
				return err
			}

			if publish {
				if strings.TrimSpace(cfg.Paths.OutputDir) == "" {
					return fmt.Errorf("publish requested but paths.output_dir is not configured")
				}
				published, err := assemble.Publish(result.OutputFile, cfg.Paths.OutputDir)
				if err != nil {
					return err
				}
				result.PublishedFile = published
				logger.Info("document published",
					logging.String("path", published))
			}

			return writeJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&meta.Title, "title", "", "Document title (defaults to one derived from the output filename)")
	cmd.Flags().StringVar(&meta.Source, "source", "", "Video source URL")
	cmd.Flags().StringVar(&meta.Channel, "channel", "", "Channel name")
	cmd.Flags().StringVar(&meta.Date, "date", "", "Upload date")
	cmd.Flags().StringVar(&meta.Created, "created", "", "Creation timestamp for the frontmatter")
	cmd.Flags().IntVar(&meta.DurationSeconds, "duration", 0, "Video duration in seconds")
	cmd.Flags().StringVar(&meta.TranscriptSource, "transcript-source", "", "Where the transcript came from")
	cmd.Flags().BoolVar(&meta.Bilingual, "bilingual", false, "Mark the document as bilingual")
	cmd.Flags().BoolVar(&publish, "publish", false, "Copy the assembled document into the configured output directory")
	return cmd
}
