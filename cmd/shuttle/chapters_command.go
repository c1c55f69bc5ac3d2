package main

import (
	"time"

	"github.com/spf13/cobra"

	"shuttle/internal/services/ytdlp"
)

func newChaptersCommand(ctx *commandContext) *cobra.Command {
	var timeoutSeconds int

	cmd := &cobra.Command{
		Use:   "chapters <url>",
		Short: "Fetch video chapter metadata via yt-dlp",
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

			timeout := time.Duration(timeoutSeconds) * time.Second
			result := ytdlp.FetchChapters(cmd.Context(), cfg.YtdlpBinary(), args[0], timeout, logger)
			return writeJSON(cmd, result)
		},
	}

	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "Fetch timeout in seconds (defaults to 30)")
	return cmd
}
