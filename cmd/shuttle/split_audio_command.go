package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"shuttle/internal/logging"
	"shuttle/internal/segment"
)

func newSplitAudioCommand(ctx *commandContext) *cobra.Command {
	var maxSizeMB float64
	var maxDeviation float64
	var outputDir string

	cmd := &cobra.Command{
		Use:   "split-audio <audio>",
		Short: "Split an audio file into size-bounded segments at silence points",
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

			opts := segment.Options{
				FFmpegBinary:        cfg.FFmpegBinary(),
				FFprobeBinary:       cfg.FFprobeBinary(),
				MaxSizeMB:           cfg.Segmentation.MaxSizeMB,
				MaxDeviationSeconds: cfg.Segmentation.MaxDeviationSeconds,
				SilenceNoiseDB:      cfg.Segmentation.SilenceNoiseDB,
				SilenceMinDuration:  cfg.Segmentation.SilenceMinDuration,
			}
			if maxSizeMB > 0 {
				opts.MaxSizeMB = maxSizeMB
			}
			if maxDeviation > 0 {
				opts.MaxDeviationSeconds = maxDeviation
			}

			logger.Info("splitting audio",
				logging.String("path", args[0]),
				logging.String("size_budget", humanize.Bytes(uint64(opts.MaxSizeMB*1024*1024))))

			segmenter := segment.NewSegmenter(opts, logger)
			result, err := segmenter.Split(cmd.Context(), args[0], outputDir)
			if err != nil {
				return err
			}
			return writeJSON(cmd, result)
		},
	}

	cmd.Flags().Float64Var(&maxSizeMB, "max-size", 0, "Maximum segment size in MB (defaults to config)")
	cmd.Flags().Float64Var(&maxDeviation, "max-deviation", 0, "Maximum deviation from even split points in seconds (defaults to config)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for extracted segments (defaults to the source directory)")
	return cmd
}
