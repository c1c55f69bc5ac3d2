package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shuttle/internal/logging"
	"shuttle/internal/manifest"
	"shuttle/internal/textseg"
	"shuttle/internal/workarea"
)

type chunkTextRecord struct {
	Success     bool     `json:"success"`
	TotalChunks int      `json:"total_chunks"`
	ChunkSize   int      `json:"chunk_size"`
	WorkDir     string   `json:"work_dir"`
	Manifest    string   `json:"manifest"`
	Warnings    []string `json:"warnings"`
}

func newChunkTextCommand(ctx *commandContext) *cobra.Command {
	var chunkSize int

	cmd := &cobra.Command{
		Use:   "chunk-text <input> <workdir>",
		Short: "Split transcript text into chunks and write the pipeline manifest",
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

			inputPath, workDir := args[0], args[1]
			size := cfg.Chunking.ChunkSize
			if chunkSize > 0 {
				size = chunkSize
			}

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("read transcript %s: %w", inputPath, err)
			}

			chunks, warnings, err := textseg.Segment(string(data), size)
			if err != nil {
				return err
			}

			if err := workarea.Ensure(workDir); err != nil {
				return err
			}

			store := manifest.NewStore(workDir, logger)
			var m *manifest.Manifest
			if err := withWorkAreaLock(workDir, func() error {
				m, err = store.Create(chunks, size, inputPath)
				return err
			}); err != nil {
				return err
			}

			logger.Info("transcript chunked",
				logging.Int("total_chunks", m.TotalChunks),
				logging.Int("chunk_size", size),
				logging.String("work_dir", workDir))

			if warnings == nil {
				warnings = []string{}
			}
			return writeJSON(cmd, chunkTextRecord{
				Success:     true,
				TotalChunks: m.TotalChunks,
				ChunkSize:   size,
				WorkDir:     workDir,
				Manifest:    store.Path(),
				Warnings:    warnings,
			})
		},
	}

	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Target characters per chunk (defaults to config)")
	return cmd
}
