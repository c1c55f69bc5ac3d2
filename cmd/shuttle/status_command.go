package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"shuttle/internal/manifest"
)

type statusRecord struct {
	WorkDir     string           `json:"work_dir"`
	TotalChunks int              `json:"total_chunks"`
	ChunkSize   int              `json:"chunk_size"`
	SourceFile  string           `json:"source_file"`
	Pending     int              `json:"pending"`
	Done        int              `json:"done"`
	Chunks      []manifest.Chunk `json:"chunks"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status <workdir>",
		Short: "Show the processing state of a work area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			workDir := args[0]
			store := manifest.NewStore(workDir, logger)
			m, err := store.Load()
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, statusRecord{
					WorkDir:     workDir,
					TotalChunks: m.TotalChunks,
					ChunkSize:   m.ChunkSize,
					SourceFile:  m.SourceFile,
					Pending:     m.Pending(),
					Done:        m.Done(),
					Chunks:      m.Chunks,
				})
			}

			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			for _, line := range renderSectionHeader("Work Area Status", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintf(stdout, "Source: %s\n", m.SourceFile)
			fmt.Fprintf(stdout, "Chunk size: %s chars\n", humanize.Comma(int64(m.ChunkSize)))
			fmt.Fprintf(stdout, "Progress: %d/%d done, %d pending\n\n", m.Done(), m.TotalChunks, m.Pending())

			rows := make([][]string, 0, len(m.Chunks))
			totalChars := 0
			for _, chunk := range m.Chunks {
				totalChars += chunk.CharCount
				kind := statusWarn
				if chunk.Status == manifest.StatusDone {
					kind = statusOK
				}
				rows = append(rows, []string{
					strconv.Itoa(chunk.ID),
					colorizeKind(string(chunk.Status), kind, colorize),
					humanize.Comma(int64(chunk.CharCount)),
					chunk.RawPath,
					chunk.ProcessedPath,
				})
			}
			fmt.Fprintln(stdout, renderTable(
				[]string{"ID", "Status", "Chars", "Raw", "Processed"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
			))
			fmt.Fprintf(stdout, "Total: %s chars across %d chunks\n", humanize.Comma(int64(totalChars)), m.TotalChunks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON instead of a table")
	return cmd
}
