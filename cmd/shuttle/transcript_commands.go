package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shuttle/internal/textutil"
	"shuttle/internal/transcript"
)

// parse-vtt and sanitize-title print plain text: their result is the text
// itself, and downstream scripts consume it directly.

func newParseVTTCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "parse-vtt <file>",
		Short:       "Extract plain transcript text from a WebVTT subtitle file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := transcript.ParseVTT(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newCleanTranscriptCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "clean-transcript <deepgram.json>",
		Short:       "Extract and normalize the transcript from a Deepgram result",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := transcript.CleanDeepgramFile(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, result)
		},
	}
}

func newSanitizeTitleCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "sanitize-title <title>",
		Short:       "Make a title safe to use as a filename",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), textutil.SanitizeFileName(args[0]))
			return nil
		},
	}
}
