package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// writeJSON encodes the command's result record as indented JSON on stdout.
// Records carry URLs and shell snippets, so HTML escaping stays off.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
