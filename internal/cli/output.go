package cli

import (
	"encoding/json"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/config"
)

// OutputFormat resolves the output format for a command: an explicit
// --output flag wins, then the configured default, then table.
func OutputFormat(cmd *cobra.Command) string {
	if f := cmd.Flag("output"); f != nil && f.Changed {
		return f.Value.String()
	}
	if cfg, err := config.Load(); err == nil && cfg.Output != "" {
		return cfg.Output
	}
	return "table"
}

// PrintJSON writes v as indented JSON to the command's stdout.
func PrintJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// NewTable returns a tabwriter matching the layout used by every table
// in the CLI. Callers must Flush.
func NewTable(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
}
