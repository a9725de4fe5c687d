package audit

import (
	"fmt"
	"time"

	"nathanbeddoewebdev/aznet/internal/auditlog"
	"nathanbeddoewebdev/aznet/internal/cli"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent audit entries",
		Long: `List recent audit entries stored locally.

Examples:
  aznet audit list
  aznet audit list --limit 50
  aznet audit list --command "aznet group delete"
  aznet audit list --service dns
  aznet audit list --subscription 00000000-0000-0000-0000-000000000000
  aznet audit list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("command", "", "Filter by exact command path")
	cmd.Flags().String("service", "", "Filter by service (e.g. dns, network)")
	cmd.Flags().String("subscription", "", "Filter by subscription ID")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	var filter auditlog.Filter
	filter.Command, _ = cmd.Flags().GetString("command")
	filter.Service, _ = cmd.Flags().GetString("service")
	filter.Subscription, _ = cmd.Flags().GetString("subscription")

	repo, err := auditlog.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	entries, err := repo.Query(filter, limit)
	if err != nil {
		return err
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No audit entries found.")
		return nil
	}

	w := cli.NewTable(cmd)
	fmt.Fprintln(w, "TIME\tCOMMAND\tOUTCOME\tDURATION\tRESOURCE\tDETAIL")
	fmt.Fprintln(w, "----\t-------\t-------\t--------\t--------\t------")
	for _, entry := range entries {
		timeStr := entry.Timestamp.Local().Format("2006-01-02 15:04:05")
		detail := entry.Detail
		if detail == "" {
			detail = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			timeStr,
			entry.Command,
			entry.Outcome,
			formatDuration(entry.DurationMs),
			entry.ResourceLabel(),
			detail,
		)
	}
	return w.Flush()
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
