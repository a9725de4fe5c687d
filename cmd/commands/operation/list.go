package operation

import (
	"fmt"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/cli"
	"nathanbeddoewebdev/aznet/internal/store"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded operations",
		Long: `List recorded operations. Shows pending operations by default.

Examples:
  aznet operation list
  aznet operation list --all`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("all", false, "Include finished operations")
	cmd.Flags().Int("limit", 25, "Number of entries to display with --all")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := store.Open()
	if err != nil {
		return err
	}
	defer st.Close()

	all, _ := cmd.Flags().GetBool("all")
	limit, _ := cmd.Flags().GetInt("limit")

	var records []store.OperationRecord
	if all {
		records, err = st.ListRecent(limit)
	} else {
		records, err = st.ListPending()
	}
	if err != nil {
		return err
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, records)
	}

	if len(records) == 0 {
		if all {
			fmt.Fprintln(cmd.OutOrStdout(), "No operations recorded.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No pending operations.")
		}
		return nil
	}

	w := cli.NewTable(cmd)
	fmt.Fprintln(w, "ID\tRESOURCE\tACTION\tSERVICE\tSTATUS\tSTATE\tSTARTED")
	fmt.Fprintln(w, "--\t--------\t------\t-------\t------\t-----\t-------")
	for _, r := range records {
		state := r.LastState
		if state == "" {
			state = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.ResourceName,
			r.Action,
			r.Service,
			r.Status,
			state,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}
