package group

import (
	"fmt"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resource groups",
		Long: `List resource groups in the subscription.

Examples:
  aznet group list
  aznet group list --filter "tagName eq 'dept'"`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().String("filter", "", "OData filter, e.g. tagName eq 'dept'")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	filter, _ := cmd.Flags().GetString("filter")
	groups, err := clients.ResourceGroups.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list resource groups: %w", err)
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, groups)
	}

	if len(groups) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No resource groups found.")
		return nil
	}

	w := cli.NewTable(cmd)
	fmt.Fprintln(w, "NAME\tLOCATION\tSTATUS")
	fmt.Fprintln(w, "----\t--------\t------")
	for _, g := range groups {
		state := ""
		if g.Properties != nil {
			state = armutil.Value(g.Properties.ProvisioningState)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			armutil.Value(g.Name),
			armutil.Value(g.Location),
			state,
		)
	}
	return w.Flush()
}
