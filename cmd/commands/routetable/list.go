package routetable

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List route tables",
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Limit to a resource group")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	var tables []*armnetwork.RouteTable
	if rg, _ := cmd.Flags().GetString("resource-group"); rg != "" {
		tables, err = clients.RouteTables.List(cmd.Context(), rg)
	} else {
		tables, err = clients.RouteTables.ListAll(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list route tables: %w", err)
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, tables)
	}

	if len(tables) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No route tables found.")
		return nil
	}

	w := cli.NewTable(cmd)
	fmt.Fprintln(w, "NAME\tRESOURCE GROUP\tLOCATION\tROUTES\tSUBNETS")
	fmt.Fprintln(w, "----\t--------------\t--------\t------\t-------")
	for _, t := range tables {
		routes, subnets := 0, 0
		if t.Properties != nil {
			routes = len(t.Properties.Routes)
			subnets = len(t.Properties.Subnets)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			armutil.Value(t.Name),
			armutil.ResourceGroupOf(armutil.Value(t.ID)),
			armutil.Value(t.Location),
			routes,
			subnets,
		)
	}
	return w.Flush()
}
