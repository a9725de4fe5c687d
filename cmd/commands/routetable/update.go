package routetable

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/auditlog"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func UpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "update",
		Short:        "Update a route table's tags",
		RunE:         runUpdate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the route table")
	cmd.Flags().StringSlice("tags", nil, "Tags as key=value pairs (\"\" clears)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	table, err := clients.RouteTables.Get(cmd.Context(), resourceGroup, name)
	if err != nil {
		return fmt.Errorf("failed to get route table %q: %w", name, err)
	}

	if cmd.Flags().Changed("tags") {
		pairs, _ := cmd.Flags().GetStringSlice("tags")
		table.Tags = cli.ParseTags(pairs)
	}

	var updated armnetwork.RouteTable
	err = cli.Spin(cmd, fmt.Sprintf("Updating route table %s...", name), func() error {
		var err error
		updated, err = clients.RouteTables.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, name, table)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update route table %q: %w", name, err)
	}

	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "network",
		ResourceType: "routeTable",
		ResourceID:   armutil.Value(updated.ID),
		ResourceName: name,
	}))

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated route table %s.\n", name)
	return nil
}
