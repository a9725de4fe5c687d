package group

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/auditlog"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a resource group",
		Long: `Create a resource group in the given location.

Examples:
  aznet group create -n my-rg -l westus2
  aznet group create -n my-rg -l westus2 --tags dept=ops env=prod`,
		RunE:         runCreate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("name", "n", "", "Name of the resource group")
	cmd.Flags().StringP("location", "l", "", "Location, e.g. westus2 (falls back to configured default)")
	cmd.Flags().StringSlice("tags", nil, "Tags as key=value pairs")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	location, err := cli.Location(cmd)
	if err != nil {
		return err
	}

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	group := armresources.ResourceGroup{
		Location: to.Ptr(location),
	}
	if pairs, _ := cmd.Flags().GetStringSlice("tags"); len(pairs) > 0 {
		group.Tags = cli.ParseTags(pairs)
	}

	created, err := clients.ResourceGroups.CreateOrUpdate(cmd.Context(), name, group)
	if err != nil {
		return fmt.Errorf("failed to create resource group %q: %w", name, err)
	}

	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "resources",
		ResourceType: "resourceGroup",
		ResourceID:   armutil.Value(created.ID),
		ResourceName: name,
	}))

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created resource group %s in %s.\n", name, location)
	return nil
}
