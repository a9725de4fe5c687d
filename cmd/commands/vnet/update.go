package vnet

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func UpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a virtual network",
		Long: `Update a virtual network in place. Only the provided flags change.

Examples:
  aznet vnet update -g my-rg -n my-vnet --address-prefixes 10.0.0.0/16 10.1.0.0/16
  aznet vnet update -g my-rg -n my-vnet --dns-servers ""`,
		RunE:         runUpdate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the virtual network")
	cmd.Flags().StringSlice("address-prefixes", nil, "Replace the address space (CIDR list)")
	cmd.Flags().StringSlice("dns-servers", nil, "Replace the custom DNS servers; \"\" reverts to Azure-provided")
	cmd.Flags().StringSlice("tags", nil, "Tags as key=value pairs; \"\" clears all tags")
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

	vnet, err := clients.VirtualNetworks.Get(cmd.Context(), resourceGroup, name)
	if err != nil {
		return fmt.Errorf("failed to get virtual network %q: %w", name, err)
	}
	if vnet.Properties == nil {
		vnet.Properties = &armnetwork.VirtualNetworkPropertiesFormat{}
	}

	if cmd.Flags().Changed("address-prefixes") {
		prefixes, _ := cmd.Flags().GetStringSlice("address-prefixes")
		if vnet.Properties.AddressSpace == nil {
			vnet.Properties.AddressSpace = &armnetwork.AddressSpace{}
		}
		vnet.Properties.AddressSpace.AddressPrefixes = toPtrSlice(prefixes)
	}

	if cmd.Flags().Changed("dns-servers") {
		servers, _ := cmd.Flags().GetStringSlice("dns-servers")
		if isClear(servers) {
			vnet.Properties.DhcpOptions = nil
		} else {
			vnet.Properties.DhcpOptions = &armnetwork.DhcpOptions{DNSServers: toPtrSlice(servers)}
		}
	}

	if cmd.Flags().Changed("tags") {
		pairs, _ := cmd.Flags().GetStringSlice("tags")
		vnet.Tags = cli.ParseTags(pairs)
	}

	var updated armnetwork.VirtualNetwork
	err = cli.Spin(cmd, fmt.Sprintf("Updating virtual network %s...", name), func() error {
		var err error
		updated, err = clients.VirtualNetworks.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, name, vnet)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update virtual network %q: %w", name, err)
	}

	auditVnet(cmd, "virtualNetwork", armutil.Value(updated.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated virtual network %s.\n", name)
	return nil
}

// isClear reports whether a repeatable flag was passed a single empty
// string, the convention for clearing a list or reference.
func isClear(values []string) bool {
	return len(values) == 0 || (len(values) == 1 && values[0] == "")
}

func toPtrSlice(values []string) []*string {
	out := make([]*string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		out = append(out, to.Ptr(v))
	}
	return out
}
