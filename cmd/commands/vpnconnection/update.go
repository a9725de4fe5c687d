package vpnconnection

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/azure"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func UpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a VPN connection",
		Long: `Update a VPN connection in place. Only the provided flags change.

Example:
  aznet vpn-connection update -g my-rg -n site-to-site --routing-weight 25 --enable-bgp true`,
		RunE:         runUpdate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the connection")
	cmd.Flags().Int32("routing-weight", 0, "Connection routing weight")
	cmd.Flags().String("shared-key", "", "Shared key for the IPsec tunnel")
	cmd.Flags().String("enable-bgp", "", "Enable BGP: true or false")
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

	conn, err := clients.Connections.Get(cmd.Context(), resourceGroup, name)
	if err != nil {
		return fmt.Errorf("failed to get VPN connection %q: %w", name, err)
	}
	if conn.Properties == nil {
		conn.Properties = &armnetwork.VirtualNetworkGatewayConnectionPropertiesFormat{}
	}

	if cmd.Flags().Changed("routing-weight") {
		weight, _ := cmd.Flags().GetInt32("routing-weight")
		conn.Properties.RoutingWeight = to.Ptr(weight)
	}
	if cmd.Flags().Changed("shared-key") {
		key, _ := cmd.Flags().GetString("shared-key")
		conn.Properties.SharedKey = to.Ptr(key)
	}
	if cmd.Flags().Changed("enable-bgp") {
		enabled, err := cli.FlagBool(cmd, "enable-bgp")
		if err != nil {
			return err
		}
		conn.Properties.EnableBgp = to.Ptr(enabled)
		if enabled {
			if err := refreshGateways(cmd, clients, conn.Properties); err != nil {
				return err
			}
		}
	}
	if cmd.Flags().Changed("tags") {
		pairs, _ := cmd.Flags().GetStringSlice("tags")
		conn.Tags = cli.ParseTags(pairs)
	}

	var updated armnetwork.VirtualNetworkGatewayConnection
	err = cli.Spin(cmd, fmt.Sprintf("Updating VPN connection %s...", name), func() error {
		var err error
		updated, err = clients.Connections.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, name, conn)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update VPN connection %q: %w", name, err)
	}

	auditConnection(cmd, armutil.Value(updated.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated VPN connection %s.\n", name)
	return nil
}

// refreshGateways re-reads the gateway payloads embedded in the connection
// so the PUT carries their current state.
func refreshGateways(cmd *cobra.Command, clients *azure.Clients, props *armnetwork.VirtualNetworkGatewayConnectionPropertiesFormat) error {
	if props.VirtualNetworkGateway1 != nil {
		gw, err := vnetGatewayByID(cmd, clients, armutil.Value(props.VirtualNetworkGateway1.ID))
		if err != nil {
			return err
		}
		props.VirtualNetworkGateway1 = gw
	}
	if props.VirtualNetworkGateway2 != nil {
		gw, err := vnetGatewayByID(cmd, clients, armutil.Value(props.VirtualNetworkGateway2.ID))
		if err != nil {
			return err
		}
		props.VirtualNetworkGateway2 = gw
	}
	if props.LocalNetworkGateway2 != nil {
		rid, err := armutil.Parse(armutil.Value(props.LocalNetworkGateway2.ID))
		if err != nil {
			return err
		}
		gw, err := clients.LocalNetworkGateways.Get(cmd.Context(), rid.ResourceGroupName, rid.Name)
		if err != nil {
			return fmt.Errorf("failed to get local network gateway %q: %w", rid.Name, err)
		}
		props.LocalNetworkGateway2 = &gw
	}
	return nil
}

func vnetGatewayByID(cmd *cobra.Command, clients *azure.Clients, id string) (*armnetwork.VirtualNetworkGateway, error) {
	rid, err := armutil.Parse(id)
	if err != nil {
		return nil, err
	}
	gw, err := clients.VirtualNetworkGateways.Get(cmd.Context(), rid.ResourceGroupName, rid.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get virtual network gateway %q: %w", rid.Name, err)
	}
	return &gw, nil
}
