package vnet

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func PeeringCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Peer a virtual network with another",
		Long: `Peer a virtual network with another.

The remote network accepts a name in the same subscription and resource
group, or a full resource ID for anything else.

Example:
  aznet vnet peering create -g my-rg --vnet-name vnet-a -n to-b --remote-vnet vnet-b --allow-vnet-access`,
		RunE:         runPeeringCreate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("vnet-name", "", "Name of the local virtual network")
	cmd.Flags().StringP("name", "n", "", "Name of the peering")
	cmd.Flags().String("remote-vnet", "", "Name or ID of the remote virtual network")
	cmd.Flags().Bool("allow-vnet-access", false, "Allow access from the remote network")
	cmd.Flags().Bool("allow-forwarded-traffic", false, "Allow forwarded traffic from the remote network")
	cmd.Flags().Bool("allow-gateway-transit", false, "Allow the remote network to use this network's gateway")
	cmd.Flags().Bool("use-remote-gateways", false, "Use the remote network's gateway")
	cmd.MarkFlagRequired("vnet-name")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("remote-vnet")

	return cmd
}

func runPeeringCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	vnetName, _ := cmd.Flags().GetString("vnet-name")
	name, _ := cmd.Flags().GetString("name")
	remote, _ := cmd.Flags().GetString("remote-vnet")

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	remoteID := remote
	if !armutil.IsResourceID(remote) {
		remoteID = armutil.VirtualNetworkID(session.SubscriptionID, resourceGroup, remote)
	}

	allowAccess, _ := cmd.Flags().GetBool("allow-vnet-access")
	allowForwarded, _ := cmd.Flags().GetBool("allow-forwarded-traffic")
	allowTransit, _ := cmd.Flags().GetBool("allow-gateway-transit")
	useRemote, _ := cmd.Flags().GetBool("use-remote-gateways")

	peering := armnetwork.VirtualNetworkPeering{
		Name: to.Ptr(name),
		Properties: &armnetwork.VirtualNetworkPeeringPropertiesFormat{
			RemoteVirtualNetwork:      &armnetwork.SubResource{ID: to.Ptr(remoteID)},
			AllowVirtualNetworkAccess: to.Ptr(allowAccess),
			AllowForwardedTraffic:     to.Ptr(allowForwarded),
			AllowGatewayTransit:       to.Ptr(allowTransit),
			UseRemoteGateways:         to.Ptr(useRemote),
		},
	}

	var created armnetwork.VirtualNetworkPeering
	err = cli.Spin(cmd, fmt.Sprintf("Creating peering %s...", name), func() error {
		var err error
		created, err = clients.VirtualNetworkPeerings.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, vnetName, name, peering)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create peering %q: %w", name, err)
	}

	auditVnet(cmd, "virtualNetworkPeering", armutil.Value(created.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created peering %s from %s to %s.\n", name, vnetName, armutil.NameOf(remoteID))
	return nil
}
