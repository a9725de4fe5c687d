package vpngateway

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/auditlog"
	"nathanbeddoewebdev/aznet/internal/azure"
	"nathanbeddoewebdev/aznet/internal/cli"
	"nathanbeddoewebdev/aznet/internal/store"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vpn-gateway",
		Short: "Manage virtual network gateways",
	}

	cmd.AddCommand(UpdateCommand())

	rootCert := &cobra.Command{
		Use:   "root-cert",
		Short: "Manage VPN client root certificates",
	}
	rootCert.AddCommand(RootCertCreateCommand())
	rootCert.AddCommand(RootCertDeleteCommand())
	cmd.AddCommand(rootCert)

	revokedCert := &cobra.Command{
		Use:   "revoked-cert",
		Short: "Manage VPN client revoked certificates",
	}
	revokedCert.AddCommand(RevokedCertCreateCommand())
	revokedCert.AddCommand(RevokedCertDeleteCommand())
	cmd.AddCommand(revokedCert)

	return cmd
}

func addCertFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("gateway-name", "", "Name of the virtual network gateway")
	cmd.Flags().StringP("name", "n", "", "Name of the certificate")
	cmd.Flags().Bool("no-wait", false, "Do not wait for the operation to finish")
	cmd.MarkFlagRequired("gateway-name")
	cmd.MarkFlagRequired("name")
}

func auditVPNGateway(cmd *cobra.Command, resourceType, id, name string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "network",
		ResourceType: resourceType,
		ResourceID:   id,
		ResourceName: name,
	}))
}

func getVPNGateway(cmd *cobra.Command, clients *azure.Clients, resourceGroup, name string) (armnetwork.VirtualNetworkGateway, error) {
	gw, err := clients.VirtualNetworkGateways.Get(cmd.Context(), resourceGroup, name)
	if err != nil {
		return armnetwork.VirtualNetworkGateway{}, fmt.Errorf("failed to get virtual network gateway %q: %w", name, err)
	}
	if gw.Properties == nil {
		gw.Properties = &armnetwork.VirtualNetworkGatewayPropertiesFormat{}
	}
	return gw, nil
}

// saveVPNGateway writes the gateway back. With --no-wait the operation is
// started and recorded instead of awaited; the returned bool reports
// whether the final gateway is available for inspection.
func saveVPNGateway(cmd *cobra.Command, clients *azure.Clients, title, resourceGroup, name string, gw armnetwork.VirtualNetworkGateway) (armnetwork.VirtualNetworkGateway, bool, error) {
	if noWait, _ := cmd.Flags().GetBool("no-wait"); noWait {
		if err := clients.VirtualNetworkGateways.StartCreateOrUpdate(cmd.Context(), resourceGroup, name, gw); err != nil {
			return armnetwork.VirtualNetworkGateway{}, false, fmt.Errorf("failed to update virtual network gateway %q: %w", name, err)
		}
		cli.StartedOperation(cmd, "network", store.ActionCreateOrUpdate, armutil.Value(gw.ID), name)
		return armnetwork.VirtualNetworkGateway{}, false, nil
	}

	var updated armnetwork.VirtualNetworkGateway
	err := cli.Spin(cmd, title, func() error {
		var err error
		updated, err = clients.VirtualNetworkGateways.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, name, gw)
		return err
	})
	if err != nil {
		return armnetwork.VirtualNetworkGateway{}, false, fmt.Errorf("failed to update virtual network gateway %q: %w", name, err)
	}
	if updated.Properties == nil {
		updated.Properties = &armnetwork.VirtualNetworkGatewayPropertiesFormat{}
	}
	return updated, true, nil
}

// certConfig returns the gateway's VPN client configuration, which must
// already carry an address pool before certificates can be attached.
func certConfig(gw armnetwork.VirtualNetworkGateway, gatewayName, certKind string) (*armnetwork.VPNClientConfiguration, error) {
	config := gw.Properties.VPNClientConfiguration
	if config == nil || config.VPNClientAddressPool == nil || len(config.VPNClientAddressPool.AddressPrefixes) == 0 {
		return nil, fmt.Errorf("Must add address prefixes to gateway %q prior to adding a %s.", gatewayName, certKind)
	}
	return config, nil
}

func warnReplaced(cmd *cobra.Command, replaced bool, name string) {
	if replaced {
		fmt.Fprintf(cmd.ErrOrStderr(), "Item '%s' already exists. Replacing with new values.\n", name)
	}
}

func rootCertName(c *armnetwork.VPNClientRootCertificate) *string       { return c.Name }
func revokedCertName(c *armnetwork.VPNClientRevokedCertificate) *string { return c.Name }
