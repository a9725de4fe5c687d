package vpngateway

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
		Short: "Update a virtual network gateway",
		Long: `Update a virtual network gateway in place. Only the provided flags change.

The --sku flag sets the SKU name and tier together. --virtual-network
repoints the gateway at the GatewaySubnet of the given virtual network.
--address-prefixes creates the VPN client configuration when the gateway
does not have one yet.

Example:
  aznet vpn-gateway update -g my-rg -n vnet-gw --sku HighPerformance --enable-bgp true --asn 65010`,
		RunE:         runUpdate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the virtual network gateway")
	cmd.Flags().String("sku", "", "Gateway SKU, sets name and tier together")
	cmd.Flags().String("gateway-type", "", "Gateway type: Vpn or ExpressRoute")
	cmd.Flags().String("vpn-type", "", "VPN routing type: RouteBased or PolicyBased")
	cmd.Flags().String("enable-bgp", "", "Enable BGP: true or false")
	cmd.Flags().String("public-ip-address", "", "Name or ID of the public IP address")
	cmd.Flags().String("virtual-network", "", "Name or ID of the virtual network whose GatewaySubnet the gateway uses")
	cmd.Flags().StringSlice("address-prefixes", nil, "Address prefixes of the VPN client address pool")
	cmd.Flags().Int64("asn", 0, "BGP autonomous system number")
	cmd.Flags().String("bgp-peering-address", "", "BGP peering address of the gateway")
	cmd.Flags().Int32("peer-weight", 0, "Weight added to routes learned over BGP")
	cmd.Flags().StringSlice("tags", nil, "Tags as key=value pairs (\"\" clears)")
	cmd.Flags().Bool("no-wait", false, "Do not wait for the operation to finish")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	gw, err := getVPNGateway(cmd, clients, resourceGroup, name)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("address-prefixes") {
		prefixes, _ := cmd.Flags().GetStringSlice("address-prefixes")
		if gw.Properties.VPNClientConfiguration == nil {
			gw.Properties.VPNClientConfiguration = &armnetwork.VPNClientConfiguration{}
		}
		config := gw.Properties.VPNClientConfiguration
		if config.VPNClientAddressPool == nil {
			config.VPNClientAddressPool = &armnetwork.AddressSpace{}
		}
		config.VPNClientAddressPool.AddressPrefixes = toPtrSlice(prefixes)
	}
	if cmd.Flags().Changed("sku") {
		raw, _ := cmd.Flags().GetString("sku")
		sku, err := armutil.ParseEnum(raw, "--sku", armnetwork.PossibleVirtualNetworkGatewaySKUNameValues())
		if err != nil {
			return err
		}
		if gw.Properties.SKU == nil {
			gw.Properties.SKU = &armnetwork.VirtualNetworkGatewaySKU{}
		}
		gw.Properties.SKU.Name = to.Ptr(sku)
		gw.Properties.SKU.Tier = to.Ptr(armnetwork.VirtualNetworkGatewaySKUTier(sku))
	}
	if cmd.Flags().Changed("gateway-type") {
		raw, _ := cmd.Flags().GetString("gateway-type")
		gatewayType, err := armutil.ParseEnum(raw, "--gateway-type", armnetwork.PossibleVirtualNetworkGatewayTypeValues())
		if err != nil {
			return err
		}
		gw.Properties.GatewayType = to.Ptr(gatewayType)
	}
	if cmd.Flags().Changed("vpn-type") {
		raw, _ := cmd.Flags().GetString("vpn-type")
		vpnType, err := armutil.ParseEnum(raw, "--vpn-type", armnetwork.PossibleVPNTypeValues())
		if err != nil {
			return err
		}
		gw.Properties.VPNType = to.Ptr(vpnType)
	}
	if cmd.Flags().Changed("enable-bgp") {
		enabled, err := cli.FlagBool(cmd, "enable-bgp")
		if err != nil {
			return err
		}
		gw.Properties.EnableBgp = to.Ptr(enabled)
	}
	if cmd.Flags().Changed("public-ip-address") {
		v, _ := cmd.Flags().GetString("public-ip-address")
		ipConfig, err := firstIPConfig(gw, name)
		if err != nil {
			return err
		}
		ipConfig.Properties.PublicIPAddress = &armnetwork.SubResource{
			ID: to.Ptr(armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "publicIPAddresses", v)),
		}
	}
	if cmd.Flags().Changed("virtual-network") {
		v, _ := cmd.Flags().GetString("virtual-network")
		ipConfig, err := firstIPConfig(gw, name)
		if err != nil {
			return err
		}
		subnetID := armutil.GatewaySubnetID(session.SubscriptionID, resourceGroup, v)
		if armutil.IsResourceID(v) {
			subnetID = v + "/subnets/GatewaySubnet"
		}
		ipConfig.Properties.Subnet = &armnetwork.SubResource{ID: to.Ptr(subnetID)}
	}
	if err := applyBgpPeering(cmd, gw.Properties); err != nil {
		return err
	}
	if cmd.Flags().Changed("tags") {
		pairs, _ := cmd.Flags().GetStringSlice("tags")
		gw.Tags = cli.ParseTags(pairs)
	}

	updated, done, err := saveVPNGateway(cmd, clients, fmt.Sprintf("Updating virtual network gateway %s...", name), resourceGroup, name, gw)
	if err != nil {
		return err
	}

	auditVPNGateway(cmd, "virtualNetworkGateway", armutil.Value(gw.ID), name)
	if !done {
		return nil
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated virtual network gateway %s.\n", name)
	return nil
}

// firstIPConfig returns the gateway's primary IP configuration.
func firstIPConfig(gw armnetwork.VirtualNetworkGateway, name string) (*armnetwork.VirtualNetworkGatewayIPConfiguration, error) {
	for _, c := range gw.Properties.IPConfigurations {
		if c != nil {
			if c.Properties == nil {
				c.Properties = &armnetwork.VirtualNetworkGatewayIPConfigurationPropertiesFormat{}
			}
			return c, nil
		}
	}
	return nil, fmt.Errorf("virtual network gateway %q has no IP configurations", name)
}

// applyBgpPeering folds --asn, --peer-weight and --bgp-peering-address into
// the gateway's BGP settings. Existing settings change selectively; new
// settings need at least --asn.
func applyBgpPeering(cmd *cobra.Command, props *armnetwork.VirtualNetworkGatewayPropertiesFormat) error {
	asnChanged := cmd.Flags().Changed("asn")
	addressChanged := cmd.Flags().Changed("bgp-peering-address")
	weightChanged := cmd.Flags().Changed("peer-weight")
	if !asnChanged && !addressChanged && !weightChanged {
		return nil
	}

	asn, _ := cmd.Flags().GetInt64("asn")
	address, _ := cmd.Flags().GetString("bgp-peering-address")
	weight, _ := cmd.Flags().GetInt32("peer-weight")

	switch {
	case props.BgpSettings != nil:
		if asnChanged {
			props.BgpSettings.Asn = to.Ptr(asn)
		}
		if weightChanged {
			props.BgpSettings.PeerWeight = to.Ptr(weight)
		}
		if addressChanged {
			props.BgpSettings.BgpPeeringAddress = to.Ptr(address)
		}
	case asnChanged:
		settings := &armnetwork.BgpSettings{Asn: to.Ptr(asn)}
		if addressChanged {
			settings.BgpPeeringAddress = to.Ptr(address)
		}
		if weightChanged {
			settings.PeerWeight = to.Ptr(weight)
		}
		props.BgpSettings = settings
	default:
		return fmt.Errorf("incorrect usage: --asn ASN [--peer-weight WEIGHT --bgp-peering-address IP]")
	}
	return nil
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
