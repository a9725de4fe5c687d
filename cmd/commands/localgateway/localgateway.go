package localgateway

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/auditlog"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local-gateway",
		Short: "Manage local network gateways",
	}

	cmd.AddCommand(UpdateCommand())

	return cmd
}

func UpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a local network gateway",
		Long: `Update a local network gateway in place. Only the provided flags change.

Example:
  aznet local-gateway update -g my-rg -n onprem-gw --gateway-ip-address 203.0.113.10 \
    --local-address-prefixes 10.10.0.0/16`,
		RunE:         runUpdate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the local network gateway")
	cmd.Flags().String("gateway-ip-address", "", "Public IP address of the on-premises VPN device")
	cmd.Flags().StringSlice("local-address-prefixes", nil, "Address prefixes of the on-premises network")
	cmd.Flags().Int64("asn", 0, "BGP autonomous system number")
	cmd.Flags().String("bgp-peering-address", "", "BGP peering address of the on-premises VPN device")
	cmd.Flags().Int32("peer-weight", 0, "Weight added to routes learned over BGP")
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

	gw, err := clients.LocalNetworkGateways.Get(cmd.Context(), resourceGroup, name)
	if err != nil {
		return fmt.Errorf("failed to get local network gateway %q: %w", name, err)
	}
	if gw.Properties == nil {
		gw.Properties = &armnetwork.LocalNetworkGatewayPropertiesFormat{}
	}

	if cmd.Flags().Changed("gateway-ip-address") {
		v, _ := cmd.Flags().GetString("gateway-ip-address")
		gw.Properties.GatewayIPAddress = to.Ptr(v)
	}
	if cmd.Flags().Changed("local-address-prefixes") {
		prefixes, _ := cmd.Flags().GetStringSlice("local-address-prefixes")
		if gw.Properties.LocalNetworkAddressSpace == nil {
			gw.Properties.LocalNetworkAddressSpace = &armnetwork.AddressSpace{}
		}
		gw.Properties.LocalNetworkAddressSpace.AddressPrefixes = toPtrSlice(prefixes)
	}
	if err := applyBgpPeering(cmd, gw.Properties); err != nil {
		return err
	}
	if cmd.Flags().Changed("tags") {
		pairs, _ := cmd.Flags().GetStringSlice("tags")
		gw.Tags = cli.ParseTags(pairs)
	}

	var updated armnetwork.LocalNetworkGateway
	err = cli.Spin(cmd, fmt.Sprintf("Updating local network gateway %s...", name), func() error {
		var err error
		updated, err = clients.LocalNetworkGateways.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, name, gw)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update local network gateway %q: %w", name, err)
	}

	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "network",
		ResourceType: "localNetworkGateway",
		ResourceID:   armutil.Value(updated.ID),
		ResourceName: name,
	}))

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated local network gateway %s.\n", name)
	return nil
}

// applyBgpPeering folds --asn, --peer-weight and --bgp-peering-address into
// the gateway's BGP settings. Existing settings change selectively; new
// settings need at least --asn.
func applyBgpPeering(cmd *cobra.Command, props *armnetwork.LocalNetworkGatewayPropertiesFormat) error {
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
		if weightChanged {
			settings.PeerWeight = to.Ptr(weight)
		}
		if addressChanged {
			settings.BgpPeeringAddress = to.Ptr(address)
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
