package expressroute

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
		Short: "Create a BGP peering on a circuit",
		Long: `Create a BGP peering on an ExpressRoute circuit. The advertised public
prefixes, customer ASN and routing registry apply only to MicrosoftPeering,
which needs a Premium circuit.

Example:
  aznet express-route peering create -g my-rg --circuit-name er-circuit \
    --peering-type AzurePrivatePeering --peer-asn 65010 --vlan-id 100 \
    --primary-peer-subnet 10.0.0.0/30 --secondary-peer-subnet 10.0.0.4/30`,
		RunE:         runPeeringCreate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("circuit-name", "", "Name of the circuit")
	cmd.Flags().String("peering-type", "", "AzurePrivatePeering, AzurePublicPeering or MicrosoftPeering")
	cmd.Flags().Int64("peer-asn", 0, "Autonomous system number of the peer")
	cmd.Flags().Int32("vlan-id", 0, "VLAN identifier of the peering")
	cmd.Flags().String("primary-peer-subnet", "", "/30 subnet of the primary interface")
	cmd.Flags().String("secondary-peer-subnet", "", "/30 subnet of the secondary interface")
	cmd.Flags().String("shared-key", "", "Key for the MD5 hash of the BGP session")
	cmd.Flags().StringSlice("advertised-public-prefixes", nil, "Prefixes advertised over Microsoft peering")
	cmd.Flags().Int32("customer-asn", 0, "Autonomous system number of the customer")
	cmd.Flags().String("routing-registry-name", "", "Internet routing registry holding the prefixes")
	cmd.MarkFlagRequired("circuit-name")
	cmd.MarkFlagRequired("peering-type")
	cmd.MarkFlagRequired("peer-asn")
	cmd.MarkFlagRequired("vlan-id")
	cmd.MarkFlagRequired("primary-peer-subnet")
	cmd.MarkFlagRequired("secondary-peer-subnet")

	return cmd
}

func runPeeringCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	circuitName, _ := cmd.Flags().GetString("circuit-name")
	rawType, _ := cmd.Flags().GetString("peering-type")
	peeringType, err := armutil.ParseEnum(rawType, "--peering-type", armnetwork.PossibleExpressRoutePeeringTypeValues())
	if err != nil {
		return err
	}
	peerASN, _ := cmd.Flags().GetInt64("peer-asn")
	vlanID, _ := cmd.Flags().GetInt32("vlan-id")
	primary, _ := cmd.Flags().GetString("primary-peer-subnet")
	secondary, _ := cmd.Flags().GetString("secondary-peer-subnet")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	circuit, err := clients.ExpressRouteCircuits.Get(cmd.Context(), resourceGroup, circuitName)
	if err != nil {
		return fmt.Errorf("failed to get ExpressRoute circuit %q: %w", circuitName, err)
	}

	if peeringType == armnetwork.ExpressRoutePeeringTypeMicrosoftPeering &&
		circuit.SKU != nil && circuit.SKU.Tier != nil &&
		*circuit.SKU.Tier == armnetwork.ExpressRouteCircuitSKUTierStandard {
		return fmt.Errorf("Microsoft Peering is not supported for a Standard circuit")
	}
	if circuit.Properties != nil {
		for _, p := range circuit.Properties.Peerings {
			if p == nil || p.Properties == nil || p.Properties.VlanID == nil {
				continue
			}
			if *p.Properties.VlanID == vlanID {
				return fmt.Errorf("VLAN ID %d already in use by peering %q", vlanID, armutil.Value(p.Name))
			}
		}
	}

	props := &armnetwork.ExpressRouteCircuitPeeringPropertiesFormat{
		PeeringType:                to.Ptr(peeringType),
		PeerASN:                    to.Ptr(peerASN),
		VlanID:                     to.Ptr(vlanID),
		PrimaryPeerAddressPrefix:   to.Ptr(primary),
		SecondaryPeerAddressPrefix: to.Ptr(secondary),
	}
	if key, _ := cmd.Flags().GetString("shared-key"); key != "" {
		props.SharedKey = to.Ptr(key)
	}
	if peeringType == armnetwork.ExpressRoutePeeringTypeMicrosoftPeering {
		config := &armnetwork.ExpressRouteCircuitPeeringConfig{}
		if prefixes, _ := cmd.Flags().GetStringSlice("advertised-public-prefixes"); len(prefixes) > 0 {
			config.AdvertisedPublicPrefixes = toPtrSlice(prefixes)
		}
		if cmd.Flags().Changed("customer-asn") {
			asn, _ := cmd.Flags().GetInt32("customer-asn")
			config.CustomerASN = to.Ptr(asn)
		}
		if registry, _ := cmd.Flags().GetString("routing-registry-name"); registry != "" {
			config.RoutingRegistryName = to.Ptr(registry)
		}
		props.MicrosoftPeeringConfig = config
	}

	name := string(peeringType)
	peering := armnetwork.ExpressRouteCircuitPeering{
		Name:       to.Ptr(name),
		Properties: props,
	}

	var created armnetwork.ExpressRouteCircuitPeering
	err = cli.Spin(cmd, fmt.Sprintf("Creating peering %s...", name), func() error {
		var err error
		created, err = clients.ExpressRoutePeerings.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, circuitName, name, peering)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create peering %q: %w", name, err)
	}

	auditCircuit(cmd, "expressRouteCircuitPeering", armutil.Value(created.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created peering %s on %s.\n", name, circuitName)
	return nil
}

func PeeringUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "update",
		Short:        "Update a BGP peering",
		RunE:         runPeeringUpdate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("circuit-name", "", "Name of the circuit")
	cmd.Flags().StringP("name", "n", "", "Name of the peering")
	cmd.Flags().Int64("peer-asn", 0, "Autonomous system number of the peer")
	cmd.Flags().Int32("vlan-id", 0, "VLAN identifier of the peering")
	cmd.Flags().String("primary-peer-subnet", "", "/30 subnet of the primary interface")
	cmd.Flags().String("secondary-peer-subnet", "", "/30 subnet of the secondary interface")
	cmd.Flags().String("shared-key", "", "Key for the MD5 hash of the BGP session")
	cmd.Flags().StringSlice("advertised-public-prefixes", nil, "Prefixes advertised over Microsoft peering")
	cmd.Flags().Int32("customer-asn", 0, "Autonomous system number of the customer")
	cmd.Flags().String("routing-registry-name", "", "Internet routing registry holding the prefixes")
	cmd.MarkFlagRequired("circuit-name")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runPeeringUpdate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	circuitName, _ := cmd.Flags().GetString("circuit-name")
	name, _ := cmd.Flags().GetString("name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	peering, err := clients.ExpressRoutePeerings.Get(cmd.Context(), resourceGroup, circuitName, name)
	if err != nil {
		return fmt.Errorf("failed to get peering %q: %w", name, err)
	}
	if peering.Properties == nil {
		peering.Properties = &armnetwork.ExpressRouteCircuitPeeringPropertiesFormat{}
	}
	p := peering.Properties

	if cmd.Flags().Changed("peer-asn") {
		asn, _ := cmd.Flags().GetInt64("peer-asn")
		p.PeerASN = to.Ptr(asn)
	}
	if cmd.Flags().Changed("vlan-id") {
		vlan, _ := cmd.Flags().GetInt32("vlan-id")
		p.VlanID = to.Ptr(vlan)
	}
	if cmd.Flags().Changed("primary-peer-subnet") {
		v, _ := cmd.Flags().GetString("primary-peer-subnet")
		p.PrimaryPeerAddressPrefix = to.Ptr(v)
	}
	if cmd.Flags().Changed("secondary-peer-subnet") {
		v, _ := cmd.Flags().GetString("secondary-peer-subnet")
		p.SecondaryPeerAddressPrefix = to.Ptr(v)
	}
	if cmd.Flags().Changed("shared-key") {
		v, _ := cmd.Flags().GetString("shared-key")
		p.SharedKey = to.Ptr(v)
	}

	prefixes := cmd.Flags().Changed("advertised-public-prefixes")
	customerASN := cmd.Flags().Changed("customer-asn")
	registry := cmd.Flags().Changed("routing-registry-name")
	if prefixes || customerASN || registry {
		if p.MicrosoftPeeringConfig == nil {
			return fmt.Errorf("--advertised-public-prefixes, --customer-asn and --routing-registry-name apply only to MicrosoftPeering")
		}
		if prefixes {
			v, _ := cmd.Flags().GetStringSlice("advertised-public-prefixes")
			p.MicrosoftPeeringConfig.AdvertisedPublicPrefixes = toPtrSlice(v)
		}
		if customerASN {
			asn, _ := cmd.Flags().GetInt32("customer-asn")
			p.MicrosoftPeeringConfig.CustomerASN = to.Ptr(asn)
		}
		if registry {
			v, _ := cmd.Flags().GetString("routing-registry-name")
			p.MicrosoftPeeringConfig.RoutingRegistryName = to.Ptr(v)
		}
	}

	var updated armnetwork.ExpressRouteCircuitPeering
	err = cli.Spin(cmd, fmt.Sprintf("Updating peering %s...", name), func() error {
		var err error
		updated, err = clients.ExpressRoutePeerings.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, circuitName, name, peering)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update peering %q: %w", name, err)
	}

	auditCircuit(cmd, "expressRouteCircuitPeering", armutil.Value(updated.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated peering %s.\n", name)
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
