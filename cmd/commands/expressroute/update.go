package expressroute

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
		Short: "Update an ExpressRoute circuit",
		Long: `Update an ExpressRoute circuit in place. Only the provided flags change.

Example:
  aznet express-route update -g my-rg -n er-circuit --bandwidth 1000 --sku-tier Premium`,
		RunE:         runUpdate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the circuit")
	cmd.Flags().Int32("bandwidth", 0, "Bandwidth in Mbps")
	cmd.Flags().String("peering-location", "", "Provider peering location")
	cmd.Flags().String("provider", "", "Connectivity provider name")
	cmd.Flags().String("sku-tier", "", "SKU tier: Standard or Premium")
	cmd.Flags().String("sku-family", "", "SKU family: MeteredData or UnlimitedData")
	cmd.Flags().String("allow-classic-operations", "", "Allow classic operations: true or false")
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

	circuit, err := clients.ExpressRouteCircuits.Get(cmd.Context(), resourceGroup, name)
	if err != nil {
		return fmt.Errorf("failed to get ExpressRoute circuit %q: %w", name, err)
	}
	if circuit.Properties == nil {
		circuit.Properties = &armnetwork.ExpressRouteCircuitPropertiesFormat{}
	}

	bandwidth := cmd.Flags().Changed("bandwidth")
	peeringLocation := cmd.Flags().Changed("peering-location")
	provider := cmd.Flags().Changed("provider")
	if bandwidth || peeringLocation || provider {
		if circuit.Properties.ServiceProviderProperties == nil {
			circuit.Properties.ServiceProviderProperties = &armnetwork.ExpressRouteCircuitServiceProviderProperties{}
		}
		sp := circuit.Properties.ServiceProviderProperties
		if bandwidth {
			mbps, _ := cmd.Flags().GetInt32("bandwidth")
			sp.BandwidthInMbps = to.Ptr(mbps)
		}
		if peeringLocation {
			v, _ := cmd.Flags().GetString("peering-location")
			sp.PeeringLocation = to.Ptr(v)
		}
		if provider {
			v, _ := cmd.Flags().GetString("provider")
			sp.ServiceProviderName = to.Ptr(v)
		}
	}
	if cmd.Flags().Changed("sku-tier") || cmd.Flags().Changed("sku-family") {
		if circuit.SKU == nil {
			circuit.SKU = &armnetwork.ExpressRouteCircuitSKU{}
		}
		if cmd.Flags().Changed("sku-tier") {
			raw, _ := cmd.Flags().GetString("sku-tier")
			tier, err := armutil.ParseEnum(raw, "--sku-tier", armnetwork.PossibleExpressRouteCircuitSKUTierValues())
			if err != nil {
				return err
			}
			circuit.SKU.Tier = to.Ptr(tier)
		}
		if cmd.Flags().Changed("sku-family") {
			raw, _ := cmd.Flags().GetString("sku-family")
			family, err := armutil.ParseEnum(raw, "--sku-family", armnetwork.PossibleExpressRouteCircuitSKUFamilyValues())
			if err != nil {
				return err
			}
			circuit.SKU.Family = to.Ptr(family)
		}
		if circuit.SKU.Tier != nil && circuit.SKU.Family != nil {
			circuit.SKU.Name = to.Ptr(string(*circuit.SKU.Tier) + "_" + string(*circuit.SKU.Family))
		}
	}
	if cmd.Flags().Changed("allow-classic-operations") {
		allowed, err := cli.FlagBool(cmd, "allow-classic-operations")
		if err != nil {
			return err
		}
		circuit.Properties.AllowClassicOperations = to.Ptr(allowed)
	}
	if cmd.Flags().Changed("tags") {
		pairs, _ := cmd.Flags().GetStringSlice("tags")
		circuit.Tags = cli.ParseTags(pairs)
	}

	var updated armnetwork.ExpressRouteCircuit
	err = cli.Spin(cmd, fmt.Sprintf("Updating ExpressRoute circuit %s...", name), func() error {
		var err error
		updated, err = clients.ExpressRouteCircuits.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, name, circuit)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update ExpressRoute circuit %q: %w", name, err)
	}

	auditCircuit(cmd, "expressRouteCircuit", armutil.Value(updated.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated ExpressRoute circuit %s.\n", name)
	return nil
}
