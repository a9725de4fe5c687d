package expressroute

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List ExpressRoute circuits",
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Limit to a resource group")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	var circuits []*armnetwork.ExpressRouteCircuit
	if rg, _ := cmd.Flags().GetString("resource-group"); rg != "" {
		circuits, err = clients.ExpressRouteCircuits.List(cmd.Context(), rg)
	} else {
		circuits, err = clients.ExpressRouteCircuits.ListAll(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list ExpressRoute circuits: %w", err)
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, circuits)
	}

	if len(circuits) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No ExpressRoute circuits found.")
		return nil
	}

	w := cli.NewTable(cmd)
	fmt.Fprintln(w, "NAME\tRESOURCE GROUP\tLOCATION\tPROVIDER\tBANDWIDTH\tTIER\tPEERINGS")
	fmt.Fprintln(w, "----\t--------------\t--------\t--------\t---------\t----\t--------")
	for _, c := range circuits {
		provider, bandwidth := "-", "-"
		peerings := 0
		if c.Properties != nil {
			if sp := c.Properties.ServiceProviderProperties; sp != nil {
				if sp.ServiceProviderName != nil {
					provider = *sp.ServiceProviderName
				}
				if sp.BandwidthInMbps != nil {
					bandwidth = fmt.Sprintf("%d Mbps", *sp.BandwidthInMbps)
				}
			}
			peerings = len(c.Properties.Peerings)
		}
		tier := "-"
		if c.SKU != nil && c.SKU.Tier != nil {
			tier = string(*c.SKU.Tier)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			armutil.Value(c.Name),
			armutil.ResourceGroupOf(armutil.Value(c.ID)),
			armutil.Value(c.Location),
			provider,
			bandwidth,
			tier,
			peerings,
		)
	}
	return w.Flush()
}
