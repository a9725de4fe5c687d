package vnet

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List virtual networks",
		Long: `List virtual networks in a resource group or the whole subscription.

Examples:
  aznet vnet list
  aznet vnet list -g my-rg`,
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

	var vnets []*armnetwork.VirtualNetwork
	if rg, _ := cmd.Flags().GetString("resource-group"); rg != "" {
		vnets, err = clients.VirtualNetworks.List(cmd.Context(), rg)
	} else {
		vnets, err = clients.VirtualNetworks.ListAll(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list virtual networks: %w", err)
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, vnets)
	}

	if len(vnets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No virtual networks found.")
		return nil
	}

	w := cli.NewTable(cmd)
	fmt.Fprintln(w, "NAME\tRESOURCE GROUP\tLOCATION\tADDRESS SPACE\tSUBNETS")
	fmt.Fprintln(w, "----\t--------------\t--------\t-------------\t-------")
	for _, v := range vnets {
		prefixes := ""
		subnets := 0
		if v.Properties != nil {
			if v.Properties.AddressSpace != nil {
				prefixes = armutil.JoinStrings(v.Properties.AddressSpace.AddressPrefixes, ", ")
			}
			subnets = len(v.Properties.Subnets)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			armutil.Value(v.Name),
			armutil.ResourceGroupOf(armutil.Value(v.ID)),
			armutil.Value(v.Location),
			prefixes,
			subnets,
		)
	}
	return w.Flush()
}
