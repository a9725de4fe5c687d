package appgateway

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
		Short:        "List application gateways",
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

	var gateways []*armnetwork.ApplicationGateway
	if rg, _ := cmd.Flags().GetString("resource-group"); rg != "" {
		gateways, err = clients.ApplicationGateways.List(cmd.Context(), rg)
	} else {
		gateways, err = clients.ApplicationGateways.ListAll(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list application gateways: %w", err)
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, gateways)
	}

	if len(gateways) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No application gateways found.")
		return nil
	}

	w := cli.NewTable(cmd)
	fmt.Fprintln(w, "NAME\tRESOURCE GROUP\tLOCATION\tSTATE\tSKU\tCAPACITY")
	fmt.Fprintln(w, "----\t--------------\t--------\t-----\t---\t--------")
	for _, gw := range gateways {
		state, sku, capacity := "-", "-", "-"
		if gw.Properties != nil {
			if gw.Properties.OperationalState != nil {
				state = string(*gw.Properties.OperationalState)
			}
			if gw.Properties.SKU != nil {
				if gw.Properties.SKU.Name != nil {
					sku = string(*gw.Properties.SKU.Name)
				}
				if gw.Properties.SKU.Capacity != nil {
					capacity = fmt.Sprintf("%d", *gw.Properties.SKU.Capacity)
				}
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			armutil.Value(gw.Name),
			armutil.ResourceGroupOf(armutil.Value(gw.ID)),
			armutil.Value(gw.Location),
			state,
			sku,
			capacity,
		)
	}
	return w.Flush()
}
