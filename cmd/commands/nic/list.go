package nic

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
		Short:        "List network interfaces",
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

	var nics []*armnetwork.Interface
	if rg, _ := cmd.Flags().GetString("resource-group"); rg != "" {
		nics, err = clients.Interfaces.List(cmd.Context(), rg)
	} else {
		nics, err = clients.Interfaces.ListAll(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list network interfaces: %w", err)
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, nics)
	}

	if len(nics) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No network interfaces found.")
		return nil
	}

	w := cli.NewTable(cmd)
	fmt.Fprintln(w, "NAME\tRESOURCE GROUP\tLOCATION\tPRIVATE IP\tIP FORWARDING")
	fmt.Fprintln(w, "----\t--------------\t--------\t----------\t-------------")
	for _, n := range nics {
		privateIP, forwarding := "-", false
		if p := n.Properties; p != nil {
			if ip := primaryPrivateIP(p.IPConfigurations); ip != "" {
				privateIP = ip
			}
			forwarding = armutil.Value(p.EnableIPForwarding)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
			armutil.Value(n.Name),
			armutil.ResourceGroupOf(armutil.Value(n.ID)),
			armutil.Value(n.Location),
			privateIP,
			forwarding,
		)
	}
	return w.Flush()
}

// primaryPrivateIP picks the primary configuration's address, falling back
// to the first configuration that has one.
func primaryPrivateIP(configs []*armnetwork.InterfaceIPConfiguration) string {
	var first string
	for _, c := range configs {
		if c == nil || c.Properties == nil || c.Properties.PrivateIPAddress == nil {
			continue
		}
		if first == "" {
			first = *c.Properties.PrivateIPAddress
		}
		if armutil.Value(c.Properties.Primary) {
			return *c.Properties.PrivateIPAddress
		}
	}
	return first
}
