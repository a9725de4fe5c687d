package publicip

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
		Short:        "List public IP addresses",
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

	var ips []*armnetwork.PublicIPAddress
	if rg, _ := cmd.Flags().GetString("resource-group"); rg != "" {
		ips, err = clients.PublicIPAddresses.List(cmd.Context(), rg)
	} else {
		ips, err = clients.PublicIPAddresses.ListAll(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list public IPs: %w", err)
	}

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, ips)
	}

	if len(ips) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No public IP addresses found.")
		return nil
	}

	w := cli.NewTable(cmd)
	fmt.Fprintln(w, "NAME\tRESOURCE GROUP\tLOCATION\tADDRESS\tALLOCATION\tDNS NAME")
	fmt.Fprintln(w, "----\t--------------\t--------\t-------\t----------\t--------")
	for _, ip := range ips {
		address, allocation, dns := "-", "", "-"
		if p := ip.Properties; p != nil {
			if p.IPAddress != nil {
				address = *p.IPAddress
			}
			if p.PublicIPAllocationMethod != nil {
				allocation = string(*p.PublicIPAllocationMethod)
			}
			if p.DNSSettings != nil && p.DNSSettings.Fqdn != nil {
				dns = *p.DNSSettings.Fqdn
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			armutil.Value(ip.Name),
			armutil.ResourceGroupOf(armutil.Value(ip.ID)),
			armutil.Value(ip.Location),
			address,
			allocation,
			dns,
		)
	}
	return w.Flush()
}
