package publicip

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
		Short: "Update a public IP address",
		Long: `Update a public IP address in place. Only the provided flags change.

Example:
  aznet public-ip update -g my-rg -n web-ip --dns-name myapp --allocation-method Static`,
		RunE:         runUpdate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the public IP address")
	cmd.Flags().String("dns-name", "", "DNS label, forms <label>.<region>.cloudapp.azure.com")
	cmd.Flags().String("reverse-fqdn", "", "Reverse FQDN for PTR lookups")
	cmd.Flags().String("allocation-method", "", "IP allocation: Static or Dynamic")
	cmd.Flags().String("version", "", "IP version: IPv4 or IPv6")
	cmd.Flags().Int32("idle-timeout", 0, "Idle timeout in minutes")
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

	ip, err := clients.PublicIPAddresses.Get(cmd.Context(), resourceGroup, name)
	if err != nil {
		return fmt.Errorf("failed to get public IP %q: %w", name, err)
	}
	if ip.Properties == nil {
		ip.Properties = &armnetwork.PublicIPAddressPropertiesFormat{}
	}

	dnsName := cmd.Flags().Changed("dns-name")
	reverseFqdn := cmd.Flags().Changed("reverse-fqdn")
	if dnsName || reverseFqdn {
		if ip.Properties.DNSSettings == nil {
			ip.Properties.DNSSettings = &armnetwork.PublicIPAddressDNSSettings{}
		}
		if dnsName {
			v, _ := cmd.Flags().GetString("dns-name")
			ip.Properties.DNSSettings.DomainNameLabel = to.Ptr(v)
		}
		if reverseFqdn {
			v, _ := cmd.Flags().GetString("reverse-fqdn")
			ip.Properties.DNSSettings.ReverseFqdn = to.Ptr(v)
		}
	}
	if cmd.Flags().Changed("allocation-method") {
		raw, _ := cmd.Flags().GetString("allocation-method")
		method, err := armutil.ParseEnum(raw, "--allocation-method", armnetwork.PossibleIPAllocationMethodValues())
		if err != nil {
			return err
		}
		ip.Properties.PublicIPAllocationMethod = to.Ptr(method)
	}
	if cmd.Flags().Changed("version") {
		raw, _ := cmd.Flags().GetString("version")
		version, err := armutil.ParseEnum(raw, "--version", armnetwork.PossibleIPVersionValues())
		if err != nil {
			return err
		}
		ip.Properties.PublicIPAddressVersion = to.Ptr(version)
	}
	if cmd.Flags().Changed("idle-timeout") {
		minutes, _ := cmd.Flags().GetInt32("idle-timeout")
		ip.Properties.IdleTimeoutInMinutes = to.Ptr(minutes)
	}
	if cmd.Flags().Changed("tags") {
		pairs, _ := cmd.Flags().GetStringSlice("tags")
		ip.Tags = cli.ParseTags(pairs)
	}

	var updated armnetwork.PublicIPAddress
	err = cli.Spin(cmd, fmt.Sprintf("Updating public IP %s...", name), func() error {
		var err error
		updated, err = clients.PublicIPAddresses.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, name, ip)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update public IP %q: %w", name, err)
	}

	auditPublicIP(cmd, armutil.Value(updated.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated public IP %s.\n", name)
	return nil
}
