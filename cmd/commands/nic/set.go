package nic

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update a network interface",
		Long: `Update a network interface in place. Only the provided flags change.

Passing --network-security-group "" detaches the security group.

Example:
  aznet nic set -g my-rg -n web-nic --ip-forwarding true`,
		RunE:         runSet,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().StringP("name", "n", "", "Name of the network interface")
	cmd.Flags().String("ip-forwarding", "", "Enable IP forwarding: true or false")
	cmd.Flags().String("network-security-group", "", "Security group name or ID (\"\" detaches)")
	cmd.Flags().String("internal-dns-name", "", "Internal DNS label inside the virtual network")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	nic, err := clients.Interfaces.Get(cmd.Context(), resourceGroup, name)
	if err != nil {
		return fmt.Errorf("failed to get network interface %q: %w", name, err)
	}
	if nic.Properties == nil {
		nic.Properties = &armnetwork.InterfacePropertiesFormat{}
	}

	if cmd.Flags().Changed("ip-forwarding") {
		forwarding, err := cli.FlagBool(cmd, "ip-forwarding")
		if err != nil {
			return err
		}
		nic.Properties.EnableIPForwarding = to.Ptr(forwarding)
	}
	if cmd.Flags().Changed("network-security-group") {
		if v, _ := cmd.Flags().GetString("network-security-group"); v == "" {
			nic.Properties.NetworkSecurityGroup = nil
		} else {
			id := armutil.EnsureNetworkID(session.SubscriptionID, resourceGroup, "networkSecurityGroups", v)
			nic.Properties.NetworkSecurityGroup = &armnetwork.SecurityGroup{ID: to.Ptr(id)}
		}
	}
	if cmd.Flags().Changed("internal-dns-name") {
		if nic.Properties.DNSSettings == nil {
			nic.Properties.DNSSettings = &armnetwork.InterfaceDNSSettings{}
		}
		v, _ := cmd.Flags().GetString("internal-dns-name")
		nic.Properties.DNSSettings.InternalDNSNameLabel = to.Ptr(v)
	}

	var updated armnetwork.Interface
	err = cli.Spin(cmd, fmt.Sprintf("Updating network interface %s...", name), func() error {
		var err error
		updated, err = clients.Interfaces.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, name, nic)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update network interface %q: %w", name, err)
	}

	auditNic(cmd, armutil.Value(updated.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated network interface %s.\n", name)
	return nil
}
