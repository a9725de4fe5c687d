package nic

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func addLbRefFlags(cmd *cobra.Command, flag, help string) {
	addIPConfigFlags(cmd)
	cmd.Flags().String("lb-name", "", "Load balancer owning the child resource")
	cmd.Flags().String(flag, "", help)
	cmd.MarkFlagRequired(flag)
}

// resolveLbChildID qualifies a load balancer child name into a full ID.
func resolveLbChildID(cmd *cobra.Command, subscription, resourceGroup, childType, flag string) (string, error) {
	v, _ := cmd.Flags().GetString(flag)
	if armutil.IsResourceID(v) {
		return v, nil
	}
	lbName, _ := cmd.Flags().GetString("lb-name")
	if lbName == "" {
		return "", fmt.Errorf("incorrect usage: --lb-name is required when --%s is a name", flag)
	}
	return armutil.LoadBalancerChildID(subscription, resourceGroup, lbName, childType, v), nil
}

func AddressPoolAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Join a load balancer backend address pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLbRefChange(cmd, "backendAddressPools", "address-pool", func(p *armnetwork.InterfaceIPConfigurationPropertiesFormat, id string) {
				p.LoadBalancerBackendAddressPools = append(p.LoadBalancerBackendAddressPools,
					&armnetwork.BackendAddressPool{ID: to.Ptr(id)})
			}, "Added address pool %s to %s.\n")
		},
		SilenceUsage: true,
	}

	addLbRefFlags(cmd, "address-pool", "Backend address pool name or ID (name needs --lb-name)")

	return cmd
}

func AddressPoolRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Leave a load balancer backend address pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLbRefChange(cmd, "backendAddressPools", "address-pool", func(p *armnetwork.InterfaceIPConfigurationPropertiesFormat, id string) {
				p.LoadBalancerBackendAddressPools, _ = armutil.RemoveByName(p.LoadBalancerBackendAddressPools, id,
					func(pool *armnetwork.BackendAddressPool) *string { return pool.ID })
			}, "Removed address pool %s from %s.\n")
		},
		SilenceUsage: true,
	}

	addLbRefFlags(cmd, "address-pool", "Backend address pool name or ID (name needs --lb-name)")

	return cmd
}

func NatRuleAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Join a load balancer inbound NAT rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLbRefChange(cmd, "inboundNatRules", "inbound-nat-rule", func(p *armnetwork.InterfaceIPConfigurationPropertiesFormat, id string) {
				p.LoadBalancerInboundNatRules = append(p.LoadBalancerInboundNatRules,
					&armnetwork.InboundNatRule{ID: to.Ptr(id)})
			}, "Added inbound NAT rule %s to %s.\n")
		},
		SilenceUsage: true,
	}

	addLbRefFlags(cmd, "inbound-nat-rule", "Inbound NAT rule name or ID (name needs --lb-name)")

	return cmd
}

func NatRuleRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Leave a load balancer inbound NAT rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLbRefChange(cmd, "inboundNatRules", "inbound-nat-rule", func(p *armnetwork.InterfaceIPConfigurationPropertiesFormat, id string) {
				p.LoadBalancerInboundNatRules, _ = armutil.RemoveByName(p.LoadBalancerInboundNatRules, id,
					func(rule *armnetwork.InboundNatRule) *string { return rule.ID })
			}, "Removed inbound NAT rule %s from %s.\n")
		},
		SilenceUsage: true,
	}

	addLbRefFlags(cmd, "inbound-nat-rule", "Inbound NAT rule name or ID (name needs --lb-name)")

	return cmd
}

// runLbRefChange reads the interface, resolves the load balancer child ID
// and applies the list mutation to the named IP configuration.
func runLbRefChange(cmd *cobra.Command, childType, flag string, apply func(*armnetwork.InterfaceIPConfigurationPropertiesFormat, string), doneFormat string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	nicName, _ := cmd.Flags().GetString("nic-name")
	name, _ := cmd.Flags().GetString("name")

	clients, session, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	id, err := resolveLbChildID(cmd, session.SubscriptionID, resourceGroup, childType, flag)
	if err != nil {
		return err
	}

	nic, err := clients.Interfaces.Get(cmd.Context(), resourceGroup, nicName)
	if err != nil {
		return fmt.Errorf("failed to get network interface %q: %w", nicName, err)
	}
	var configs []*armnetwork.InterfaceIPConfiguration
	if nic.Properties != nil {
		configs = nic.Properties.IPConfigurations
	}
	config, err := armutil.FindByName(configs, "IP configuration", name, ipConfigName)
	if err != nil {
		return err
	}
	if config.Properties == nil {
		config.Properties = &armnetwork.InterfaceIPConfigurationPropertiesFormat{}
	}

	apply(config.Properties, id)

	updated, err := saveNic(cmd, clients, "Updating network interface...", resourceGroup, nicName, nic)
	if err != nil {
		return err
	}

	auditNic(cmd, armutil.Value(updated.ID), nicName)
	fmt.Fprintf(cmd.OutOrStdout(), doneFormat, armutil.NameOf(id), name)
	return nil
}
