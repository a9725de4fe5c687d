package lb

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func NatRuleCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an inbound NAT rule",
		Long: `Add an inbound NAT rule to a load balancer.

Without --frontend-ip-name the rule binds to the load balancer's only
frontend IP configuration.

Example:
  aznet lb inbound-nat-rule create -g my-rg --lb-name web-lb -n ssh-vm1 --protocol Tcp --frontend-port 4222 --backend-port 22`,
		RunE:         runNatRuleCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("protocol", "", "Transport protocol: Tcp, Udp or All")
	cmd.Flags().Int32("frontend-port", 0, "Port the frontend listens on")
	cmd.Flags().Int32("backend-port", 0, "Port forwarded to the backend")
	cmd.Flags().String("frontend-ip-name", "", "Frontend IP configuration (defaults to the only one)")
	cmd.Flags().String("floating-ip", "", "Enable floating IP: true or false")
	cmd.Flags().Int32("idle-timeout", 0, "Idle timeout in minutes")
	cmd.MarkFlagRequired("protocol")
	cmd.MarkFlagRequired("frontend-port")
	cmd.MarkFlagRequired("backend-port")

	return cmd
}

func runNatRuleCreate(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	lbName, _ := cmd.Flags().GetString("lb-name")
	name, _ := cmd.Flags().GetString("name")

	rawProtocol, _ := cmd.Flags().GetString("protocol")
	protocol, err := armutil.ParseEnum(rawProtocol, "--protocol", armnetwork.PossibleTransportProtocolValues())
	if err != nil {
		return err
	}

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	lb, err := getLb(cmd, clients, resourceGroup, lbName)
	if err != nil {
		return err
	}

	frontend, err := pickFrontend(cmd, lb)
	if err != nil {
		return err
	}

	frontendPort, _ := cmd.Flags().GetInt32("frontend-port")
	backendPort, _ := cmd.Flags().GetInt32("backend-port")
	props := &armnetwork.InboundNatRulePropertiesFormat{
		Protocol:                to.Ptr(protocol),
		FrontendPort:            to.Ptr(frontendPort),
		BackendPort:             to.Ptr(backendPort),
		FrontendIPConfiguration: &armnetwork.SubResource{ID: frontend.ID},
		EnableFloatingIP:        to.Ptr(false),
	}
	if cmd.Flags().Changed("floating-ip") {
		floating, err := cli.FlagBool(cmd, "floating-ip")
		if err != nil {
			return err
		}
		props.EnableFloatingIP = to.Ptr(floating)
	}
	if cmd.Flags().Changed("idle-timeout") {
		minutes, _ := cmd.Flags().GetInt32("idle-timeout")
		props.IdleTimeoutInMinutes = to.Ptr(minutes)
	}

	newRule := &armnetwork.InboundNatRule{Name: to.Ptr(name), Properties: props}
	var replaced bool
	lb.Properties.InboundNatRules, replaced = armutil.UpsertByName(lb.Properties.InboundNatRules, newRule, natRuleName)
	warnReplaced(cmd, replaced, name)

	updated, err := saveLb(cmd, clients, fmt.Sprintf("Creating inbound NAT rule %s...", name), resourceGroup, lbName, lb)
	if err != nil {
		return err
	}

	created, err := armutil.FindByName(updated.Properties.InboundNatRules, "inbound NAT rule", name, natRuleName)
	if err != nil {
		return err
	}

	auditLb(cmd, "inboundNatRule", armutil.Value(created.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created inbound NAT rule %s on %s.\n", name, lbName)
	return nil
}

func NatRuleSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "set",
		Short:        "Update an inbound NAT rule",
		RunE:         runNatRuleSet,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("protocol", "", "Transport protocol: Tcp, Udp or All")
	cmd.Flags().Int32("frontend-port", 0, "Port the frontend listens on")
	cmd.Flags().Int32("backend-port", 0, "Port forwarded to the backend")
	cmd.Flags().String("frontend-ip-name", "", "Re-point to another frontend IP configuration")
	cmd.Flags().String("floating-ip", "", "Enable floating IP: true or false")
	cmd.Flags().Int32("idle-timeout", 0, "Idle timeout in minutes")

	return cmd
}

func runNatRuleSet(cmd *cobra.Command, args []string) error {
	resourceGroup, err := cli.ResourceGroup(cmd)
	if err != nil {
		return err
	}
	lbName, _ := cmd.Flags().GetString("lb-name")
	name, _ := cmd.Flags().GetString("name")

	clients, _, err := cli.Clients(cmd)
	if err != nil {
		return err
	}

	lb, err := getLb(cmd, clients, resourceGroup, lbName)
	if err != nil {
		return err
	}

	rule, err := armutil.FindByName(lb.Properties.InboundNatRules, "inbound NAT rule", name, natRuleName)
	if err != nil {
		return err
	}
	if rule.Properties == nil {
		rule.Properties = &armnetwork.InboundNatRulePropertiesFormat{}
	}

	if frontendIP, _ := cmd.Flags().GetString("frontend-ip-name"); frontendIP != "" {
		frontend, err := armutil.FindByName(lb.Properties.FrontendIPConfigurations, "frontend IP configuration", frontendIP, frontendName)
		if err != nil {
			return err
		}
		rule.Properties.FrontendIPConfiguration = &armnetwork.SubResource{ID: frontend.ID}
	}
	if cmd.Flags().Changed("protocol") {
		rawProtocol, _ := cmd.Flags().GetString("protocol")
		protocol, err := armutil.ParseEnum(rawProtocol, "--protocol", armnetwork.PossibleTransportProtocolValues())
		if err != nil {
			return err
		}
		rule.Properties.Protocol = to.Ptr(protocol)
	}
	if cmd.Flags().Changed("frontend-port") {
		port, _ := cmd.Flags().GetInt32("frontend-port")
		rule.Properties.FrontendPort = to.Ptr(port)
	}
	if cmd.Flags().Changed("backend-port") {
		port, _ := cmd.Flags().GetInt32("backend-port")
		rule.Properties.BackendPort = to.Ptr(port)
	}
	if cmd.Flags().Changed("floating-ip") {
		floating, err := cli.FlagBool(cmd, "floating-ip")
		if err != nil {
			return err
		}
		rule.Properties.EnableFloatingIP = to.Ptr(floating)
	}
	if cmd.Flags().Changed("idle-timeout") {
		minutes, _ := cmd.Flags().GetInt32("idle-timeout")
		rule.Properties.IdleTimeoutInMinutes = to.Ptr(minutes)
	}

	updated, err := saveLb(cmd, clients, fmt.Sprintf("Updating inbound NAT rule %s...", name), resourceGroup, lbName, lb)
	if err != nil {
		return err
	}

	result, err := armutil.FindByName(updated.Properties.InboundNatRules, "inbound NAT rule", name, natRuleName)
	if err != nil {
		return err
	}

	auditLb(cmd, "inboundNatRule", armutil.Value(result.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated inbound NAT rule %s.\n", name)
	return nil
}

func NatRuleDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove an inbound NAT rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceGroup, err := cli.ResourceGroup(cmd)
			if err != nil {
				return err
			}
			lbName, _ := cmd.Flags().GetString("lb-name")
			name, _ := cmd.Flags().GetString("name")

			clients, _, err := cli.Clients(cmd)
			if err != nil {
				return err
			}

			lb, err := getLb(cmd, clients, resourceGroup, lbName)
			if err != nil {
				return err
			}

			var removed bool
			lb.Properties.InboundNatRules, removed = armutil.RemoveByName(lb.Properties.InboundNatRules, name, natRuleName)
			if !removed {
				return fmt.Errorf("inbound NAT rule %q not found", name)
			}

			if _, err := saveLb(cmd, clients, fmt.Sprintf("Deleting inbound NAT rule %s...", name), resourceGroup, lbName, lb); err != nil {
				return err
			}

			auditLb(cmd, "inboundNatRule", "", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted inbound NAT rule %s from %s.\n", name, lbName)
			return nil
		},
		SilenceUsage: true,
	}

	addChildFlags(cmd)

	return cmd
}

// pickFrontend resolves --frontend-ip-name, defaulting to the load
// balancer's only frontend configuration.
func pickFrontend(cmd *cobra.Command, lb armnetwork.LoadBalancer) (*armnetwork.FrontendIPConfiguration, error) {
	name, _ := cmd.Flags().GetString("frontend-ip-name")
	if name == "" {
		var err error
		name, err = onlyChildName(lb.Properties.FrontendIPConfigurations, "--frontend-ip-name", frontendID)
		if err != nil {
			return nil, err
		}
	}
	return armutil.FindByName(lb.Properties.FrontendIPConfigurations, "frontend IP configuration", name, frontendName)
}
