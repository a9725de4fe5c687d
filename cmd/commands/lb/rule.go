package lb

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func RuleCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a load balancing rule",
		Long: `Add a load balancing rule.

Without --frontend-ip-name or --backend-pool-name the rule binds to the
load balancer's only frontend and backend pool.

Example:
  aznet lb rule create -g my-rg --lb-name web-lb -n http --protocol Tcp --frontend-port 80 --backend-port 8080 --probe-name http-probe`,
		RunE:         runRuleCreate,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("protocol", "", "Transport protocol: Tcp, Udp or All")
	cmd.Flags().Int32("frontend-port", 0, "Port the frontend listens on")
	cmd.Flags().Int32("backend-port", 0, "Port forwarded to the backend")
	cmd.Flags().String("frontend-ip-name", "", "Frontend IP configuration (defaults to the only one)")
	cmd.Flags().String("backend-pool-name", "", "Backend address pool (defaults to the only one)")
	cmd.Flags().String("probe-name", "", "Health probe to attach")
	cmd.Flags().String("load-distribution", "Default", "Session persistence: Default, SourceIP or SourceIPProtocol")
	cmd.Flags().String("floating-ip", "", "Enable floating IP: true or false")
	cmd.Flags().Int32("idle-timeout", 0, "Idle timeout in minutes")
	cmd.MarkFlagRequired("protocol")
	cmd.MarkFlagRequired("frontend-port")
	cmd.MarkFlagRequired("backend-port")

	return cmd
}

func runRuleCreate(cmd *cobra.Command, args []string) error {
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
	rawDistribution, _ := cmd.Flags().GetString("load-distribution")
	distribution, err := armutil.ParseEnum(rawDistribution, "--load-distribution", armnetwork.PossibleLoadDistributionValues())
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
	pool, err := pickBackendPool(cmd, lb)
	if err != nil {
		return err
	}

	frontendPort, _ := cmd.Flags().GetInt32("frontend-port")
	backendPort, _ := cmd.Flags().GetInt32("backend-port")
	props := &armnetwork.LoadBalancingRulePropertiesFormat{
		Protocol:                to.Ptr(protocol),
		FrontendPort:            to.Ptr(frontendPort),
		BackendPort:             to.Ptr(backendPort),
		FrontendIPConfiguration: &armnetwork.SubResource{ID: frontend.ID},
		BackendAddressPool:      &armnetwork.SubResource{ID: pool.ID},
		LoadDistribution:        to.Ptr(distribution),
		EnableFloatingIP:        to.Ptr(false),
	}
	if probe, _ := cmd.Flags().GetString("probe-name"); probe != "" {
		found, err := armutil.FindByName(lb.Properties.Probes, "probe", probe, probeName)
		if err != nil {
			return err
		}
		props.Probe = &armnetwork.SubResource{ID: found.ID}
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

	newRule := &armnetwork.LoadBalancingRule{Name: to.Ptr(name), Properties: props}
	var replaced bool
	lb.Properties.LoadBalancingRules, replaced = armutil.UpsertByName(lb.Properties.LoadBalancingRules, newRule, ruleName)
	warnReplaced(cmd, replaced, name)

	updated, err := saveLb(cmd, clients, fmt.Sprintf("Creating rule %s...", name), resourceGroup, lbName, lb)
	if err != nil {
		return err
	}

	created, err := armutil.FindByName(updated.Properties.LoadBalancingRules, "load balancing rule", name, ruleName)
	if err != nil {
		return err
	}

	auditLb(cmd, "loadBalancingRule", armutil.Value(created.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created rule %s on %s.\n", name, lbName)
	return nil
}

func RuleSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update a load balancing rule",
		Long: `Update a load balancing rule in place. Only the provided flags change.

Passing --probe-name "" detaches the probe.`,
		RunE:         runRuleSet,
		SilenceUsage: true,
	}

	addChildFlags(cmd)
	cmd.Flags().String("protocol", "", "Transport protocol: Tcp, Udp or All")
	cmd.Flags().Int32("frontend-port", 0, "Port the frontend listens on")
	cmd.Flags().Int32("backend-port", 0, "Port forwarded to the backend")
	cmd.Flags().String("frontend-ip-name", "", "Re-point to another frontend IP configuration")
	cmd.Flags().String("backend-pool-name", "", "Re-point to another backend address pool")
	cmd.Flags().String("probe-name", "", "Health probe to attach (\"\" detaches)")
	cmd.Flags().String("load-distribution", "", "Session persistence: Default, SourceIP or SourceIPProtocol")
	cmd.Flags().String("floating-ip", "", "Enable floating IP: true or false")
	cmd.Flags().Int32("idle-timeout", 0, "Idle timeout in minutes")

	return cmd
}

func runRuleSet(cmd *cobra.Command, args []string) error {
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

	rule, err := armutil.FindByName(lb.Properties.LoadBalancingRules, "load balancing rule", name, ruleName)
	if err != nil {
		return err
	}
	if rule.Properties == nil {
		rule.Properties = &armnetwork.LoadBalancingRulePropertiesFormat{}
	}

	if frontendIP, _ := cmd.Flags().GetString("frontend-ip-name"); frontendIP != "" {
		frontend, err := armutil.FindByName(lb.Properties.FrontendIPConfigurations, "frontend IP configuration", frontendIP, frontendName)
		if err != nil {
			return err
		}
		rule.Properties.FrontendIPConfiguration = &armnetwork.SubResource{ID: frontend.ID}
	}
	if backendPool, _ := cmd.Flags().GetString("backend-pool-name"); backendPool != "" {
		pool, err := armutil.FindByName(lb.Properties.BackendAddressPools, "backend address pool", backendPool, poolName)
		if err != nil {
			return err
		}
		rule.Properties.BackendAddressPool = &armnetwork.SubResource{ID: pool.ID}
	}
	if cmd.Flags().Changed("probe-name") {
		if probe, _ := cmd.Flags().GetString("probe-name"); probe == "" {
			rule.Properties.Probe = nil
		} else {
			found, err := armutil.FindByName(lb.Properties.Probes, "probe", probe, probeName)
			if err != nil {
				return err
			}
			rule.Properties.Probe = &armnetwork.SubResource{ID: found.ID}
		}
	}
	if cmd.Flags().Changed("protocol") {
		rawProtocol, _ := cmd.Flags().GetString("protocol")
		protocol, err := armutil.ParseEnum(rawProtocol, "--protocol", armnetwork.PossibleTransportProtocolValues())
		if err != nil {
			return err
		}
		rule.Properties.Protocol = to.Ptr(protocol)
	}
	if cmd.Flags().Changed("load-distribution") {
		rawDistribution, _ := cmd.Flags().GetString("load-distribution")
		distribution, err := armutil.ParseEnum(rawDistribution, "--load-distribution", armnetwork.PossibleLoadDistributionValues())
		if err != nil {
			return err
		}
		rule.Properties.LoadDistribution = to.Ptr(distribution)
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

	updated, err := saveLb(cmd, clients, fmt.Sprintf("Updating rule %s...", name), resourceGroup, lbName, lb)
	if err != nil {
		return err
	}

	result, err := armutil.FindByName(updated.Properties.LoadBalancingRules, "load balancing rule", name, ruleName)
	if err != nil {
		return err
	}

	auditLb(cmd, "loadBalancingRule", armutil.Value(result.ID), name)

	if cli.OutputFormat(cmd) == "json" {
		return cli.PrintJSON(cmd, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated rule %s.\n", name)
	return nil
}

func RuleDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a load balancing rule",
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
			lb.Properties.LoadBalancingRules, removed = armutil.RemoveByName(lb.Properties.LoadBalancingRules, name, ruleName)
			if !removed {
				return fmt.Errorf("load balancing rule %q not found", name)
			}

			if _, err := saveLb(cmd, clients, fmt.Sprintf("Deleting rule %s...", name), resourceGroup, lbName, lb); err != nil {
				return err
			}

			auditLb(cmd, "loadBalancingRule", "", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted rule %s from %s.\n", name, lbName)
			return nil
		},
		SilenceUsage: true,
	}

	addChildFlags(cmd)

	return cmd
}

// pickBackendPool resolves --backend-pool-name, defaulting to the load
// balancer's only backend pool.
func pickBackendPool(cmd *cobra.Command, lb armnetwork.LoadBalancer) (*armnetwork.BackendAddressPool, error) {
	name, _ := cmd.Flags().GetString("backend-pool-name")
	if name == "" {
		var err error
		name, err = onlyChildName(lb.Properties.BackendAddressPools, "--backend-pool-name", poolID)
		if err != nil {
			return nil, err
		}
	}
	return armutil.FindByName(lb.Properties.BackendAddressPools, "backend address pool", name, poolName)
}
