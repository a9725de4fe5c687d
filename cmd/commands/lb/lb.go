package lb

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/auditlog"
	"nathanbeddoewebdev/aznet/internal/azure"
	"nathanbeddoewebdev/aznet/internal/cli"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lb",
		Short: "Manage load balancers and their child resources",
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())

	frontendIP := &cobra.Command{
		Use:   "frontend-ip",
		Short: "Manage frontend IP configurations",
	}
	frontendIP.AddCommand(FrontendIPCreateCommand())
	frontendIP.AddCommand(FrontendIPSetCommand())
	frontendIP.AddCommand(FrontendIPDeleteCommand())
	frontendIP.AddCommand(FrontendIPListCommand())
	frontendIP.AddCommand(FrontendIPShowCommand())
	cmd.AddCommand(frontendIP)

	natRule := &cobra.Command{
		Use:   "inbound-nat-rule",
		Short: "Manage inbound NAT rules",
	}
	natRule.AddCommand(NatRuleCreateCommand())
	natRule.AddCommand(NatRuleSetCommand())
	natRule.AddCommand(NatRuleDeleteCommand())
	cmd.AddCommand(natRule)

	natPool := &cobra.Command{
		Use:   "inbound-nat-pool",
		Short: "Manage inbound NAT pools",
	}
	natPool.AddCommand(NatPoolCreateCommand())
	natPool.AddCommand(NatPoolSetCommand())
	natPool.AddCommand(NatPoolDeleteCommand())
	cmd.AddCommand(natPool)

	addressPool := &cobra.Command{
		Use:   "address-pool",
		Short: "Manage backend address pools",
	}
	addressPool.AddCommand(AddressPoolCreateCommand())
	addressPool.AddCommand(AddressPoolDeleteCommand())
	addressPool.AddCommand(AddressPoolListCommand())
	cmd.AddCommand(addressPool)

	probe := &cobra.Command{
		Use:   "probe",
		Short: "Manage health probes",
	}
	probe.AddCommand(ProbeCreateCommand())
	probe.AddCommand(ProbeSetCommand())
	probe.AddCommand(ProbeDeleteCommand())
	cmd.AddCommand(probe)

	rule := &cobra.Command{
		Use:   "rule",
		Short: "Manage load balancing rules",
	}
	rule.AddCommand(RuleCreateCommand())
	rule.AddCommand(RuleSetCommand())
	rule.AddCommand(RuleDeleteCommand())
	cmd.AddCommand(rule)

	return cmd
}

func addChildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("resource-group", "g", "", "Resource group")
	cmd.Flags().String("lb-name", "", "Name of the load balancer")
	cmd.Flags().StringP("name", "n", "", "Name of the child resource")
	cmd.MarkFlagRequired("lb-name")
	cmd.MarkFlagRequired("name")
}

func auditLb(cmd *cobra.Command, resourceType, id, name string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "network",
		ResourceType: resourceType,
		ResourceID:   id,
		ResourceName: name,
	}))
}

func getLb(cmd *cobra.Command, clients *azure.Clients, resourceGroup, name string) (armnetwork.LoadBalancer, error) {
	lb, err := clients.LoadBalancers.Get(cmd.Context(), resourceGroup, name)
	if err != nil {
		return armnetwork.LoadBalancer{}, fmt.Errorf("failed to get load balancer %q: %w", name, err)
	}
	if lb.Properties == nil {
		lb.Properties = &armnetwork.LoadBalancerPropertiesFormat{}
	}
	return lb, nil
}

func saveLb(cmd *cobra.Command, clients *azure.Clients, title, resourceGroup, name string, lb armnetwork.LoadBalancer) (armnetwork.LoadBalancer, error) {
	var updated armnetwork.LoadBalancer
	err := cli.Spin(cmd, title, func() error {
		var err error
		updated, err = clients.LoadBalancers.CreateOrUpdateAndWait(cmd.Context(), resourceGroup, name, lb)
		return err
	})
	if err != nil {
		return armnetwork.LoadBalancer{}, fmt.Errorf("failed to update load balancer %q: %w", name, err)
	}
	if updated.Properties == nil {
		updated.Properties = &armnetwork.LoadBalancerPropertiesFormat{}
	}
	return updated, nil
}

// onlyChildName resolves an omitted child-name flag to the collection's
// single element. Zero or several elements force the caller to pass the
// flag explicitly.
func onlyChildName[T any](items []*T, option string, idOf func(*T) *string) (string, error) {
	var ids []string
	for _, item := range items {
		if item != nil {
			ids = append(ids, armutil.Value(idOf(item)))
		}
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no existing values found for %s: create one first and try again", option)
	}
	if len(ids) > 1 {
		return "", fmt.Errorf("multiple possible values found for %s (%s): specify %s explicitly", option, strings.Join(ids, ", "), option)
	}
	return armutil.NameOf(ids[0]), nil
}

func warnReplaced(cmd *cobra.Command, replaced bool, name string) {
	if replaced {
		fmt.Fprintf(cmd.ErrOrStderr(), "Item '%s' already exists. Replacing with new values.\n", name)
	}
}

func frontendName(c *armnetwork.FrontendIPConfiguration) *string { return c.Name }
func frontendID(c *armnetwork.FrontendIPConfiguration) *string   { return c.ID }
func natRuleName(r *armnetwork.InboundNatRule) *string           { return r.Name }
func natPoolName(p *armnetwork.InboundNatPool) *string           { return p.Name }
func poolName(p *armnetwork.BackendAddressPool) *string          { return p.Name }
func poolID(p *armnetwork.BackendAddressPool) *string            { return p.ID }
func probeName(p *armnetwork.Probe) *string                      { return p.Name }
func ruleName(r *armnetwork.LoadBalancingRule) *string           { return r.Name }
