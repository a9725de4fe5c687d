package nic

import (
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/auditlog"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nic",
		Short: "Manage network interfaces",
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(SetCommand())

	ipConfig := &cobra.Command{
		Use:   "ip-config",
		Short: "Manage IP configurations of a network interface",
	}
	ipConfig.AddCommand(IPConfigCreateCommand())
	ipConfig.AddCommand(IPConfigSetCommand())
	ipConfig.AddCommand(IPConfigDeleteCommand())
	ipConfig.AddCommand(IPConfigListCommand())
	ipConfig.AddCommand(IPConfigShowCommand())

	addressPool := &cobra.Command{
		Use:   "address-pool",
		Short: "Attach the configuration to load balancer backend pools",
	}
	addressPool.AddCommand(AddressPoolAddCommand())
	addressPool.AddCommand(AddressPoolRemoveCommand())
	ipConfig.AddCommand(addressPool)

	natRule := &cobra.Command{
		Use:   "inbound-nat-rule",
		Short: "Attach the configuration to load balancer inbound NAT rules",
	}
	natRule.AddCommand(NatRuleAddCommand())
	natRule.AddCommand(NatRuleRemoveCommand())
	ipConfig.AddCommand(natRule)

	cmd.AddCommand(ipConfig)

	return cmd
}

func auditNic(cmd *cobra.Command, id, name string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "network",
		ResourceType: "networkInterface",
		ResourceID:   id,
		ResourceName: name,
	}))
}
