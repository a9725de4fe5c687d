package vnet

import (
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/auditlog"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vnet",
		Short: "Manage virtual networks, subnets and peerings",
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(UpdateCommand())

	subnet := &cobra.Command{
		Use:   "subnet",
		Short: "Manage subnets inside a virtual network",
	}
	subnet.AddCommand(SubnetCreateCommand())
	subnet.AddCommand(SubnetUpdateCommand())
	subnet.AddCommand(SubnetListCommand())
	subnet.AddCommand(SubnetShowCommand())
	subnet.AddCommand(SubnetDeleteCommand())
	cmd.AddCommand(subnet)

	peering := &cobra.Command{
		Use:   "peering",
		Short: "Manage virtual network peerings",
	}
	peering.AddCommand(PeeringCreateCommand())
	cmd.AddCommand(peering)

	return cmd
}

func auditVnet(cmd *cobra.Command, resourceType, id, name string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "network",
		ResourceType: resourceType,
		ResourceID:   id,
		ResourceName: name,
	}))
}
