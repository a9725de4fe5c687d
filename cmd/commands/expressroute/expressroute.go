package expressroute

import (
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/auditlog"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "express-route",
		Short: "Manage ExpressRoute circuits",
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(UpdateCommand())

	peering := &cobra.Command{
		Use:   "peering",
		Short: "Manage BGP peerings of a circuit",
	}
	peering.AddCommand(PeeringCreateCommand())
	peering.AddCommand(PeeringUpdateCommand())
	cmd.AddCommand(peering)

	return cmd
}

func auditCircuit(cmd *cobra.Command, resourceType, id, name string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "network",
		ResourceType: resourceType,
		ResourceID:   id,
		ResourceName: name,
	}))
}
