package routetable

import (
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/auditlog"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route-table",
		Short: "Manage route tables and their routes",
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(UpdateCommand())

	route := &cobra.Command{
		Use:   "route",
		Short: "Manage routes in a route table",
	}
	route.AddCommand(RouteCreateCommand())
	route.AddCommand(RouteUpdateCommand())
	route.AddCommand(RouteListCommand())
	route.AddCommand(RouteShowCommand())
	route.AddCommand(RouteDeleteCommand())
	cmd.AddCommand(route)

	return cmd
}

func auditRoute(cmd *cobra.Command, id, name string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "network",
		ResourceType: "route",
		ResourceID:   id,
		ResourceName: name,
	}))
}
