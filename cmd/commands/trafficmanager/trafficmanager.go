package trafficmanager

import (
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/auditlog"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "traffic-manager",
		Short: "Manage Traffic Manager profiles and endpoints",
	}

	profile := &cobra.Command{
		Use:   "profile",
		Short: "Manage Traffic Manager profiles",
	}
	profile.AddCommand(ProfileListCommand())
	profile.AddCommand(ProfileUpdateCommand())
	cmd.AddCommand(profile)

	endpoint := &cobra.Command{
		Use:   "endpoint",
		Short: "Manage endpoints of a profile",
	}
	endpoint.AddCommand(EndpointCreateCommand())
	endpoint.AddCommand(EndpointUpdateCommand())
	endpoint.AddCommand(EndpointListCommand())
	cmd.AddCommand(endpoint)

	return cmd
}

func auditTrafficManager(cmd *cobra.Command, resourceType, id, name string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "network",
		ResourceType: resourceType,
		ResourceID:   id,
		ResourceName: name,
	}))
}
