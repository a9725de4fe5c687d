package publicip

import (
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/auditlog"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "public-ip",
		Short: "Manage public IP addresses",
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(UpdateCommand())

	return cmd
}

func auditPublicIP(cmd *cobra.Command, id, name string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "network",
		ResourceType: "publicIPAddress",
		ResourceID:   id,
		ResourceName: name,
	}))
}
