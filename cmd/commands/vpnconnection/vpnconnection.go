package vpnconnection

import (
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/auditlog"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vpn-connection",
		Short: "Manage VPN connections between gateways",
	}

	cmd.AddCommand(CreateCommand())
	cmd.AddCommand(UpdateCommand())

	return cmd
}

func auditConnection(cmd *cobra.Command, id, name string) {
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{
		Service:      "network",
		ResourceType: "connection",
		ResourceID:   id,
		ResourceName: name,
	}))
}
