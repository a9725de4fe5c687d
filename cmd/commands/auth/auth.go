package auth

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage how aznet signs in to Azure",
		Long: `Manage how aznet signs in to Azure.

Without a stored service principal aznet uses the default credential
chain (environment variables, managed identity, Azure CLI). Use this
command group to configure a service principal instead: the tenant and
client ID go into the config file and the client secret into the local
keychain.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(StatusCommand())
	cmd.AddCommand(LogoutCommand())

	return cmd
}
